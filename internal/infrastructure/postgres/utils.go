package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isMissingRelation verifica si el error indica tabla (42P01) o columna (42703) inexistente.
func isMissingRelation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" || pgErr.Code == "42703"
	}
	return false
}
