package entity

// Record representa una fila de la tabla resumen de pronósticos.
// El índice temporal es implícito: la posición de la fila dentro del Dataset.
type Record struct {
	StoreID string
	ItemID  string
	Label   string // columna opcional "date"; vacía si la fuente no la trae

	Pred10 float64 // cuantil 10 del pronóstico (límite inferior de la banda)
	Pred50 float64 // mediana del pronóstico
	Pred90 float64 // cuantil 90 del pronóstico (límite superior de la banda)
	Actual float64

	// Métricas precalculadas por registro aguas arriba.
	RMSE float64
	MAE  float64
	WAPE float64 // fracción (0.05 = 5%)

	Overstock  bool
	Understock bool
}

// Selection par (store_id, item_id) elegido por el usuario.
type Selection struct {
	StoreID string
	ItemID  string
}

// Matches indica si el registro coincide exactamente con la selección.
func (s Selection) Matches(r Record) bool {
	return r.StoreID == s.StoreID && r.ItemID == s.ItemID
}
