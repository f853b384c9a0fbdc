package tabular_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/forecast-dashboard/internal/domain"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/tabular"
)

var fullHeader = []string{
	"store_id", "item_id", "pred_10", "pred_50", "pred_90", "actual",
	"rmse", "mae", "wape", "overstock_flag", "understock_flag",
}

func TestNewHeader_FaltaColumna_DataUnavailable(t *testing.T) {
	_, err := tabular.NewHeader([]string{"store_id", "item_id", "pred_50"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
	assert.Contains(t, err.Error(), "pred_10")
	assert.Contains(t, err.Error(), "understock_flag")
}

func TestNewHeader_NormalizaNombres(t *testing.T) {
	cols := make([]string, len(fullHeader))
	for i, c := range fullHeader {
		cols[i] = "  " + c + " "
	}
	cols[0] = "\ufeffSTORE_ID"
	h, err := tabular.NewHeader(cols)
	require.NoError(t, err)
	assert.False(t, h.HasLabel())
}

func TestParseRow_Valida(t *testing.T) {
	h, err := tabular.NewHeader(append([]string{"date"}, fullHeader...))
	require.NoError(t, err)

	rec, err := h.ParseRow([]string{"2016-04-25", "CA_1", "FOODS_1", "8", "10", "12", "9", "1.0", "0.8", "0.05", "1", "0"})
	require.NoError(t, err)
	assert.Equal(t, "CA_1", rec.StoreID)
	assert.Equal(t, "FOODS_1", rec.ItemID)
	assert.Equal(t, "2016-04-25", rec.Label)
	assert.Equal(t, 8.0, rec.Pred10)
	assert.Equal(t, 10.0, rec.Pred50)
	assert.Equal(t, 12.0, rec.Pred90)
	assert.Equal(t, 9.0, rec.Actual)
	assert.Equal(t, 0.05, rec.WAPE)
	assert.True(t, rec.Overstock)
	assert.False(t, rec.Understock)
}

func TestParseRow_Malformada(t *testing.T) {
	h, err := tabular.NewHeader(fullHeader)
	require.NoError(t, err)

	cases := map[string][]string{
		"número inválido": {"CA_1", "FOODS_1", "x", "10", "12", "9", "1", "0.8", "0.05", "1", "0"},
		"NaN":             {"CA_1", "FOODS_1", "8", "NaN", "12", "9", "1", "0.8", "0.05", "1", "0"},
		"valor vacío":     {"CA_1", "FOODS_1", "8", "10", "", "9", "1", "0.8", "0.05", "1", "0"},
		"bandera":         {"CA_1", "FOODS_1", "8", "10", "12", "9", "1", "0.8", "0.05", "maybe", "0"},
		"fila corta":      {"CA_1", "FOODS_1", "8"},
		"store vacío":     {"", "FOODS_1", "8", "10", "12", "9", "1", "0.8", "0.05", "1", "0"},
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.ParseRow(row)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedRow))
		})
	}
}

func TestParseFlag(t *testing.T) {
	for _, s := range []string{"1", "1.0", "true", "TRUE", "t", "yes"} {
		v, err := tabular.ParseFlag(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "0.0", "false", "f", "no"} {
		v, err := tabular.ParseFlag(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := tabular.ParseFlag("")
	assert.Error(t, err)
}
