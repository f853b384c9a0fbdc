package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
)

func TestNewDataset_CopiaLaEntrada(t *testing.T) {
	in := []entity.Record{{StoreID: "CA_1", ItemID: "FOODS_1"}}
	ds := entity.NewDataset(in)

	in[0].StoreID = "MUTATED"
	assert.Equal(t, "CA_1", ds.At(0).StoreID)

	out := ds.Records()
	out[0].ItemID = "MUTATED"
	assert.Equal(t, "FOODS_1", ds.At(0).ItemID)
}

func TestDataset_NilEsVacio(t *testing.T) {
	var ds *entity.Dataset
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Records())
	assert.Empty(t, ds.Domain(entity.FieldStore))
}

func TestSelection_Matches(t *testing.T) {
	sel := entity.Selection{StoreID: "CA_1", ItemID: "FOODS_1"}
	assert.True(t, sel.Matches(entity.Record{StoreID: "CA_1", ItemID: "FOODS_1"}))
	assert.False(t, sel.Matches(entity.Record{StoreID: "CA_10", ItemID: "FOODS_1"}))
	assert.False(t, sel.Matches(entity.Record{StoreID: "ca_1", ItemID: "FOODS_1"}))
}
