package entity

// Field columnas categóricas que alimentan los selectores del dashboard.
type Field string

const (
	FieldStore Field = "store_id"
	FieldItem  Field = "item_id"
)

// RequiredColumns columnas obligatorias de la tabla resumen, en el orden de exportación.
var RequiredColumns = []string{
	"store_id", "item_id",
	"pred_10", "pred_50", "pred_90", "actual",
	"rmse", "mae", "wape",
	"overstock_flag", "understock_flag",
}

// Dataset secuencia ordenada e inmutable de registros.
// Se carga una sola vez; ningún método expone el slice interno.
type Dataset struct {
	records []Record
}

// NewDataset copia los registros recibidos; modificar el slice de entrada no afecta al Dataset.
func NewDataset(records []Record) *Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{records: cp}
}

// Len número de registros.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At devuelve el registro i por valor.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Records devuelve una copia de todos los registros.
func (d *Dataset) Records() []Record {
	cp := make([]Record, d.Len())
	if d != nil {
		copy(cp, d.records)
	}
	return cp
}

// Domain devuelve los valores distintos de field en orden de primera aparición.
// El orden es estable para un mismo Dataset.
func (d *Dataset) Domain(field Field) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := 0; i < d.Len(); i++ {
		var v string
		switch field {
		case FieldStore:
			v = d.records[i].StoreID
		case FieldItem:
			v = d.records[i].ItemID
		default:
			return out
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// FilteredView subsecuencia del Dataset que coincide con una Selection.
// Se recalcula en cada cambio de selección; nunca se muta en sitio.
type FilteredView struct {
	Selection Selection
	Records   []Record
}

// Len número de filas de la vista.
func (v FilteredView) Len() int { return len(v.Records) }

// Empty indica que la selección no produjo filas.
func (v FilteredView) Empty() bool { return len(v.Records) == 0 }
