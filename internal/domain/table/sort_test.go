package table_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

func nombres(rows []table.Row) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["nombre"])
	}
	return out
}

// Escenario: orden ascendente por nombre con un nulo -> [Alpha, Beta, nil].
func TestSorter_NulosAlFinalAscendente(t *testing.T) {
	rows := []table.Row{{"nombre": "Beta"}, {"nombre": nil}, {"nombre": "Alpha"}}
	out := table.NewSorter().Sort(rows, table.SortState{Key: "nombre", Direction: table.DirAsc}, false)
	assert.Equal(t, []any{"Alpha", "Beta", nil}, nombres(out))
}

func TestSorter_NulosAlFinalDescendente(t *testing.T) {
	rows := []table.Row{{"nombre": "Beta"}, {}, {"nombre": "Alpha"}}
	out := table.NewSorter().Sort(rows, table.SortState{Key: "nombre", Direction: table.DirDesc}, false)
	assert.Equal(t, []any{"Beta", "Alpha", nil}, nombres(out))
}

func TestSorter_SinDistinguirMayusculasNiTildes(t *testing.T) {
	rows := []table.Row{{"nombre": "zeta"}, {"nombre": "Árbol"}, {"nombre": "beta"}, {"nombre": "Alfa"}}
	out := table.NewSorter().Sort(rows, table.SortState{Key: "nombre", Direction: table.DirAsc}, false)
	assert.Equal(t, []any{"Alfa", "Árbol", "beta", "zeta"}, nombres(out))
}

func TestSorter_Numerico(t *testing.T) {
	rows := []table.Row{{"cantidad": json.Number("10")}, {"cantidad": 9.5}, {"cantidad": json.Number("100")}}
	out := table.NewSorter().Sort(rows, table.SortState{Key: "cantidad", Direction: table.DirAsc}, false)
	assert.Equal(t, 9.5, out[0]["cantidad"])
	assert.Equal(t, json.Number("10"), out[1]["cantidad"])
	assert.Equal(t, json.Number("100"), out[2]["cantidad"])
}

func TestSorter_ColumnaNumericaConStrings(t *testing.T) {
	rows := []table.Row{{"n": "10"}, {"n": "9"}, {"n": "100"}}
	out := table.NewSorter().Sort(rows, table.SortState{Key: "n", Direction: table.DirAsc}, true)
	assert.Equal(t, "9", out[0]["n"])
	assert.Equal(t, "100", out[2]["n"])
}

func TestSorter_EstableEIdempotente(t *testing.T) {
	rows := []table.Row{
		{"id": 1, "tipo": "b"}, {"id": 2, "tipo": "a"}, {"id": 3, "tipo": "b"}, {"id": 4, "tipo": "a"},
	}
	s := table.NewSorter()
	state := table.SortState{Key: "tipo", Direction: table.DirAsc}
	once := s.Sort(rows, state, false)
	twice := s.Sort(once, state, false)
	assert.Equal(t, once, twice)
	assert.Equal(t, 2, once[0]["id"])
	assert.Equal(t, 4, once[1]["id"])
	assert.Equal(t, 1, once[2]["id"])
	assert.Equal(t, 3, once[3]["id"])

	// asc -> desc -> asc conserva el orden relativo de los empates
	desc := s.Sort(rows, state.Toggle("tipo"), false)
	back := s.Sort(desc, state.Toggle("tipo").Toggle("tipo"), false)
	assert.Equal(t, []int{2, 4, 1, 3}, []int{back[0]["id"].(int), back[1]["id"].(int), back[2]["id"].(int), back[3]["id"].(int)})
}

func TestSortState_Toggle(t *testing.T) {
	var s table.SortState
	s = s.Toggle("nombre")
	assert.Equal(t, table.DirAsc, s.Direction)
	s = s.Toggle("nombre")
	assert.Equal(t, table.DirDesc, s.Direction)
	s = s.Toggle("nombre")
	assert.Equal(t, table.DirAsc, s.Direction)
	s = s.Toggle("codigo")
	assert.Equal(t, table.SortState{Key: "codigo", Direction: table.DirAsc}, s)
}

func TestSorter_NoMutaEntrada(t *testing.T) {
	rows := []table.Row{{"nombre": "b"}, {"nombre": "a"}}
	_ = table.NewSorter().Sort(rows, table.SortState{Key: "nombre", Direction: table.DirAsc}, false)
	assert.Equal(t, "b", rows[0]["nombre"])
}
