package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

func TestRowKey(t *testing.T) {
	assert.Equal(t, "L-001", table.RowKey(table.Row{"lote": "L-001", "id": 4}, 0, ""))
	assert.Equal(t, "4:PIP", table.RowKey(table.Row{"id": 4, "tipo": "PIP"}, 0, "tipo"))
	assert.Equal(t, "9", table.RowKey(table.Row{"id_lote": 9}, 0, "tipo"))
	assert.Equal(t, "3", table.RowKey(table.Row{"nombre": "x"}, 3, "tipo"))
}

func TestRender_CeldasYAcciones(t *testing.T) {
	cols := []table.Column{
		{Header: "Nombre", Accessor: "nombre"},
		{Header: "Proveedor", Accessor: "proveedor.nombre"},
		{Header: "Bultos", Accessor: "bultos"},
		{Header: "Estado", Accessor: "activo", Cell: func(c table.CellContext) string {
			if c.Value == true {
				return "activo"
			}
			return "inactivo"
		}},
	}
	rows := []table.Row{
		{"id": 1, "nombre": "Harina", "proveedor": map[string]any{"nombre": "Molinos"}, "bultos": []any{1, 2}, "activo": true},
		{"id": 1, "tipo": "PIP", "nombre": "Masa"},
	}
	g := table.Render(cols, rows, table.RenderOptions{
		Actions:       func(r table.Row) []table.Action { return []table.Action{{Name: "ver"}} },
		RenderActions: func(r table.Row, i int) []table.Action { return []table.Action{{Name: "eliminar", Danger: true}} },
		RenderExpandedRow: func(r table.Row) *table.Detail {
			if r["tipo"] != "PIP" {
				return nil
			}
			return &table.Detail{Title: "Detalle", Columns: cols[:1], Rows: []table.Row{r}}
		},
	})

	require.Len(t, g.Rows, 2)
	assert.Equal(t, 6, g.Span, "dos columnas de acciones adicionales")
	assert.Equal(t, "1", g.Rows[0].Key)
	assert.Equal(t, "1:PIP", g.Rows[1].Key)

	first := g.Rows[0].Cells
	assert.Equal(t, "Harina", first[0].Text)
	assert.Equal(t, "Molinos", first[1].Text)
	assert.Equal(t, "", first[2].Text, "valores no escalares sin función de celda quedan vacíos")
	assert.Equal(t, "activo", first[3].Text)
	assert.Equal(t, "", g.Rows[1].Cells[1].Text)

	assert.Nil(t, g.Rows[0].Expanded)
	require.NotNil(t, g.Rows[1].Expanded)
	assert.Equal(t, "Masa", g.Rows[1].Expanded.Rows[0][0].Text)
	assert.Len(t, g.Rows[0].LegacyActions, 1)
	assert.Len(t, g.Rows[0].Actions, 1)
}
