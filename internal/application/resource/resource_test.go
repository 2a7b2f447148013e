package resource_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-admin/internal/application/resource"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

func TestDefault_CatalogoCompleto(t *testing.T) {
	reg := resource.Default()
	names := make([]string, 0)
	for _, r := range reg.All() {
		names = append(names, r.Name)
		assert.NotEmpty(t, r.Columns, r.Name)
		for _, c := range r.Columns {
			assert.NotEmpty(t, c.Accessor, "%s: accessor vacío", r.Name)
		}
	}
	assert.Len(t, names, 14)
	assert.IsIncreasing(t, names)

	om, err := reg.Get("ordenes-manufactura")
	require.NoError(t, err)
	assert.True(t, om.Previewable)
}

func TestRegistry_Desconocido(t *testing.T) {
	_, err := resource.Default().Get("naves")
	assert.True(t, errors.Is(err, domain.ErrUnknownResource))
}

func TestRegistry_Duplicado(t *testing.T) {
	reg := resource.NewRegistry()
	require.NoError(t, reg.Register(&resource.Resource{Name: "x", Path: "/x"}))
	assert.Error(t, reg.Register(&resource.Resource{Name: "x", Path: "/x"}))
}

func TestValidate(t *testing.T) {
	r := &resource.Resource{Name: "bodegas", Path: "/bodegas", Required: []string{"nombre"}}
	err := r.Validate(map[string]any{"nombre": ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.NoError(t, r.Validate(map[string]any{"nombre": "Central"}))
}

func TestCells(t *testing.T) {
	assert.Equal(t, "$ 1.234.567,50", resource.Money(table.CellContext{Value: "1234567.5"}))
	assert.Equal(t, "$ -950,00", resource.Money(table.CellContext{Value: -950}))
	assert.Equal(t, "12.00", resource.Quantity(table.CellContext{Value: 12}))
	assert.Equal(t, "05/01/2026", resource.Date(table.CellContext{Value: "2026-01-05"}))
	assert.Equal(t, "Molinos", resource.NestedName(table.CellContext{Value: map[string]any{"nombre": "Molinos"}}))
	assert.Equal(t, "Ana, Luis", resource.Names(table.CellContext{Value: []any{
		map[string]any{"nombre": "Ana"}, map[string]any{"nombre": "Luis"},
	}}))
	assert.Equal(t, "2", resource.Count(table.CellContext{Value: []any{1, 2}}))
}

func TestLotes_FilaExpandida(t *testing.T) {
	lotes, err := resource.Default().Get("lotes")
	require.NoError(t, err)
	grid := table.Render(lotes.Columns, []table.Row{
		{"id_lote": 1, "codigo": "L-1", "bultos": []any{map[string]any{"codigo": "B-1", "cantidad": 3}}},
		{"id_lote": 2, "codigo": "L-2"},
	}, table.RenderOptions{RenderExpandedRow: lotes.Expand})

	require.NotNil(t, grid.Rows[0].Expanded)
	assert.Equal(t, "3.00", grid.Rows[0].Expanded.Rows[0][1].Text)
	assert.Nil(t, grid.Rows[1].Expanded)
}
