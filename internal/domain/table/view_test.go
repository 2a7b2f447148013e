package table_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

func insumos(n int) []table.Row {
	rows := make([]table.Row, 0, n)
	for i := 1; i <= n; i++ {
		tipo := "materia_prima"
		if i%2 == 0 {
			tipo = "empaque"
		}
		rows = append(rows, table.Row{"id": i, "nombre": fmt.Sprintf("Insumo %02d", i), "tipo": tipo})
	}
	return rows
}

func newInsumosView() *table.ListView {
	return table.NewListView(table.ViewConfig{
		Columns:     []table.Column{{Header: "Nombre", Accessor: "nombre", Sortable: true}},
		Matcher:     table.Matcher{Mode: table.SearchFields, Fields: []string{"nombre"}},
		Filters:     []table.Filter{{Field: "tipo", Label: "Tipo"}},
		RowsPerPage: 10,
	})
}

func TestListView_Paginacion(t *testing.T) {
	v := newInsumosView()
	v.SetData(insumos(23))
	v.SetPage(3)

	snap := v.Snapshot()
	assert.Equal(t, 3, snap.TotalPages)
	require.Len(t, snap.Rows, 3)
	assert.Equal(t, 21, snap.Rows[0]["id"])
	assert.Equal(t, 23, snap.Rows[2]["id"])

	v.SetPage(7)
	assert.Empty(t, v.Snapshot().Rows)
}

func TestListView_VacioTieneUnaPagina(t *testing.T) {
	v := newInsumosView()
	v.SetData(nil)
	assert.Equal(t, 1, v.Snapshot().TotalPages)
}

func TestListView_BusquedaYFiltroReinicianPagina(t *testing.T) {
	v := newInsumosView()
	v.SetData(insumos(40))

	v.SetPage(3)
	v.SetQuery("insumo 1")
	snap := v.Snapshot()
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Len(t, snap.Filtered, 10) // 10..19

	v.SetPage(2)
	v.SetFilter("tipo", "empaque")
	snap = v.Snapshot()
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Len(t, snap.Filtered, 5)

	v.SetFilter("tipo", table.AllOption)
	assert.Len(t, v.Snapshot().Filtered, 10)
}

func TestListView_CambioDeFilasPorPaginaReiniciaPagina(t *testing.T) {
	v := newInsumosView()
	v.SetData(insumos(40))
	v.SetPage(4)
	v.SetRowsPerPage(25)
	snap := v.Snapshot()
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, 2, snap.TotalPages)
}

func TestListView_NuevosDatosReinicianOrden(t *testing.T) {
	v := newInsumosView()
	v.SetData(insumos(5))
	v.ToggleSort("nombre")
	v.ToggleSort("nombre")
	assert.Equal(t, table.DirDesc, v.Snapshot().Sort.Direction)
	assert.Equal(t, 5, v.Snapshot().Rows[0]["id"])

	v.SetData(insumos(5))
	assert.False(t, v.Snapshot().Sort.Active())
}

func TestListView_MutacionesRecalculanDerivacion(t *testing.T) {
	v := newInsumosView()
	v.SetData(insumos(3))
	v.SetQuery("insumo")

	assert.True(t, v.Remove("2"))
	assert.False(t, v.Remove("99"))
	assert.Len(t, v.Snapshot().Filtered, 2)

	v.Upsert(table.Row{"id": 1, "nombre": "Harina", "tipo": "materia_prima"})
	snap := v.Snapshot()
	assert.Len(t, snap.Filtered, 1, "la fila editada ya no coincide con la búsqueda")
	assert.Equal(t, 2, snap.Total)

	v.Upsert(table.Row{"id": 7, "nombre": "Insumo nuevo"})
	assert.Equal(t, 3, v.Snapshot().Total)
}

func TestListView_DescartaRespuestasObsoletas(t *testing.T) {
	v := newInsumosView()
	lenta := v.BeginFetch()
	rapida := v.BeginFetch()

	assert.True(t, v.ApplyFetch(rapida, insumos(2)))
	assert.False(t, v.ApplyFetch(lenta, insumos(30)), "la petición anterior no debe sobrescribir la más reciente")
	assert.Equal(t, 2, v.Snapshot().Total)
}
