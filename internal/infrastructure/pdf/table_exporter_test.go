package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

func TestExportPDF_GeneraDocumento(t *testing.T) {
	cols := []table.Column{
		{Header: "Nombre", Accessor: "nombre"},
		{Header: "Cantidad", Accessor: "cantidad", Class: "num"},
	}
	rows := []table.Row{
		{"id": "1", "nombre": "Harina", "cantidad": 12},
		{"id": "2", "nombre": "Azúcar", "cantidad": 3},
	}
	grid := table.Render(cols, rows, table.RenderOptions{})

	doc, err := NewMarotoTableExporter().ExportPDF(context.Background(), ports.ExportMeta{
		Title: "Insumos", GeneratedBy: "Ana", GeneratedAt: time.Now(), Total: 2,
	}, grid)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestExportPDF_SinColumnas(t *testing.T) {
	_, err := NewMarotoTableExporter().ExportPDF(context.Background(), ports.ExportMeta{}, table.Grid{})
	assert.Error(t, err)
}

func TestCriteria(t *testing.T) {
	got := criteria(ports.ExportMeta{
		Query:   " harina ",
		Filters: map[string]string{"estado": "abierta", "tipo": table.AllOption},
	})
	assert.Equal(t, "Búsqueda: harina · estado: abierta", got)
}
