package ports

import (
	"context"
	"time"

	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// ExportMeta datos de cabecera del documento exportado.
type ExportMeta struct {
	Title       string
	GeneratedBy string
	GeneratedAt time.Time
	Query       string
	Filters     map[string]string
	Total       int
}

// TableExporter genera un documento a partir de una grilla ya derivada.
type TableExporter interface {
	ExportPDF(ctx context.Context, meta ExportMeta, grid table.Grid) ([]byte, error)
}
