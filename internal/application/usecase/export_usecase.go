package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// ExportUseCase exporta la vista actual (filtrada y ordenada, todas las páginas).
type ExportUseCase struct {
	lists    *ListUseCase
	exporter ports.TableExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(lists *ListUseCase, exporter ports.TableExporter) *ExportUseCase {
	return &ExportUseCase{lists: lists, exporter: exporter}
}

// ExportPDF devuelve el PDF y un nombre de archivo sugerido.
func (uc *ExportUseCase) ExportPDF(ctx context.Context, sess session.Session, name string) ([]byte, string, error) {
	r, snap, err := uc.lists.Snapshot(ctx, sess, name)
	if err != nil {
		return nil, "", err
	}
	grid := table.Render(r.Columns, snap.Filtered, table.RenderOptions{Discriminator: r.Discriminator})
	now := time.Now()
	doc, err := uc.exporter.ExportPDF(ctx, ports.ExportMeta{
		Title:       r.Title,
		GeneratedBy: sess.Name,
		GeneratedAt: now,
		Query:       snap.Query,
		Filters:     snap.Filters,
		Total:       len(snap.Filtered),
	}, grid)
	if err != nil {
		return nil, "", fmt.Errorf("exportar %s: %w", name, err)
	}
	return doc, fmt.Sprintf("%s-%s.pdf", name, now.Format("20060102-1504")), nil
}
