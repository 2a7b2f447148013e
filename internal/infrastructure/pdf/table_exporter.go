// Package pdf exporta la vista de listado actual (filtrada y ordenada, todas
// las páginas) a un documento PDF.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del recurso      │  Generado por + Fecha     │
//	│  Búsqueda y filtros aplicados                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por columna de la vista                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

var _ ports.TableExporter = (*MarotoTableExporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// landscapeFrom con más columnas que esto la hoja se pone horizontal.
const landscapeFrom = 6

// MarotoTableExporter implementa ports.TableExporter usando Maroto v2.
type MarotoTableExporter struct{}

// NewMarotoTableExporter construye el exportador.
func NewMarotoTableExporter() *MarotoTableExporter { return &MarotoTableExporter{} }

// ExportPDF genera el PDF y devuelve sus bytes.
func (e *MarotoTableExporter) ExportPDF(_ context.Context, meta ports.ExportMeta, grid table.Grid) ([]byte, error) {
	n := len(grid.Headers)
	if n == 0 {
		return nil, fmt.Errorf("pdf: la vista no tiene columnas")
	}

	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithMaxGridSize(n).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(meta.Title, true).
		WithAuthor(nonEmpty(meta.GeneratedBy, "manufactura-admin"), true)
	if n > landscapeFrom {
		b = b.WithOrientation(orientation.Horizontal)
	}
	m := maroto.New(b.Build())

	m.AddRows(headerRow(meta, n))
	if summary := criteria(meta); summary != "" {
		m.AddRows(row.New(6).Add(col.New(n).Add(
			text.New(summary, props.Text{Size: 7.5, Color: colorGray, Top: 1}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(grid.Headers))
	m.AddRows(tableRows(grid)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(n).Add(
		text.New(fmt.Sprintf("Total de registros: %d", meta.Total), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y autor + fecha (der). size es el ancho de la grilla.
func headerRow(meta ports.ExportMeta, size int) core.Row {
	left := size - size/3
	right := size - left
	if right == 0 {
		return row.New(14).Add(col.New(size).Add(
			text.New(meta.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		))
	}
	return row.New(14).Add(
		col.New(left).Add(
			text.New(meta.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(right).Add(
			text.New("Generado por: "+nonEmpty(meta.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Fecha: "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(headers []table.HeaderCell) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, col.New(1).Add(text.New(h.Label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: cellAlign(h.Class),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows una fila por registro; las filas expandidas se listan debajo en texto.
func tableRows(grid table.Grid) []core.Row {
	n := len(grid.Headers)
	out := make([]core.Row, 0, len(grid.Rows))
	for i, gr := range grid.Rows {
		cols := make([]core.Col, 0, n)
		for j, c := range gr.Cells {
			class := c.Class
			if class == "" && j < n {
				class = grid.Headers[j].Class
			}
			cols = append(cols, col.New(1).Add(text.New(c.Text, props.Text{
				Size: 7.5, Align: cellAlign(class), Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)

		if gr.Expanded != nil {
			for _, detail := range expandedLines(gr.Expanded) {
				out = append(out, row.New(4.5).Add(col.New(n).Add(
					text.New(detail, props.Text{Size: 6.5, Color: colorGray, Left: 4}),
				)))
			}
		}
	}
	return out
}

func expandedLines(sub *table.GridRows) []string {
	lines := make([]string, 0, len(sub.Rows)+1)
	if sub.Title != "" {
		lines = append(lines, sub.Title+":")
	}
	for _, cells := range sub.Rows {
		parts := make([]string, 0, len(cells))
		for j, c := range cells {
			if c.Text == "" {
				continue
			}
			if j < len(sub.Headers) {
				parts = append(parts, sub.Headers[j].Label+": "+c.Text)
			} else {
				parts = append(parts, c.Text)
			}
		}
		lines = append(lines, "• "+strings.Join(parts, "   "))
	}
	return lines
}

// criteria resume búsqueda y filtros activos ("Búsqueda: harina · Estado: abierta").
func criteria(meta ports.ExportMeta) string {
	parts := make([]string, 0, len(meta.Filters)+1)
	if q := strings.TrimSpace(meta.Query); q != "" {
		parts = append(parts, "Búsqueda: "+q)
	}
	keys := make([]string, 0, len(meta.Filters))
	for k, v := range meta.Filters {
		if v != "" && v != table.AllOption {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+meta.Filters[k])
	}
	return strings.Join(parts, " · ")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cellAlign(class string) align.Type {
	if class == "num" {
		return align.Right
	}
	return align.Left
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
