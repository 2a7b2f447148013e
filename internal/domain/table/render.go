package table

// Action botón por fila (editar, eliminar, ver detalle...).
type Action struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
	Danger bool   `json:"danger,omitempty"`
}

// Detail contenido de la fila expandible: una sub-tabla bajo la fila de datos.
type Detail struct {
	Title   string
	Columns []Column
	Rows    []Row
}

// RenderOptions ganchos opcionales del renderer.
type RenderOptions struct {
	// Discriminator se concatena a la clave de fila; vacío usa DefaultDiscriminator.
	Discriminator string
	// Actions columna de acciones heredada.
	Actions func(Row) []Action
	// RenderActions columna de acciones nueva; puede coexistir con Actions.
	RenderActions func(Row, int) []Action
	// RenderExpandedRow devuelve nil si la fila no tiene detalle.
	RenderExpandedRow func(Row) *Detail
}

// Grid proyección (columnas, filas) lista para pintar.
type Grid struct {
	Headers    []HeaderCell `json:"headers"`
	Rows       []GridRow    `json:"rows"`
	HasActions bool         `json:"has_actions"`
	HasLegacy  bool         `json:"has_legacy_actions"`
	Span       int          `json:"span"`
}

// HeaderCell encabezado de columna.
type HeaderCell struct {
	Label    string `json:"label"`
	Accessor string `json:"accessor"`
	Class    string `json:"class,omitempty"`
	Sortable bool   `json:"sortable"`
}

// GridRow fila renderizada.
type GridRow struct {
	Key           string    `json:"key"`
	Cells         []Cell    `json:"cells"`
	LegacyActions []Action  `json:"legacy_actions,omitempty"`
	Actions       []Action  `json:"actions,omitempty"`
	Expanded      *GridRows `json:"expanded,omitempty"`
}

// GridRows sub-tabla de una fila expandida.
type GridRows struct {
	Title   string       `json:"title"`
	Headers []HeaderCell `json:"headers"`
	Rows    [][]Cell     `json:"rows"`
}

// Cell celda renderizada.
type Cell struct {
	Text  string `json:"text"`
	Class string `json:"class,omitempty"`
}

// Render proyecta columnas y filas a una grilla. No ordena ni filtra.
func Render(cols []Column, rows []Row, opts RenderOptions) Grid {
	disc := opts.Discriminator
	if disc == "" {
		disc = DefaultDiscriminator
	}
	g := Grid{
		Headers:    headers(cols),
		Rows:       make([]GridRow, 0, len(rows)),
		HasLegacy:  opts.Actions != nil,
		HasActions: opts.RenderActions != nil,
	}
	g.Span = len(cols)
	if g.HasLegacy {
		g.Span++
	}
	if g.HasActions {
		g.Span++
	}
	for i, r := range rows {
		gr := GridRow{Key: RowKey(r, i, disc), Cells: cells(cols, r)}
		if opts.Actions != nil {
			gr.LegacyActions = opts.Actions(r)
		}
		if opts.RenderActions != nil {
			gr.Actions = opts.RenderActions(r, i)
		}
		if opts.RenderExpandedRow != nil {
			if d := opts.RenderExpandedRow(r); d != nil {
				sub := &GridRows{Title: d.Title, Headers: headers(d.Columns)}
				for _, dr := range d.Rows {
					sub.Rows = append(sub.Rows, cells(d.Columns, dr))
				}
				gr.Expanded = sub
			}
		}
		g.Rows = append(g.Rows, gr)
	}
	return g
}

func headers(cols []Column) []HeaderCell {
	out := make([]HeaderCell, 0, len(cols))
	for _, c := range cols {
		out = append(out, HeaderCell{Label: c.Header, Accessor: c.Accessor, Class: c.Class, Sortable: c.Sortable})
	}
	return out
}

func cells(cols []Column, r Row) []Cell {
	out := make([]Cell, 0, len(cols))
	for _, c := range cols {
		out = append(out, Cell{Text: c.Display(r), Class: c.Class})
	}
	return out
}
