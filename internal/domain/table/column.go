package table

// CellContext argumentos que recibe una función de celda.
type CellContext struct {
	Row   Row
	Value any
}

// CellFunc renderiza una celda a texto mostrable.
type CellFunc func(CellContext) string

// Column describe una columna: encabezado, accessor (ruta en la fila) y render opcional.
type Column struct {
	Header   string
	Accessor string
	Cell     CellFunc
	Class    string // pista CSS para <th>/<td>
	Sortable bool
	Numeric  bool // fuerza comparación numérica al ordenar
}

// Value devuelve el valor crudo de la columna para la fila.
func (c Column) Value(r Row) any {
	return r.Lookup(c.Accessor)
}

// Display devuelve el texto de la celda. Sin función de celda, los valores
// no escalares se muestran vacíos.
func (c Column) Display(r Row) string {
	v := c.Value(r)
	if c.Cell != nil {
		return c.Cell(CellContext{Row: r, Value: v})
	}
	return Format(v)
}

// FindColumn busca una columna por accessor.
func FindColumn(cols []Column, accessor string) (Column, bool) {
	for _, c := range cols {
		if c.Accessor == accessor {
			return c, true
		}
	}
	return Column{}, false
}
