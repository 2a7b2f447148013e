package resource

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// NestedName muestra el nombre de un objeto anidado ({"nombre": ...}) o el valor escalar.
func NestedName(c table.CellContext) string {
	if m, ok := c.Value.(map[string]any); ok {
		r := table.Row(m)
		for _, k := range []string{"nombre", "name", "razon_social", "codigo"} {
			if s := table.Format(r.Lookup(k)); s != "" {
				return s
			}
		}
		return ""
	}
	return table.Format(c.Value)
}

// Quantity formatea cantidades con dos decimales.
func Quantity(c table.CellContext) string {
	s := table.Format(c.Value)
	if s == "" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.StringFixed(2)
}

// Money formatea montos con separador de miles.
func Money(c table.CellContext) string {
	s := table.Format(c.Value)
	if s == "" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return "$ " + groupThousands(d.StringFixed(2))
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return sign + b.String()
}

// Date muestra fechas ISO como dd/mm/aaaa.
func Date(c table.CellContext) string {
	s := table.Format(c.Value)
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

// Count muestra la cantidad de elementos de una lista.
func Count(c table.CellContext) string {
	if items, ok := c.Value.([]any); ok {
		return table.Format(len(items))
	}
	return table.Format(c.Value)
}

// Names une los nombres de una lista de objetos.
func Names(c table.CellContext) string {
	items, ok := c.Value.([]any)
	if !ok {
		return table.Format(c.Value)
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		if n := NestedName(table.CellContext{Value: it}); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}
