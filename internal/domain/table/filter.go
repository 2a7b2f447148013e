package table

// AllOption centinela de filtro discreto que significa "sin filtro".
const AllOption = "all"

// Filter filtro discreto por igualdad contra la opción seleccionada.
type Filter struct {
	Field   string   `json:"field"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

// Apply indica si la fila pasa el filtro con el valor seleccionado.
func (f Filter) Apply(r Row, selected string) bool {
	if selected == "" || selected == AllOption {
		return true
	}
	return Format(r.Lookup(f.Field)) == selected
}

// DistinctValues devuelve los valores presentes en el campo, en orden de aparición.
// Sirve para poblar las opciones cuando el filtro no declara una lista fija.
func (f Filter) DistinctValues(rows []Row) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		v := Format(r.Lookup(f.Field))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
