package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchBar entrada de texto única: emite el texto crudo en cada cambio,
// sin debounce, sin longitud mínima y sin recortar espacios.
type SearchBar struct {
	OnQuery func(string)
	text    string
}

// Input registra el texto actual y lo emite tal cual.
func (b *SearchBar) Input(text string) {
	b.text = text
	if b.OnQuery != nil {
		b.OnQuery(text)
	}
}

// Text devuelve el último texto recibido.
func (b *SearchBar) Text() string { return b.text }

// SearchMode decide contra qué se compara la consulta.
type SearchMode int

const (
	// SearchFields subcadena sin distinguir mayúsculas sobre una proyección de campos.
	SearchFields SearchMode = iota
	// SearchRecord subcadena sobre el registro completo serializado.
	SearchRecord
	// SearchFuzzy los caracteres de la consulta aparecen en orden dentro de algún campo.
	SearchFuzzy
)

// Matcher aplica la búsqueda de texto de una vista.
type Matcher struct {
	Mode   SearchMode
	Fields []string
}

// Normalize pasa a minúsculas y elimina tildes ("Bodéga" -> "bodega").
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Match indica si la fila cumple la consulta. Una consulta vacía acepta todo.
func (m Matcher) Match(r Row, query string) bool {
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if m.Mode == SearchRecord || len(m.Fields) == 0 {
		return strings.Contains(Normalize(Stringify(r)), q)
	}
	for _, f := range m.Fields {
		text := Normalize(Format(r.Lookup(f)))
		if text == "" {
			continue
		}
		if m.Mode == SearchFuzzy {
			if fuzzyContains(text, q) {
				return true
			}
			continue
		}
		if strings.Contains(text, q) {
			return true
		}
	}
	return false
}

// fuzzyContains indica si las runas de q aparecen en orden dentro de text.
func fuzzyContains(text, q string) bool {
	qr := []rune(q)
	i := 0
	for _, c := range text {
		if i < len(qr) && c == qr[i] {
			i++
		}
	}
	return i == len(qr)
}
