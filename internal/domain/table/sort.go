package table

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction dirección de ordenamiento.
type Direction string

const (
	DirNone Direction = ""
	DirAsc  Direction = "asc"
	DirDesc Direction = "desc"
)

// ParseDirection interpreta "asc"/"desc"; cualquier otro valor es DirNone.
func ParseDirection(s string) Direction {
	switch strings.ToLower(s) {
	case "asc":
		return DirAsc
	case "desc":
		return DirDesc
	}
	return DirNone
}

// SortState columna y dirección activas. Key vacío significa sin orden.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Active indica si hay un orden aplicado.
func (s SortState) Active() bool {
	return s.Key != "" && s.Direction != DirNone
}

// Toggle aplica un clic sobre el encabezado key: la misma columna alterna
// asc -> desc -> asc; otra columna reinicia en asc.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key && s.Direction == DirAsc {
		return SortState{Key: key, Direction: DirDesc}
	}
	return SortState{Key: key, Direction: DirAsc}
}

// Sorter ordena filas de forma estable según un SortState.
type Sorter struct {
	Lang language.Tag
}

// NewSorter crea un ordenador con collation en español.
func NewSorter() Sorter {
	return Sorter{Lang: language.Spanish}
}

// Sort devuelve una copia ordenada de rows. Los valores nulos quedan siempre
// al final, en ambas direcciones. numeric fuerza la comparación numérica.
func (s Sorter) Sort(rows []Row, state SortState, numeric bool) []Row {
	out := slices.Clone(rows)
	if !state.Active() {
		return out
	}
	tag := s.Lang
	if tag == language.Und {
		tag = language.Spanish
	}
	// collate.Collator no es seguro para uso concurrente: uno por llamada.
	col := collate.New(tag, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b Row) int {
		return compareValues(col, a.Lookup(state.Key), b.Lookup(state.Key), state.Direction, numeric)
	})
	return out
}

func compareValues(col *collate.Collator, a, b any, dir Direction, numeric bool) int {
	aNil, bNil := isNull(a), isNull(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return 1
	case bNil:
		return -1
	}
	var c int
	da, okA := toDecimal(a, numeric)
	db, okB := toDecimal(b, numeric)
	if okA && okB {
		c = da.Cmp(db)
	} else {
		c = col.CompareString(Format(a), Format(b))
	}
	if dir == DirDesc {
		return -c
	}
	return c
}

func isNull(v any) bool {
	return v == nil
}

// toDecimal convierte valores numéricos. Los strings solo se aceptan si la columna es numérica.
func toDecimal(v any, numericColumn bool) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case int32:
		return decimal.NewFromInt32(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		if !numericColumn {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}
