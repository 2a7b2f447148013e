package table

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultRowsOptions tamaños de página seleccionables por defecto.
var DefaultRowsOptions = []int{10, 25, 50, 100}

// RowsPerPageSelector selector de tamaño de página.
// En modo controlado el valor lo provee el llamador (Controlled != nil) y el selector solo emite cambios;
// en modo no controlado guarda su propia selección.
type RowsPerPageSelector struct {
	Options    []int
	Controlled *int
	OnChange   func(int)

	selected int
}

// NewRowsPerPageSelector crea un selector no controlado con valor inicial def.
func NewRowsPerPageSelector(options []int, def int, onChange func(int)) *RowsPerPageSelector {
	if len(options) == 0 {
		options = DefaultRowsOptions
	}
	if def <= 0 {
		def = options[0]
	}
	return &RowsPerPageSelector{Options: options, OnChange: onChange, selected: def}
}

// NewControlledRowsPerPageSelector crea un selector cuyo valor pertenece al llamador.
func NewControlledRowsPerPageSelector(options []int, value *int, onChange func(int)) *RowsPerPageSelector {
	if len(options) == 0 {
		options = DefaultRowsOptions
	}
	return &RowsPerPageSelector{Options: options, Controlled: value, OnChange: onChange}
}

// Value valor mostrado actualmente.
func (s *RowsPerPageSelector) Value() int {
	if s.Controlled != nil {
		return *s.Controlled
	}
	return s.selected
}

// Change procesa la entrada cruda del <select>. Si no es un entero o no está
// entre las opciones la ignora (no invoca el callback y conserva el valor).
// Devuelve true si se emitió el cambio.
func (s *RowsPerPageSelector) Change(raw string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !s.Allowed(n) {
		return false
	}
	if s.Controlled == nil {
		s.selected = n
	}
	if s.OnChange != nil {
		s.OnChange(n)
	}
	return true
}

// Allowed indica si n pertenece al conjunto cerrado de opciones.
func (s *RowsPerPageSelector) Allowed(n int) bool {
	return slices.Contains(s.Options, n)
}
