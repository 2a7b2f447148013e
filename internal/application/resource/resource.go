// Package resource define la vista de listado parametrizada de cada entidad
// del backend: ruta, columnas, proyección de búsqueda, filtros y acciones.
package resource

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// Resource definición de un recurso listable.
type Resource struct {
	Name          string // segmento de URL del panel ("ordenes-manufactura")
	Title         string
	Path          string // ruta en el backend
	Envelope      string // clave del listado en respuestas {<envelope>: [...]}
	KeyField      string // vacío = lote, id, id_lote
	Discriminator string
	Columns       []table.Column
	Search        table.Matcher
	Filters       []table.Filter
	// Required campos obligatorios al crear; se validan antes de llamar al backend.
	Required    []string
	AdminOnly   bool
	ReadOnly    bool
	Previewable bool
	// Expand fila expandible opcional (ej. bultos de un lote).
	Expand func(table.Row) *table.Detail
}

// ViewConfig configuración de la vista de listado con rowsPerPage filas por página.
func (r *Resource) ViewConfig(rowsPerPage int) table.ViewConfig {
	return table.ViewConfig{
		Columns:     r.Columns,
		Matcher:     r.Search,
		Filters:     r.Filters,
		KeyField:    r.KeyField,
		RowsPerPage: rowsPerPage,
		Sorter:      table.NewSorter(),
	}
}

// Validate revisa los campos obligatorios de un alta.
func (r *Resource) Validate(body map[string]any) error {
	for _, f := range r.Required {
		v, ok := body[f]
		if !ok || v == nil {
			return &domain.ValidationError{Field: f, Message: "es requerido"}
		}
		if s, isStr := v.(string); isStr && s == "" {
			return &domain.ValidationError{Field: f, Message: "es requerido"}
		}
	}
	return nil
}

// Registry catálogo de recursos por nombre.
type Registry struct {
	mu        sync.RWMutex
	resources map[string]*Resource
}

// NewRegistry crea un catálogo vacío.
func NewRegistry() *Registry {
	return &Registry{resources: make(map[string]*Resource)}
}

// Register agrega un recurso; un nombre repetido es un error de programación.
func (reg *Registry) Register(r *Resource) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if r.Name == "" || r.Path == "" {
		return fmt.Errorf("resource: nombre y ruta son requeridos")
	}
	if _, ok := reg.resources[r.Name]; ok {
		return fmt.Errorf("resource: %q ya registrado", r.Name)
	}
	if r.Discriminator == "" {
		r.Discriminator = table.DefaultDiscriminator
	}
	reg.resources[r.Name] = r
	return nil
}

// Get busca un recurso por nombre.
func (reg *Registry) Get(name string) (*Resource, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.resources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownResource, name)
	}
	return r, nil
}

// All devuelve los recursos ordenados por nombre.
func (reg *Registry) All() []*Resource {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Resource, 0, len(reg.resources))
	for _, r := range reg.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
