package dto

import (
	"time"

	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// ListQuery parámetros de una vista de listado (query string).
type ListQuery struct {
	Query   *string           // q; nil = sin cambio
	Filters map[string]string // f.<campo>
	Sort    string            // columna a ordenar
	Dir     string            // asc | desc; vacío + Toggle = clic en encabezado
	Toggle  bool
	Page    int
	Rows    string // crudo: valores no numéricos se ignoran
	Refresh bool
}

// FilterView estado de un filtro discreto.
type FilterView struct {
	Field    string   `json:"field"`
	Label    string   `json:"label"`
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// ListPage vista derivada lista para pintar.
type ListPage struct {
	Resource    string          `json:"resource"`
	Title       string          `json:"title"`
	Grid        table.Grid      `json:"grid"`
	Pager       table.Pager     `json:"pager"`
	RowsPerPage int             `json:"rows_per_page"`
	RowsOptions []int           `json:"rows_options"`
	Total       int             `json:"total"`
	Filtered    int             `json:"filtered"`
	Query       string          `json:"query"`
	Filters     []FilterView    `json:"filters"`
	Sort        table.SortState `json:"sort"`
	LoadedAt    time.Time       `json:"loaded_at"`
	Previewable bool            `json:"previewable"`
}

// ResourceSummary entrada del menú de recursos.
type ResourceSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	AdminOnly   bool   `json:"admin_only"`
	Previewable bool   `json:"previewable"`
}

// MutationResponse resultado de crear/actualizar.
type MutationResponse struct {
	Resource string    `json:"resource"`
	ID       string    `json:"id"`
	Row      table.Row `json:"row,omitempty"`
	Refetch  bool      `json:"refetch"`
}
