package table

import (
	"slices"
	"sync"
	"time"
)

// ViewConfig parámetros de una vista de listado.
type ViewConfig struct {
	Columns     []Column
	Matcher     Matcher
	Filters     []Filter
	KeyField    string
	RowsPerPage int
	Sorter      Sorter
}

// ListView controlador de listado: dueño de la copia en memoria del dataset y
// de la derivación búsqueda -> filtros discretos -> orden -> paginación.
// Es seguro para uso concurrente.
type ListView struct {
	mu sync.Mutex

	cfg         ViewConfig
	rows        []Row
	loaded      bool
	loadedAt    time.Time
	generation  uint64
	query       string
	filters     map[string]string
	sort        SortState
	rowsPerPage int
	currentPage int
}

// Snapshot resultado derivado de la vista en un instante.
type Snapshot struct {
	Rows        []Row             // página actual
	Filtered    []Row             // todas las filas filtradas y ordenadas
	Total       int               // tamaño del dataset completo
	TotalPages  int
	CurrentPage int
	RowsPerPage int
	Query       string
	Filters     map[string]string
	Sort        SortState
	LoadedAt    time.Time
}

// NewListView crea una vista vacía.
func NewListView(cfg ViewConfig) *ListView {
	if cfg.RowsPerPage <= 0 {
		cfg.RowsPerPage = DefaultRowsOptions[0]
	}
	if cfg.Sorter.Lang.IsRoot() {
		cfg.Sorter = NewSorter()
	}
	return &ListView{
		cfg:         cfg,
		filters:     make(map[string]string),
		rowsPerPage: cfg.RowsPerPage,
		currentPage: 1,
	}
}

// BeginFetch registra una nueva petición y devuelve su generación.
func (v *ListView) BeginFetch() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	return v.generation
}

// ApplyFetch aplica el resultado de la petición gen. Si llegó una petición más
// reciente, el resultado se descarta y devuelve false.
func (v *ListView) ApplyFetch(gen uint64, rows []Row) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return false
	}
	v.setDataLocked(rows)
	return true
}

// SetData reemplaza el dataset (equivale a BeginFetch + ApplyFetch).
func (v *ListView) SetData(rows []Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	v.setDataLocked(rows)
}

func (v *ListView) setDataLocked(rows []Row) {
	v.rows = slices.Clone(rows)
	v.loaded = true
	v.loadedAt = time.Now()
	v.sort = SortState{}
	v.currentPage = 1
}

// Loaded indica si ya se cargó algún dataset.
func (v *ListView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// SetQuery cambia la búsqueda de texto; reinicia la página.
func (v *ListView) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if q == v.query {
		return
	}
	v.query = q
	v.currentPage = 1
}

// SetFilter cambia un filtro discreto ("all" o vacío lo quita); reinicia página y orden.
func (v *ListView) SetFilter(field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if value == AllOption {
		value = ""
	}
	if v.filters[field] == value {
		return
	}
	if value == "" {
		delete(v.filters, field)
	} else {
		v.filters[field] = value
	}
	v.sort = SortState{}
	v.currentPage = 1
}

// ToggleSort aplica un clic sobre el encabezado key.
func (v *ListView) ToggleSort(key string) SortState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = v.sort.Toggle(key)
	v.currentPage = 1
	return v.sort
}

// SetSort fija el orden explícitamente.
func (v *ListView) SetSort(s SortState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s == v.sort {
		return
	}
	v.sort = s
	v.currentPage = 1
}

// SetRowsPerPage cambia el tamaño de página; reinicia la página.
func (v *ListView) SetRowsPerPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n <= 0 || n == v.rowsPerPage {
		return
	}
	v.rowsPerPage = n
	v.currentPage = 1
}

// SetPage cambia la página actual. No se acota: fuera de rango da una página vacía.
func (v *ListView) SetPage(p int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.currentPage = p
}

// Remove quita del dataset la fila con ese id. Devuelve false si no existía.
func (v *ListView) Remove(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := len(v.rows)
	v.rows = slices.DeleteFunc(v.rows, func(r Row) bool { return r.ID(v.cfg.KeyField) == id })
	if len(v.rows) == n {
		return false
	}
	v.currentPage = 1
	return true
}

// Upsert reemplaza la fila con el mismo id o la agrega al final.
func (v *ListView) Upsert(row Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := row.ID(v.cfg.KeyField)
	if i := slices.IndexFunc(v.rows, func(r Row) bool { return id != "" && r.ID(v.cfg.KeyField) == id }); i >= 0 {
		v.rows[i] = row
	} else {
		v.rows = append(v.rows, row)
	}
	v.currentPage = 1
}

// Snapshot recalcula la derivación completa con el estado actual.
func (v *ListView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	filtered := v.deriveLocked()
	filters := make(map[string]string, len(v.filters))
	for k, val := range v.filters {
		filters[k] = val
	}
	return Snapshot{
		Rows:        Paginate(filtered, v.currentPage, v.rowsPerPage),
		Filtered:    filtered,
		Total:       len(v.rows),
		TotalPages:  TotalPages(len(filtered), v.rowsPerPage),
		CurrentPage: v.currentPage,
		RowsPerPage: v.rowsPerPage,
		Query:       v.query,
		Filters:     filters,
		Sort:        v.sort,
		LoadedAt:    v.loadedAt,
	}
}

// Rows devuelve una copia del dataset completo sin derivar.
func (v *ListView) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.rows)
}

func (v *ListView) deriveLocked() []Row {
	out := make([]Row, 0, len(v.rows))
	for _, r := range v.rows {
		if !v.cfg.Matcher.Match(r, v.query) {
			continue
		}
		if !v.passesFiltersLocked(r) {
			continue
		}
		out = append(out, r)
	}
	if !v.sort.Active() {
		return out
	}
	numeric := false
	if c, ok := FindColumn(v.cfg.Columns, v.sort.Key); ok {
		numeric = c.Numeric
	}
	return v.cfg.Sorter.Sort(out, v.sort, numeric)
}

func (v *ListView) passesFiltersLocked(r Row) bool {
	for field, selected := range v.filters {
		f := Filter{Field: field}
		for _, def := range v.cfg.Filters {
			if def.Field == field {
				f = def
				break
			}
		}
		if !f.Apply(r, selected) {
			return false
		}
	}
	return true
}
