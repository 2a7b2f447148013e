package table

// MaxWindow cantidad máxima de números de página visibles.
const MaxWindow = 5

// TotalPages calcula ceil(n/rowsPerPage); con n == 0 devuelve 1.
func TotalPages(n, rowsPerPage int) int {
	if rowsPerPage <= 0 || n <= 0 {
		return 1
	}
	return (n + rowsPerPage - 1) / rowsPerPage
}

// Paginate devuelve el tramo [(page-1)*rows, page*rows) de items.
// Una página fuera de rango devuelve un slice vacío, nunca error.
func Paginate[T any](items []T, page, rowsPerPage int) []T {
	if page < 1 || rowsPerPage <= 0 {
		return []T{}
	}
	start := (page - 1) * rowsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := start + rowsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageWindow calcula la ventana [start, end] de hasta 5 páginas centrada en current.
func PageWindow(current, total int) (start, end int) {
	if total < 1 {
		total = 1
	}
	switch {
	case current <= 3:
		return 1, min(MaxWindow, total)
	case current >= total-2:
		return max(1, total-(MaxWindow-1)), total
	default:
		return current - 2, current + 2
	}
}

// Pager modelo del control de paginación. No guarda estado: current/total son del llamador.
type Pager struct {
	Current       int   `json:"current"`
	Total         int   `json:"total"`
	Pages         []int `json:"pages"`
	ShowFirst     bool  `json:"show_first"`
	FirstEllipsis bool  `json:"first_ellipsis"`
	ShowLast      bool  `json:"show_last"`
	LastEllipsis  bool  `json:"last_ellipsis"`
	PrevDisabled  bool  `json:"prev_disabled"`
	NextDisabled  bool  `json:"next_disabled"`
	Prev          int   `json:"prev"`
	Next          int   `json:"next"`
}

// NewPager construye el modelo de paginación para current y total.
func NewPager(current, total int) Pager {
	if total < 1 {
		total = 1
	}
	start, end := PageWindow(current, total)
	p := Pager{
		Current:      current,
		Total:        total,
		Pages:        make([]int, 0, end-start+1),
		PrevDisabled: current <= 1,
		NextDisabled: current >= total,
		Prev:         current - 1,
		Next:         current + 1,
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, i)
	}
	// El atajo siempre va acompañado de su elipsis.
	p.ShowFirst = start > 2
	p.FirstEllipsis = p.ShowFirst
	p.ShowLast = end < total-1
	p.LastEllipsis = p.ShowLast
	return p
}

// Target devuelve la página destino de un control ("first", "prev", "next", "last")
// y false si el control está deshabilitado.
func (p Pager) Target(control string) (int, bool) {
	switch control {
	case "first":
		return 1, true
	case "last":
		return p.Total, true
	case "prev":
		return p.Prev, !p.PrevDisabled
	case "next":
		return p.Next, !p.NextDisabled
	}
	return 0, false
}
