package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/application/resource"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
	"github.com/jhoicas/manufactura-admin/pkg/logger"
)

// ListConfig valores por defecto de las vistas.
type ListConfig struct {
	DefaultRowsPerPage int
	RowsPerPageOptions []int
}

// ListUseCase deriva la página visible de un recurso a partir de la vista en memoria de la sesión.
type ListUseCase struct {
	registry *resource.Registry
	gateway  ports.ResourceGateway
	store    *ViewStore
	cfg      ListConfig
	log      *logger.Logger
}

// NewListUseCase construye el caso de uso.
func NewListUseCase(registry *resource.Registry, gateway ports.ResourceGateway, store *ViewStore, cfg ListConfig, log *logger.Logger) *ListUseCase {
	if len(cfg.RowsPerPageOptions) == 0 {
		cfg.RowsPerPageOptions = table.DefaultRowsOptions
	}
	if cfg.DefaultRowsPerPage <= 0 {
		cfg.DefaultRowsPerPage = cfg.RowsPerPageOptions[0]
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ListUseCase{registry: registry, gateway: gateway, store: store, cfg: cfg, log: log.Named("list")}
}

// Resources recursos visibles para la sesión.
func (uc *ListUseCase) Resources(sess session.Session) []dto.ResourceSummary {
	out := make([]dto.ResourceSummary, 0)
	for _, r := range uc.registry.All() {
		if r.AdminOnly && !sess.IsAdmin() {
			continue
		}
		out = append(out, dto.ResourceSummary{Name: r.Name, Title: r.Title, AdminOnly: r.AdminOnly, Previewable: r.Previewable})
	}
	return out
}

// Resource resuelve un recurso y verifica que la sesión pueda verlo.
func (uc *ListUseCase) Resource(sess session.Session, name string) (*resource.Resource, error) {
	r, err := uc.registry.Get(name)
	if err != nil {
		return nil, err
	}
	if r.AdminOnly && !sess.IsAdmin() {
		return nil, fmt.Errorf("%w: %s requiere rol admin", domain.ErrForbidden, name)
	}
	return r, nil
}

func (uc *ListUseCase) view(sess session.Session, r *resource.Resource) *table.ListView {
	return uc.store.View(sess.ID, r.Name, func() table.ViewConfig { return r.ViewConfig(uc.cfg.DefaultRowsPerPage) })
}

// Load trae el listado completo del backend. Si mientras tanto se lanzó otra
// carga más reciente para la misma vista, este resultado se descarta.
func (uc *ListUseCase) Load(ctx context.Context, sess session.Session, r *resource.Resource, view *table.ListView) error {
	gen := view.BeginFetch()
	rows, err := uc.gateway.List(ctx, sess, r.Path, r.Envelope, url.Values{})
	if err != nil {
		return err
	}
	if !view.ApplyFetch(gen, rows) {
		uc.log.Debug().Str("resource", r.Name).Uint64("generation", gen).Msg("respuesta obsoleta descartada")
	}
	return nil
}

// Page aplica los parámetros de la petición a la vista y devuelve la página resultante.
func (uc *ListUseCase) Page(ctx context.Context, sess session.Session, name string, q dto.ListQuery) (*dto.ListPage, error) {
	r, err := uc.Resource(sess, name)
	if err != nil {
		return nil, err
	}
	view := uc.view(sess, r)
	if q.Refresh || !view.Loaded() {
		if err := uc.Load(ctx, sess, r, view); err != nil {
			return nil, err
		}
	}
	uc.apply(view, r, q)
	return uc.build(sess, r, view), nil
}

// Snapshot derivación actual completa (todas las páginas); se usa al exportar.
func (uc *ListUseCase) Snapshot(ctx context.Context, sess session.Session, name string) (*resource.Resource, table.Snapshot, error) {
	r, err := uc.Resource(sess, name)
	if err != nil {
		return nil, table.Snapshot{}, err
	}
	view := uc.view(sess, r)
	if !view.Loaded() {
		if err := uc.Load(ctx, sess, r, view); err != nil {
			return nil, table.Snapshot{}, err
		}
	}
	return r, view.Snapshot(), nil
}

// apply el orden importa: cada cambio reinicia la página, así que la página va al final.
func (uc *ListUseCase) apply(view *table.ListView, r *resource.Resource, q dto.ListQuery) {
	if q.Query != nil {
		search := table.SearchBar{OnQuery: view.SetQuery}
		search.Input(*q.Query)
	}
	for _, f := range r.Filters {
		if v, ok := q.Filters[f.Field]; ok {
			view.SetFilter(f.Field, v)
		}
	}
	if q.Sort != "" {
		if _, ok := table.FindColumn(r.Columns, q.Sort); ok {
			if q.Toggle {
				view.ToggleSort(q.Sort)
			} else {
				view.SetSort(table.SortState{Key: q.Sort, Direction: table.ParseDirection(q.Dir)})
			}
		}
	}
	if q.Rows != "" {
		current := view.Snapshot().RowsPerPage
		selector := table.NewControlledRowsPerPageSelector(uc.cfg.RowsPerPageOptions, &current, func(n int) {
			view.SetRowsPerPage(n)
		})
		selector.Change(q.Rows)
	}
	if q.Page > 0 {
		view.SetPage(q.Page)
	}
}

func (uc *ListUseCase) build(sess session.Session, r *resource.Resource, view *table.ListView) *dto.ListPage {
	snap := view.Snapshot()
	grid := table.Render(r.Columns, snap.Rows, uc.renderOptions(sess, r))

	var all []table.Row
	filters := make([]dto.FilterView, 0, len(r.Filters))
	for _, f := range r.Filters {
		opts := f.Options
		if len(opts) == 0 {
			if all == nil {
				all = view.Rows()
			}
			opts = f.DistinctValues(all)
		}
		sel := snap.Filters[f.Field]
		if sel == "" {
			sel = table.AllOption
		}
		filters = append(filters, dto.FilterView{Field: f.Field, Label: f.Label, Options: opts, Selected: sel})
	}

	return &dto.ListPage{
		Resource:    r.Name,
		Title:       r.Title,
		Grid:        grid,
		Pager:       table.NewPager(snap.CurrentPage, snap.TotalPages),
		RowsPerPage: snap.RowsPerPage,
		RowsOptions: uc.cfg.RowsPerPageOptions,
		Total:       snap.Total,
		Filtered:    len(snap.Filtered),
		Query:       snap.Query,
		Filters:     filters,
		Sort:        snap.Sort,
		LoadedAt:    snap.LoadedAt,
		Previewable: r.Previewable,
	}
}

// renderOptions acciones por fila: "ver" (columna heredada) y editar/eliminar.
func (uc *ListUseCase) renderOptions(sess session.Session, r *resource.Resource) table.RenderOptions {
	base := "/api/resources/" + r.Name + "/"
	opts := table.RenderOptions{
		Discriminator:     r.Discriminator,
		RenderExpandedRow: r.Expand,
		Actions: func(row table.Row) []table.Action {
			id := row.ID(r.KeyField)
			if id == "" {
				return nil
			}
			return []table.Action{{Name: "ver", Label: "Ver", Href: base + url.PathEscape(id), Method: "GET"}}
		},
	}
	if r.ReadOnly {
		return opts
	}
	canDelete := !r.AdminOnly || sess.IsAdmin()
	opts.RenderActions = func(row table.Row, _ int) []table.Action {
		id := row.ID(r.KeyField)
		if id == "" {
			return nil
		}
		href := base + url.PathEscape(id)
		actions := []table.Action{{Name: "editar", Label: "Editar", Href: href, Method: "PUT"}}
		if canDelete {
			del := table.Action{Name: "eliminar", Label: "Eliminar", Href: href, Method: "DELETE", Danger: true}
			if r.Previewable {
				del.Href = href + "/delete-preview"
				del.Method = "GET"
			}
			actions = append(actions, del)
		}
		return actions
	}
	return opts
}
