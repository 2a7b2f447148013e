package usecase_test

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/deletepreview"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// fakeGateway backend en memoria por ruta.
type fakeGateway struct {
	mu         sync.Mutex
	rows       map[string][]table.Row
	listCalls  int
	deleted    []string
	preview    *deletepreview.Preview
	previewErr error
	previewFn  func(ctx context.Context, id string) (*deletepreview.Preview, error)
	createNoID bool
	nextID     int
	lastToken  string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{rows: make(map[string][]table.Row), nextID: 100}
}

func (g *fakeGateway) List(_ context.Context, sess session.Session, path, _ string, _ url.Values) ([]table.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	g.lastToken = sess.BackendToken
	out := make([]table.Row, len(g.rows[path]))
	copy(out, g.rows[path])
	return out, nil
}

func (g *fakeGateway) Get(_ context.Context, _ session.Session, path, id string) (table.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.rows[path] {
		if r.ID("") == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (g *fakeGateway) Create(_ context.Context, _ session.Session, path string, body map[string]any) (table.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	row := table.Row{}
	for k, v := range body {
		row[k] = v
	}
	g.nextID++
	row["id"] = strconv.Itoa(g.nextID)
	g.rows[path] = append(g.rows[path], row)
	if g.createNoID {
		return nil, nil
	}
	return row, nil
}

func (g *fakeGateway) Update(_ context.Context, _ session.Session, path, id string, body map[string]any) (table.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.rows[path] {
		if r.ID("") == id {
			for k, v := range body {
				r[k] = v
			}
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (g *fakeGateway) Delete(_ context.Context, _ session.Session, path, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows := g.rows[path][:0]
	for _, r := range g.rows[path] {
		if r.ID("") != id {
			rows = append(rows, r)
		}
	}
	g.rows[path] = rows
	g.deleted = append(g.deleted, id)
	return nil
}

// DeletePreview usa previewFn si está definida; se invoca sin el lock para poder bloquearla.
func (g *fakeGateway) DeletePreview(ctx context.Context, _ session.Session, _, id string) (*deletepreview.Preview, error) {
	g.mu.Lock()
	fn, p, err := g.previewFn, g.preview, g.previewErr
	g.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return p, err
}

var (
	adminSess = session.Session{ID: "s-admin", UserID: "1", Name: "Ana", Role: session.RoleAdmin, BackendToken: "tok-admin"}
	operSess  = session.Session{ID: "s-oper", UserID: "2", Name: "Luis", Role: session.RoleOperador, BackendToken: "tok-oper"}
)

func bodegas(n int) []table.Row {
	rows := make([]table.Row, n)
	for i := range rows {
		rows[i] = table.Row{"id": strconv.Itoa(i + 1), "nombre": "Bodega " + strconv.Itoa(i+1), "activo": i%2 == 0}
	}
	return rows
}
