package ports

import (
	"context"
	"io"
	"net/url"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/domain/deletepreview"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// ResourceGateway puerto de salida hacia la API REST de inventario y manufactura.
// La sesión se pasa explícitamente en cada llamada.
type ResourceGateway interface {
	List(ctx context.Context, sess session.Session, path, envelope string, query url.Values) ([]table.Row, error)
	Get(ctx context.Context, sess session.Session, path, id string) (table.Row, error)
	Create(ctx context.Context, sess session.Session, path string, body map[string]any) (table.Row, error)
	Update(ctx context.Context, sess session.Session, path, id string, body map[string]any) (table.Row, error)
	Delete(ctx context.Context, sess session.Session, path, id string) error
	DeletePreview(ctx context.Context, sess session.Session, path, id string) (*deletepreview.Preview, error)
}

// LoginResult respuesta del backend al autenticar.
type LoginResult struct {
	Token  string
	UserID string
	Name   string
	Role   string
}

// AuthGateway autenticación contra el backend.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// InvoiceExtractor servicio auxiliar de extracción de facturas (opaco).
type InvoiceExtractor interface {
	ExtractInvoice(ctx context.Context, filename string, r io.Reader) (*dto.InvoiceExtraction, error)
}
