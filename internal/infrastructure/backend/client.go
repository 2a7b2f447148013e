// Package backend es el adaptador HTTP hacia la API REST de inventario y
// manufactura. Adjunta el token de la sesión, normaliza los cuerpos de error y
// tolera las distintas formas de respuesta de los listados.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain/deletepreview"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
	"github.com/jhoicas/manufactura-admin/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.ResourceGateway = (*Client)(nil)
	_ ports.AuthGateway     = (*Client)(nil)
)

const maxBodyBytes = 8 << 20

// Client cliente de la API REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. timeout aplica a cada petición además del contexto.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("backend"),
	}
}

// Do ejecuta una petición JSON. body se serializa si no es nil; la respuesta
// cruda se devuelve para que el llamador elija la forma de decodificar.
func (c *Client) Do(ctx context.Context, sess session.Session, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.BackendToken != "" {
		req.Header.Set("Authorization", "Bearer "+sess.BackendToken)
	}
	return c.send(ctx, req)
}

func (c *Client) send(ctx context.Context, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: petición cancelada: %w", ctx.Err())
		}
		return nil, fmt.Errorf("backend: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta: %w", err)
	}
	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Detail: ExtractDetail(raw)}
	}
	return raw, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func itemPath(path, id string) string {
	return strings.TrimRight(path, "/") + "/" + url.PathEscape(id)
}

// List obtiene el listado completo de un recurso.
func (c *Client) List(ctx context.Context, sess session.Session, path, envelope string, query url.Values) ([]table.Row, error) {
	raw, err := c.Do(ctx, sess, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return DecodeList(raw, envelope)
}

// Get obtiene un registro.
func (c *Client) Get(ctx context.Context, sess session.Session, path, id string) (table.Row, error) {
	raw, err := c.Do(ctx, sess, http.MethodGet, itemPath(path, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodeOne(raw, "")
}

// Create crea un registro. Devuelve nil si el backend no devolvió el registro creado.
func (c *Client) Create(ctx context.Context, sess session.Session, path string, body map[string]any) (table.Row, error) {
	raw, err := c.Do(ctx, sess, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	return DecodeOne(raw, "")
}

// Update actualiza un registro.
func (c *Client) Update(ctx context.Context, sess session.Session, path, id string, body map[string]any) (table.Row, error) {
	raw, err := c.Do(ctx, sess, http.MethodPut, itemPath(path, id), nil, body)
	if err != nil {
		return nil, err
	}
	return DecodeOne(raw, "")
}

// Delete borra un registro.
func (c *Client) Delete(ctx context.Context, sess session.Session, path, id string) error {
	_, err := c.Do(ctx, sess, http.MethodDelete, itemPath(path, id), nil, nil)
	return err
}

// DeletePreview consulta el impacto de borrar el registro id.
func (c *Client) DeletePreview(ctx context.Context, sess session.Session, path, id string) (*deletepreview.Preview, error) {
	raw, err := c.Do(ctx, sess, http.MethodGet, itemPath(path, id)+"/delete-preview", nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodePreview(raw)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginWire struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	User        struct {
		ID     any    `json:"id"`
		Nombre string `json:"nombre"`
		Name   string `json:"name"`
		Rol    string `json:"rol"`
		Role   string `json:"role"`
	} `json:"user"`
}

// Login autentica al operador contra el backend.
func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	raw, err := c.Do(ctx, session.Session{}, http.MethodPost, "/auth/login", nil, loginPayload{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	var w loginWire
	if err := decodeJSON(raw, &w); err != nil {
		return nil, fmt.Errorf("backend: respuesta de login inválida: %w", err)
	}
	token := firstNonEmpty(w.AccessToken, w.Token)
	if token == "" {
		return nil, fmt.Errorf("backend: login sin token")
	}
	return &ports.LoginResult{
		Token:  token,
		UserID: table.Format(w.User.ID),
		Name:   firstNonEmpty(w.User.Nombre, w.User.Name, username),
		Role:   strings.ToLower(firstNonEmpty(w.User.Rol, w.User.Role)),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
