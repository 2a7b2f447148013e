package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-admin/internal/application/auth"
	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/resource"
	"github.com/jhoicas/manufactura-admin/internal/application/usecase"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/backend"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/extraction"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/manufactura-admin/internal/interfaces/http"
)

// fakeBackend API REST mínima: bodegas, órdenes de manufactura y login.
type fakeBackend struct {
	mu            sync.Mutex
	deleted       []string
	previewStatus int
	previewBody   string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "secreto" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"credenciales inválidas"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"bk-1","user":{"id":7,"nombre":"Ana","rol":"Admin"}}`))
	case r.Header.Get("Authorization") != "Bearer bk-1":
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token inválido"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/bodegas":
		_, _ = w.Write([]byte(`{"bodegas":[{"id":1,"nombre":"Central","tipo":"MP"},{"id":2,"nombre":"Norte","tipo":"PT"},{"id":3,"nombre":"Ávila","tipo":"MP"}]}`))
	case r.Method == http.MethodPost && r.URL.Path == "/bodegas":
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"ya existe una bodega con ese nombre"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/ordenes-manufactura":
		_, _ = w.Write([]byte(`[{"id":10,"estado":"abierta","cantidad":"5.5"}]`))
	case r.Method == http.MethodGet && r.URL.Path == "/ordenes-manufactura/10/delete-preview":
		if b.previewStatus != 0 {
			w.WriteHeader(b.previewStatus)
		}
		_, _ = w.Write([]byte(b.previewBody))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/ordenes-manufactura/"):
		b.deleted = append(b.deleted, strings.TrimPrefix(r.URL.Path, "/ordenes-manufactura/"))
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`no encontrado`))
	}
}

func newRouterApp(t *testing.T, fb *fakeBackend) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL, 5*time.Second, nil)
	store := usecase.NewViewStore(time.Hour)
	lists := usecase.NewListUseCase(resource.Default(), client, store, usecase.ListConfig{DefaultRowsPerPage: 10}, nil)
	audit := usecase.NewAuditRecorder(nil, nil)
	mutations := usecase.NewMutationUseCase(lists, client, store, audit)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(client, store, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ListUC:       lists,
		MutationUC:   mutations,
		DeleteUC:     usecase.NewDeleteUseCase(lists, mutations, client, store, audit),
		ExportUC:     usecase.NewExportUseCase(lists, pdf.NewMarotoTableExporter()),
		ExtractionUC: usecase.NewInvoiceExtractionUseCase(extraction.NewClient("", time.Second), time.Second),
		Audit:        audit,
		JWTSecret:    testJWTSecret,
		ServiceName:  "manufactura-admin",
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, target, token string, body io.Reader) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", strings.NewReader(`{"username":"ana","password":"secreto"}`))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "admin", out.User.Role)
	assert.Equal(t, "7", out.User.ID)
	return out.Token
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestRouter_Health(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", strings.NewReader(`{"username":"ana","password":"x"}`))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "UNAUTHORIZED", e.Code)
	assert.Equal(t, "backend HTTP 401: credenciales inválidas", e.Message)
}

func TestRouter_LoginValidaAntesDelBackend(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", strings.NewReader(`{"username":"","password":"x"}`))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestRouter_ListadoBusquedaSinTildes(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	tok := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/resources/bodegas?q=avila", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page dto.ListPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Filtered)
	require.Len(t, page.Grid.Rows, 1)
	assert.Equal(t, "Ávila", page.Grid.Rows[0].Cells[0].Text)
}

func TestRouter_RecursoDesconocido(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	tok := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/resources/nada", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_RESOURCE", decodeError(t, resp).Code)
}

func TestRouter_ErrorDelBackendUniforme(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	tok := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/resources/bodegas", tok, strings.NewReader(`{"nombre":"Central"}`))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "CONFLICT", e.Code)
	assert.Equal(t, "backend HTTP 409: ya existe una bodega con ese nombre", e.Message)
}

func TestRouter_BorradoConVistaPrevia(t *testing.T) {
	fb := &fakeBackend{previewBody: `{"canDelete":true,"outputs":{"lotes":1},"revert":{"bultos":[{"id":4,"codigo":"B-4","cantidad":"2.5"}],"totals":{"kg":"2.5"}}}`}
	app := newRouterApp(t, fb)
	tok := login(t, app)

	// sin confirmed=1
	resp := call(t, app, http.MethodDelete, "/api/resources/ordenes-manufactura/10", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// confirmed=1 pero sin diálogo abierto
	resp = call(t, app, http.MethodDelete, "/api/resources/ordenes-manufactura/10?confirmed=1", tok, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DELETE_BLOCKED", decodeError(t, resp).Code)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/resources/ordenes-manufactura/10/delete-preview", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	resp.Body.Close()
	assert.Equal(t, "ready", v["state"])
	assert.Equal(t, true, v["can_confirm"])

	resp = call(t, app, http.MethodDelete, "/api/resources/ordenes-manufactura/10?confirmed=1", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"10"}, fb.deleted)
}

func TestRouter_VistaPreviaFallidaPermiteConfirmar(t *testing.T) {
	fb := &fakeBackend{previewStatus: http.StatusInternalServerError, previewBody: `{"detail":"boom"}`}
	app := newRouterApp(t, fb)
	tok := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/resources/ordenes-manufactura/10/delete-preview", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	resp.Body.Close()
	assert.Equal(t, "failed", v["state"])
	assert.Equal(t, true, v["can_confirm"])

	resp = call(t, app, http.MethodDelete, "/api/resources/ordenes-manufactura/10?confirmed=1", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_VistaPreviaBloqueada(t *testing.T) {
	fb := &fakeBackend{previewBody: `{"can_delete":false,"blocked_reason":"tiene ventas"}`}
	app := newRouterApp(t, fb)
	tok := login(t, app)

	resp := call(t, app, http.MethodGet, "/ui/resources/ordenes-manufactura/10/delete-preview", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(html), "tiene ventas")
	assert.Contains(t, string(html), "disabled")

	resp = call(t, app, http.MethodDelete, "/api/resources/ordenes-manufactura/10?confirmed=1", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Empty(t, fb.deleted)
}

func TestRouter_FragmentoTabla(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	tok := login(t, app)

	resp := call(t, app, http.MethodGet, "/ui/resources/bodegas?sort=nombre&toggle=1", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	html, _ := io.ReadAll(resp.Body)
	body := string(html)
	assert.Contains(t, body, "Bodegas")
	assert.Less(t, strings.Index(body, "Ávila"), strings.Index(body, "Central"), "orden por collation española")
	assert.Contains(t, body, "▲")
}

func TestRouter_FragmentoErrorMismoCanal(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	tok := login(t, app)

	resp := call(t, app, http.MethodGet, "/ui/resources/nada", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ExtraccionSinServicio(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	tok := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/facturas/extract", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestRouter_ExportPDF(t *testing.T) {
	app := newRouterApp(t, &fakeBackend{})
	tok := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/resources/bodegas/export.pdf", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "bodegas-")
}
