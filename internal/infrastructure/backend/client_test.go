package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/backend"
)

var testSession = session.Session{UserID: "u-1", Role: "admin", BackendToken: "tok-123"}

func newTestClient(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, 5*time.Second, nil)
}

func TestClient_ListAdjuntaTokenYQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "/bodegas", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("activo"))
		_, _ = w.Write([]byte(`{"bodegas":[{"id":1,"nombre":"Central"},{"id":2,"nombre":"Norte"}]}`))
	})

	rows, err := c.List(context.Background(), testSession, "/bodegas", "bodegas", url.Values{"activo": {"true"}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, json.Number("1"), rows[0]["id"])
	assert.Equal(t, "Norte", rows[1]["nombre"])
}

func TestDecodeList_Formas(t *testing.T) {
	cases := map[string]string{
		"array":    `[{"id":1}]`,
		"data":     `{"data":[{"id":1}]}`,
		"items":    `{"items":[{"id":1}],"total":1}`,
		"envelope": `{"insumos":[{"id":1}]}`,
		"anidado":  `{"data":{"items":[{"id":1}]}}`,
	}
	for name, body := range cases {
		rows, err := backend.DecodeList([]byte(body), "insumos")
		require.NoError(t, err, name)
		assert.Len(t, rows, 1, name)
	}

	rows, err := backend.DecodeList([]byte(``), "insumos")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = backend.DecodeList([]byte(`{"otra":1}`), "insumos")
	assert.Error(t, err)
}

func TestExtractDetail(t *testing.T) {
	assert.Equal(t, "no existe", backend.ExtractDetail([]byte(`{"detail":"no existe"}`)))
	assert.Equal(t, "sin stock", backend.ExtractDetail([]byte(`{"error":"sin stock"}`)))
	assert.Equal(t, `[{"loc":"nombre"}]`, backend.ExtractDetail([]byte(`{"detail":[{"loc":"nombre"}]}`)))
	assert.Equal(t, "Bad Gateway", backend.ExtractDetail([]byte("Bad Gateway\n")))
	assert.Equal(t, "", backend.ExtractDetail(nil))
}

func TestClient_ErrorIncluyeStatusYDetalle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Lote no encontrado"}`))
	})

	_, err := c.Get(context.Background(), testSession, "/lotes", "L-9")
	require.Error(t, err)
	assert.Equal(t, "backend HTTP 404: Lote no encontrado", err.Error())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_DeletePreview(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ordenes-manufactura/7/delete-preview", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"canDelete": false,
			"blockedReason": "tiene salidas",
			"outputs": {"lotes_finales": 2},
			"revert": {
				"bultos": [{"id": 11, "codigo": "B-11", "insumo": {"nombre": "Harina"}, "cantidad": "12.500"}],
				"totals": {"kg": 12.5}
			}
		}`))
	})

	p, err := c.DeletePreview(context.Background(), testSession, "/ordenes-manufactura", "7")
	require.NoError(t, err)
	assert.False(t, p.CanDelete)
	assert.Equal(t, "tiene salidas", p.BlockedReason)
	assert.Equal(t, 2, p.Outputs["lotes_finales"])
	require.Len(t, p.Revert.Bultos, 1)
	assert.Equal(t, "11", p.Revert.Bultos[0].ID)
	assert.Equal(t, "Harina", p.Revert.Bultos[0].Insumo)
	assert.Equal(t, "12.5", p.Revert.Bultos[0].Cantidad.String())
	assert.Equal(t, "12.5", p.Revert.Totals["kg"].String())
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ana", in["username"])
		_, _ = w.Write([]byte(`{"access_token":"abc","user":{"id":5,"nombre":"Ana","rol":"Admin"}}`))
	})

	res, err := c.Login(context.Background(), "ana", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
	assert.Equal(t, "5", res.UserID)
	assert.Equal(t, "admin", res.Role)
}

func TestClient_ContextoCancelado(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.List(ctx, testSession, "/lotes", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
