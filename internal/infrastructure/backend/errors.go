package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/manufactura-admin/internal/domain"
)

// APIError respuesta no-2xx del backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend HTTP %d: %s", e.Status, e.Detail)
}

// Unwrap traduce el status a un error de dominio para errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusConflict:
		return domain.ErrConflict
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case e.Status >= 500:
		return domain.ErrUnavailable
	}
	return nil
}

// ExtractDetail obtiene el mensaje de un cuerpo de error: JSON "detail", luego
// JSON "error", luego el texto plano y por último "".
func ExtractDetail(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		for _, key := range []string{"detail", "error"} {
			if raw, ok := obj[key]; ok {
				if s := rawToText(raw); s != "" {
					return s
				}
			}
		}
	}
	return string(trimmed)
}

// rawToText devuelve el string si el valor es string; si no, el JSON compacto (ej. listas de validación).
func rawToText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	if string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
