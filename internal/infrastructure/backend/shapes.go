package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// listKeys envoltorios genéricos que usa el backend además del nombre de la entidad.
var listKeys = []string{"data", "items", "results"}

// decodeJSON decodifica conservando los números como json.Number.
func decodeJSON(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(out)
}

// DecodeList acepta `[...]`, `{data:[...]}`, `{items:[...]}`, `{results:[...]}` o `{<envelope>:[...]}`.
func DecodeList(body []byte, envelope string) ([]table.Row, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []table.Row{}, nil
	}
	if trimmed[0] == '[' {
		return decodeRows(trimmed)
	}
	var obj map[string]json.RawMessage
	if err := decodeJSON(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("backend: respuesta de listado inválida: %w", err)
	}
	keys := listKeys
	if envelope != "" {
		keys = append([]string{envelope}, listKeys...)
	}
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '[' {
			return decodeRows(raw)
		}
		// {data: {items: [...]}}
		if len(raw) > 0 && raw[0] == '{' {
			if rows, err := DecodeList(raw, envelope); err == nil {
				return rows, nil
			}
		}
	}
	return nil, fmt.Errorf("backend: forma de listado no reconocida")
}

func decodeRows(raw []byte) ([]table.Row, error) {
	var items []map[string]any
	if err := decodeJSON(raw, &items); err != nil {
		return nil, fmt.Errorf("backend: decodificar filas: %w", err)
	}
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row(it))
	}
	return rows, nil
}

// DecodeOne acepta `{...}` o `{data:{...}}`. Un cuerpo vacío devuelve nil sin error.
func DecodeOne(body []byte, envelope string) (table.Row, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	var obj map[string]any
	if err := decodeJSON(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("backend: respuesta inválida: %w", err)
	}
	for _, k := range []string{"data", envelope} {
		if k == "" {
			continue
		}
		if inner, ok := obj[k].(map[string]any); ok {
			return table.Row(inner), nil
		}
	}
	return table.Row(obj), nil
}
