package backend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-admin/internal/domain/deletepreview"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// previewWire acepta camelCase y snake_case.
type previewWire struct {
	CanDelete          *bool                  `json:"canDelete"`
	CanDeleteSnake     *bool                  `json:"can_delete"`
	BlockedReason      string                 `json:"blockedReason"`
	BlockedReasonSnake string                 `json:"blocked_reason"`
	Outputs            map[string]json.Number `json:"outputs"`
	Revert             struct {
		Bultos []map[string]any `json:"bultos"`
		Totals map[string]any   `json:"totals"`
	} `json:"revert"`
}

// DecodePreview convierte la respuesta del backend al modelo de dominio.
// Sin campo canDelete se asume que el borrado está permitido.
func DecodePreview(body []byte) (*deletepreview.Preview, error) {
	var w previewWire
	if err := decodeJSON(body, &w); err != nil {
		return nil, fmt.Errorf("backend: vista previa inválida: %w", err)
	}
	p := &deletepreview.Preview{
		CanDelete:     true,
		BlockedReason: firstNonEmpty(w.BlockedReason, w.BlockedReasonSnake),
		Outputs:       make(map[string]int, len(w.Outputs)),
		Revert: deletepreview.Revert{
			Bultos: make([]deletepreview.Bulto, 0, len(w.Revert.Bultos)),
			Totals: make(map[string]decimal.Decimal, len(w.Revert.Totals)),
		},
	}
	switch {
	case w.CanDelete != nil:
		p.CanDelete = *w.CanDelete
	case w.CanDeleteSnake != nil:
		p.CanDelete = *w.CanDeleteSnake
	}
	for k, n := range w.Outputs {
		v, err := n.Int64()
		if err != nil {
			continue
		}
		p.Outputs[k] = int(v)
	}
	for _, b := range w.Revert.Bultos {
		r := table.Row(b)
		p.Revert.Bultos = append(p.Revert.Bultos, deletepreview.Bulto{
			ID:       firstNonEmpty(table.Format(r.Lookup("id")), table.Format(r.Lookup("id_bulto"))),
			Codigo:   table.Format(r.Lookup("codigo")),
			Insumo:   firstNonEmpty(table.Format(r.Lookup("insumo.nombre")), table.Format(r.Lookup("insumo"))),
			Cantidad: toDecimal(firstNonNil(r.Lookup("cantidad"), r.Lookup("cantidad_actual"))),
			Unidad:   table.Format(r.Lookup("unidad")),
		})
	}
	for k, v := range w.Revert.Totals {
		p.Revert.Totals[k] = toDecimal(v)
	}
	return p, nil
}

func firstNonNil(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func toDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err == nil {
			return d
		}
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(x)
	}
	return decimal.Zero
}
