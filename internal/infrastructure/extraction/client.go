// Package extraction adapta el servicio auxiliar que extrae los campos de un
// documento de factura subido como archivo.
package extraction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/backend"
)

var _ ports.InvoiceExtractor = (*Client)(nil)

const (
	extractPath  = "/extract/invoice"
	maxFileBytes = 20 << 20
)

// Client cliente del servicio de extracción.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. Con baseURL vacío las llamadas devuelven ErrUnavailable.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ExtractInvoice sube el archivo como multipart (campo "file") y normaliza la respuesta.
func (c *Client) ExtractInvoice(ctx context.Context, filename string, r io.Reader) (*dto.InvoiceExtraction, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("extracción: EXTRACTION_URL no configurado: %w", domain.ErrUnavailable)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("extracción: crear multipart: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(r, maxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("extracción: leer archivo: %w", err)
	}
	if n > maxFileBytes {
		return nil, &domain.ValidationError{Field: "file", Message: "archivo demasiado grande"}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("extracción: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+extractPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("extracción: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("extracción: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("extracción: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("extracción: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &backend.APIError{Status: resp.StatusCode, Detail: backend.ExtractDetail(raw)}
	}

	row, err := backend.DecodeOne(raw, "fields")
	if err != nil {
		return nil, err
	}
	return toExtraction(row), nil
}

// toExtraction acepta nombres en español o inglés.
func toExtraction(r table.Row) *dto.InvoiceExtraction {
	out := &dto.InvoiceExtraction{
		Numero:    text(r, "numero", "invoice_number", "number"),
		Fecha:     text(r, "fecha", "date", "issue_date"),
		Proveedor: text(r, "proveedor", "supplier", "vendor"),
		NIT:       text(r, "nit", "tax_id"),
		Moneda:    text(r, "moneda", "currency"),
		Subtotal:  amount(r, "subtotal"),
		IVA:       amount(r, "iva", "tax"),
		Total:     amount(r, "total"),
		Items:     []dto.InvoiceExtractionItem{},
	}
	items, _ := firstValue(r, "items", "line_items").([]any)
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		ir := table.Row(m)
		out.Items = append(out.Items, dto.InvoiceExtractionItem{
			Descripcion:    text(ir, "descripcion", "description"),
			Cantidad:       amount(ir, "cantidad", "quantity"),
			Unidad:         text(ir, "unidad", "unit"),
			PrecioUnitario: amount(ir, "precio_unitario", "unit_price"),
			Total:          amount(ir, "total", "amount"),
		})
	}
	if out.Total.IsZero() && !out.Subtotal.IsZero() {
		out.Total = out.Subtotal.Add(out.IVA)
	}
	if !out.Subtotal.IsZero() && !out.Total.Equal(out.Subtotal.Add(out.IVA)) {
		out.Warnings = append(out.Warnings, "total no coincide con subtotal + iva")
	}
	return out
}

func firstValue(r table.Row, keys ...string) any {
	for _, k := range keys {
		if v := r.Lookup(k); v != nil {
			return v
		}
	}
	return nil
}

func text(r table.Row, keys ...string) string {
	return table.Format(firstValue(r, keys...))
}

func amount(r table.Row, keys ...string) decimal.Decimal {
	s := strings.ReplaceAll(text(r, keys...), ",", "")
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
