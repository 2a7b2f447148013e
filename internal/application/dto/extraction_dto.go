package dto

import "github.com/shopspring/decimal"

// InvoiceExtraction campos extraídos de un documento de factura.
type InvoiceExtraction struct {
	Numero    string                  `json:"numero"`
	Fecha     string                  `json:"fecha"`
	Proveedor string                  `json:"proveedor"`
	NIT       string                  `json:"nit"`
	Moneda    string                  `json:"moneda,omitempty"`
	Subtotal  decimal.Decimal         `json:"subtotal"`
	IVA       decimal.Decimal         `json:"iva"`
	Total     decimal.Decimal         `json:"total"`
	Items     []InvoiceExtractionItem `json:"items"`
	Warnings  []string                `json:"warnings,omitempty"`
}

// InvoiceExtractionItem línea de la factura.
type InvoiceExtractionItem struct {
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad,omitempty"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
}
