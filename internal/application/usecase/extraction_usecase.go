package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain"
)

var allowedInvoiceExt = map[string]bool{".pdf": true, ".png": true, ".jpg": true, ".jpeg": true}

// InvoiceExtractionUseCase envía documentos de factura al servicio de extracción.
type InvoiceExtractionUseCase struct {
	extractor ports.InvoiceExtractor
	timeout   time.Duration
}

// NewInvoiceExtractionUseCase construye el caso de uso.
func NewInvoiceExtractionUseCase(extractor ports.InvoiceExtractor, timeout time.Duration) *InvoiceExtractionUseCase {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &InvoiceExtractionUseCase{extractor: extractor, timeout: timeout}
}

// Extract valida el archivo antes de subirlo.
func (uc *InvoiceExtractionUseCase) Extract(ctx context.Context, filename string, size int64, r io.Reader) (*dto.InvoiceExtraction, error) {
	if size <= 0 {
		return nil, &domain.ValidationError{Field: "file", Message: "archivo vacío"}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedInvoiceExt[ext] {
		return nil, &domain.ValidationError{Field: "file", Message: fmt.Sprintf("formato %q no soportado", ext)}
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.extractor.ExtractInvoice(ctx, filepath.Base(filename), r)
}
