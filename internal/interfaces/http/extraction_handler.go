package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/usecase"
	"github.com/jhoicas/manufactura-admin/internal/domain"
)

// ExtractionHandler extracción de facturas desde un documento subido.
type ExtractionHandler struct {
	uc *usecase.InvoiceExtractionUseCase
}

// NewExtractionHandler construye el handler.
func NewExtractionHandler(uc *usecase.InvoiceExtractionUseCase) *ExtractionHandler {
	return &ExtractionHandler{uc: uc}
}

// Extract godoc
// @Summary      Extraer datos de una factura
// @Tags         facturas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF o imagen de la factura"
// @Success      200   {object}  dto.InvoiceExtraction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/facturas/extract [post]
func (h *ExtractionHandler) Extract(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, &domain.ValidationError{Field: "file", Message: "es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.Extract(c.UserContext(), fh.Filename, fh.Size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
