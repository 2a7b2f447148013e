package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/usecase"
)

// ResourceHandler listado, CRUD y borrado con vista previa de cualquier recurso registrado.
type ResourceHandler struct {
	lists     *usecase.ListUseCase
	mutations *usecase.MutationUseCase
	deletes   *usecase.DeleteUseCase
	exports   *usecase.ExportUseCase
	audit     *usecase.AuditRecorder
}

// NewResourceHandler construye el handler.
func NewResourceHandler(lists *usecase.ListUseCase, mutations *usecase.MutationUseCase, deletes *usecase.DeleteUseCase, exports *usecase.ExportUseCase, audit *usecase.AuditRecorder) *ResourceHandler {
	return &ResourceHandler{lists: lists, mutations: mutations, deletes: deletes, exports: exports, audit: audit}
}

// parseListQuery lee q, f.<campo>, sort, dir, toggle, page, rows y refresh.
func parseListQuery(c *fiber.Ctx) dto.ListQuery {
	q := dto.ListQuery{
		Filters: make(map[string]string),
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
		Toggle:  c.QueryBool("toggle", false),
		Page:    c.QueryInt("page", 0),
		Rows:    c.Query("rows"),
		Refresh: c.QueryBool("refresh", false),
	}
	for k, v := range c.Queries() {
		if field, ok := strings.CutPrefix(k, "f."); ok && field != "" {
			q.Filters[field] = v
		}
	}
	// q presente (aunque vacío) reemplaza la búsqueda; ausente la conserva.
	if c.Context().QueryArgs().Has("q") {
		text := c.Query("q")
		q.Query = &text
	}
	return q
}

func bodyMap(c *fiber.Ctx) (map[string]any, error) {
	body := make(map[string]any)
	if err := c.BodyParser(&body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	return body, nil
}

// Resources godoc
// @Summary      Recursos visibles para la sesión
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ResourceSummary
// @Router       /api/resources [get]
func (h *ResourceHandler) Resources(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	return c.JSON(h.lists.Resources(sess))
}

// List godoc
// @Summary      Página derivada de un recurso
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        resource  path   string  true   "Recurso (bodegas, lotes, ...)"
// @Param        q         query  string  false  "Búsqueda"
// @Param        sort      query  string  false  "Columna"
// @Param        dir       query  string  false  "asc | desc"
// @Param        toggle    query  bool    false  "Clic en encabezado"
// @Param        page      query  int     false  "Página"
// @Param        rows      query  int     false  "Filas por página"
// @Param        refresh   query  bool    false  "Recargar desde el backend"
// @Success      200  {object}  dto.ListPage
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resources/{resource} [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	page, err := h.lists.Page(c.UserContext(), sess, c.Params("resource"), parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// Get godoc
// @Summary      Obtener registro
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "Recurso"
// @Param        id        path  string  true  "ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resources/{resource}/{id} [get]
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	row, err := h.mutations.Get(c.UserContext(), sess, c.Params("resource"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(row)
}

// Create godoc
// @Summary      Crear registro
// @Tags         resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "Recurso"
// @Success      201  {object}  dto.MutationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/resources/{resource} [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	body, err := bodyMap(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.mutations.Create(c.UserContext(), sess, c.Params("resource"), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar registro
// @Tags         resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "Recurso"
// @Param        id        path  string  true  "ID"
// @Success      200  {object}  dto.MutationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resources/{resource}/{id} [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	body, err := bodyMap(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.mutations.Update(c.UserContext(), sess, c.Params("resource"), c.Params("id"), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar registro
// @Description  Para recursos con vista previa exige confirmed=1 y un diálogo abierto sobre el mismo id.
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        resource   path   string  true   "Recurso"
// @Param        id         path   string  true   "ID"
// @Param        confirmed  query  bool    false  "Confirmación del diálogo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/resources/{resource}/{id} [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	name, id := c.Params("resource"), c.Params("id")
	r, err := h.lists.Resource(sess, name)
	if err != nil {
		return respondError(c, err)
	}
	if r.Previewable && !c.QueryBool("confirmed", false) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CONFIRMATION_REQUIRED",
			Message: fmt.Sprintf("confirme el borrado de %s %s desde la vista previa", name, id),
		})
	}
	if err := h.deletes.Delete(c.UserContext(), sess, name, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("%s %s eliminado", name, id)})
}

// DeletePreview godoc
// @Summary      Vista previa de borrado
// @Description  Abre el diálogo de confirmación. Si el backend falla el diálogo queda en "failed" y la confirmación sigue habilitada.
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "Recurso"
// @Param        id        path  string  true  "ID"
// @Success      200  {object}  deletepreview.View
// @Router       /api/resources/{resource}/{id}/delete-preview [get]
func (h *ResourceHandler) DeletePreview(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	v, err := h.deletes.OpenPreview(c.UserContext(), sess, c.Params("resource"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// CancelPreview godoc
// @Summary      Cerrar el diálogo de borrado
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "Recurso"
// @Success      200  {object}  deletepreview.View
// @Router       /api/resources/{resource}/delete-preview [delete]
func (h *ResourceHandler) CancelPreview(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	name := c.Params("resource")
	if err := h.deletes.CancelPreview(sess, name); err != nil {
		return respondError(c, err)
	}
	v, err := h.deletes.PreviewState(sess, name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// Export godoc
// @Summary      Exportar la vista actual a PDF
// @Tags         resources
// @Security     Bearer
// @Produce      application/pdf
// @Param        resource  path  string  true  "Recurso"
// @Success      200  {file}  binary
// @Router       /api/resources/{resource}/export.pdf [get]
func (h *ResourceHandler) Export(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	doc, filename, err := h.exports.ExportPDF(c.UserContext(), sess, c.Params("resource"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

// History godoc
// @Summary      Bitácora de mutaciones de un registro
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        resource  path   string  true   "Recurso"
// @Param        id        path   string  true   "ID"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Success      200  {array}  entity.AuditEntry
// @Router       /api/resources/{resource}/{id}/history [get]
func (h *ResourceHandler) History(c *fiber.Ctx) error {
	out, err := h.audit.History(c.UserContext(), c.Params("resource"), c.Params("id"), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
