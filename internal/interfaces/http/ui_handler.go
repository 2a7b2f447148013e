package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/usecase"
	"github.com/jhoicas/manufactura-admin/internal/domain/deletepreview"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

//go:embed templates/*.html
var templateFS embed.FS

var uiTemplates = template.Must(template.New("ui").Funcs(template.FuncMap{
	"link":     link,
	"itoa":     strconv.Itoa,
	"sortMark": sortMark,
}).ParseFS(templateFS, "templates/*.html"))

// link arma base?k1=v1&k2=v2.
func link(base string, kv ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func sortMark(s table.SortState, accessor string) string {
	if s.Key != accessor {
		return ""
	}
	switch s.Direction {
	case table.DirAsc:
		return " ▲"
	case table.DirDesc:
		return " ▼"
	}
	return ""
}

type tableData struct {
	Base string
	Page *dto.ListPage
}

type previewData struct {
	Resource string
	Title    string
	View     deletepreview.View
}

// UIHandler fragmentos HTML: tabla del recurso y diálogo de borrado.
type UIHandler struct {
	lists   *usecase.ListUseCase
	deletes *usecase.DeleteUseCase
}

// NewUIHandler construye el handler.
func NewUIHandler(lists *usecase.ListUseCase, deletes *usecase.DeleteUseCase) *UIHandler {
	return &UIHandler{lists: lists, deletes: deletes}
}

func renderFragment(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := uiTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// fragmentError mismo código y mensaje que respondError, como banner HTML.
func fragmentError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("code", code).Msg("error en fragmento")
	}
	return renderFragment(c, status, "error-banner", dto.ErrorResponse{Code: code, Message: err.Error()})
}

// Table GET /ui/resources/:resource — mismos parámetros que la API JSON.
func (h *UIHandler) Table(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	name := c.Params("resource")
	page, err := h.lists.Page(c.UserContext(), sess, name, parseListQuery(c))
	if err != nil {
		return fragmentError(c, err)
	}
	return renderFragment(c, fiber.StatusOK, "table", tableData{Base: "/ui/resources/" + name, Page: page})
}

// DeletePreview GET /ui/resources/:resource/:id/delete-preview — diálogo de confirmación.
func (h *UIHandler) DeletePreview(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	name := c.Params("resource")
	r, err := h.lists.Resource(sess, name)
	if err != nil {
		return fragmentError(c, err)
	}
	v, err := h.deletes.OpenPreview(c.UserContext(), sess, name, c.Params("id"))
	if err != nil {
		return fragmentError(c, err)
	}
	return renderFragment(c, fiber.StatusOK, "delete-preview", previewData{Resource: name, Title: r.Title, View: v})
}

// CancelPreview POST /ui/resources/:resource/delete-preview/cancel — cierra el diálogo.
func (h *UIHandler) CancelPreview(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	if err := h.deletes.CancelPreview(sess, c.Params("resource")); err != nil {
		return fragmentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
