package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/resource"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
)

// resourceChecker contrato mínimo para resolver el recurso de la ruta.
// Lo implementa *usecase.ListUseCase.
type resourceChecker interface {
	Resource(sess session.Session, name string) (*resource.Resource, error)
}

// RequireResource verifica que el recurso :resource exista y que la sesión pueda
// verlo (recursos solo-admin). Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 404 UNKNOWN_RESOURCE → nombre no registrado.
//   - 403 FORBIDDEN        → recurso solo para admin.
func RequireResource(checker resourceChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := GetSession(c)
		if !ok {
			return respondError(c, domain.ErrUnauthorized)
		}
		if _, err := checker.Resource(sess, c.Params("resource")); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}
