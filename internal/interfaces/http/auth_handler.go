package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/auth"
	"github.com/jhoicas/manufactura-admin/internal/application/dto"
)

// AuthHandler maneja login, logout y datos de la sesión.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	secureCookie bool
}

// NewAuthHandler construye el handler de auth. secureCookie marca la cookie como Secure (producción).
func NewAuthHandler(uc *auth.AuthUseCase, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	requestLogger(c).Info().Str("user_id", out.User.ID).Str("role", out.User.Role).Msg("login")
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, ok := GetSession(c); ok {
		h.uc.Logout(sess)
	}
	c.ClearCookie(SessionCookie)
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Operador autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	return c.JSON(dto.UserResponse{ID: sess.UserID, Name: sess.Name, Role: sess.Role})
}
