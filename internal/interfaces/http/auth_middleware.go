package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/pkg/jwt"
)

// Locals keys.
const (
	LocalSession = "session"
	// SessionCookie cookie con el token de sesión para los fragmentos HTML.
	SessionCookie = "admin_session"
)

// AuthMiddleware valida el token de sesión (Bearer o cookie) y deja una
// session.Session explícita en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		sess := session.Session{
			ID:           claims.SessionID,
			UserID:       claims.UserID,
			Name:         claims.Name,
			Role:         claims.Role,
			BackendToken: claims.BackendToken,
		}
		if !sess.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión incompleta"})
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if ck := c.Cookies(SessionCookie); ck != "" {
			return ck, "", ""
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// RequireRole exige que la sesión tenga alguno de los roles. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := GetSession(c)
		if !ok || sess.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		if !sess.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol '" + sess.Role + "' sin permiso para esta ruta"})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) (session.Session, bool) {
	s, ok := c.Locals(LocalSession).(session.Session)
	return s, ok
}

// GetUserID devuelve el UserID de la sesión o "".
func GetUserID(c *fiber.Ctx) string {
	s, _ := GetSession(c)
	return s.UserID
}

// GetRole devuelve el rol de la sesión o "".
func GetRole(c *fiber.Ctx) string {
	s, _ := GetSession(c)
	return s.Role
}
