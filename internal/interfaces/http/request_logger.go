package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/pkg/logger"
)

const localLogger = "logger"

// RequestLogger guarda un sublogger con el request id en locals y registra cada petición.
// Debe ir después de requestid.New().
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals("requestid").(string)
		reqLog := log.WithStr("request_id", rid)
		c.Locals(localLogger, reqLog)

		err := c.Next()
		if err != nil {
			// El ErrorHandler todavía no escribió el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}

// requestLogger logger de la petición; sin middleware devuelve uno nulo.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
