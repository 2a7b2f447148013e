package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/backend"
)

// errorStatus traduce un error al status HTTP y al código de dto.ErrorResponse.
// Es la única tabla de traducción: JSON y fragmentos HTML la comparten.
func errorStatus(err error) (int, string) {
	var apiErr *backend.APIError
	var vErr *domain.ValidationError
	var fErr *fiber.Error
	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnknownResource):
		return fiber.StatusNotFound, "UNKNOWN_RESOURCE"
	case errors.Is(err, domain.ErrDeleteBlocked):
		return fiber.StatusConflict, "DELETE_BLOCKED"
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Status >= 500:
			return fiber.StatusBadGateway, "BACKEND_ERROR"
		case apiErr.Status >= 400:
			return apiErr.Status, backendCode(apiErr.Status)
		}
		return fiber.StatusBadGateway, "BACKEND_ERROR"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "UNAVAILABLE"
	case errors.As(err, &fErr):
		if fErr.Code == fiber.StatusBadRequest {
			return fErr.Code, "INVALID_BODY"
		}
		return fErr.Code, "HTTP_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func backendCode(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "VALIDATION"
	}
	return "BACKEND_ERROR"
}

// respondError responde con dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("code", code).Msg("error en la petición")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// ErrorHandler manejador de errores de Fiber; usa la misma traducción.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}
