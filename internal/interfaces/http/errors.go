package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ucoffee-api/internal/application/dto"
	"github.com/jhoicas/ucoffee-api/internal/domain"
)

// writeError traduce errores de dominio a status HTTP + {"error": ...}.
// Los errores no clasificados responden 500 sin detalle interno y se registran.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", "ya existe un usuario con ese email")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "email o password incorrectos")
	case errors.Is(err, domain.ErrAccountBlocked):
		return fail(c, fiber.StatusForbidden, "ACCOUNT_BLOCKED", "la cuenta está bloqueada")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado")
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", GetRequestID(c)).
		Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, panics recuperados, etc. siempre en JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			return writeError(c, err)
		}
		return fail(c, fe.Code, code, fe.Message)
	}
	return writeError(c, err)
}
