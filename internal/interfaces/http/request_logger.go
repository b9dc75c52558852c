package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	headerRequestID = fiber.HeaderXRequestID
	localRequestID  = "request_id"
)

// RequestID respeta X-Request-ID entrante o genera un UUID, y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     headerRequestID,
		Generator:  uuid.NewString,
		ContextKey: localRequestID,
	})
}

// RequestLogger registra una línea por petición con su request id. Va después de RequestID.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			// El ErrorHandler global todavía no corrió; se invoca aquí para loguear el status real.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev.Str("request_id", GetRequestID(c)).
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

// GetRequestID devuelve el request id asignado por RequestID.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localRequestID).(string)
	return id
}
