package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a UUID (or honors a caller-supplied one)
// and stashes a request-scoped logger carrying it in locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)

		logger := log.With().Str("request_id", id).Str("method", c.Method()).Str("path", c.Path()).Logger()
		c.Locals("logger", &logger)

		return c.Next()
	}
}

// RequestLogger returns the request-scoped logger, or the global one when
// called outside the RequestID middleware.
func RequestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals("logger").(*zerolog.Logger); ok {
		return l
	}
	return &log.Logger
}
