package web

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/spaceship-store/internal/logkey"
)

// NewLogger builds the process logger. format is "json" or "text".
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// RequestLogger logs one line per request. It expects the requestid
// middleware to run first.
func RequestLogger() fiber.Handler {
	return requestLogger(slog.Default())
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("request",
			slog.Any(logkey.RequestID, c.Locals("requestid")),
			slog.String(logkey.Method, c.Method()),
			slog.String(logkey.Path, c.Path()),
			slog.Int(logkey.Status, statusOf(c, err)),
			slog.Int64(logkey.Latency, time.Since(start).Milliseconds()))
		return err
	}
}
