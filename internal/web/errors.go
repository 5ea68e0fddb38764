package web

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/spaceship-store/internal/logkey"
)

// ErrorHandler renders the error page for storefront routes and a JSON body
// for the admin API.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			slog.String(logkey.Method, c.Method()),
			slog.String(logkey.Path, c.Path()),
			slog.Any(logkey.RequestID, c.Locals("requestid")),
			slog.String(logkey.Error, err.Error()))
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"message": msg})
	}
	if code == fiber.StatusNotFound {
		msg = "The page or part you were looking for does not exist."
	}
	c.Status(code)
	if renderErr := c.Render("errors/error", fiber.Map{"Title": "Error", "Status": code, "Message": msg}); renderErr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
