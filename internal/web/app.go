package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// NewApp returns a fiber app configured for server-rendered pages: the
// embedded view engine with the main layout, locals passed to every view,
// the shared error page and per-request sessions. middleware runs before the
// session is loaded.
func NewApp(store *session.Store, middleware ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:           "spaceship-store",
		Views:             NewEngine(),
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      ErrorHandler,
	})
	for _, m := range middleware {
		app.Use(m)
	}
	app.Use(Sessions(store))
	return app
}
