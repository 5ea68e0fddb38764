package home

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/spaceship-store/internal/product"
)

const WelcomeMessage = "Welcome to SpaceShip Parts Store!"

type FeaturedLister interface {
	GetFeatured(ctx context.Context, count int) ([]product.Product, error)
}

// Handler serves the landing page with the newest active parts.
type Handler struct {
	catalog FeaturedLister
	count   int
}

func NewHandler(catalog FeaturedLister, featuredCount int) *Handler {
	return &Handler{catalog: catalog, count: featuredCount}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/", h.getIndex)
}

func (h *Handler) getIndex(c *fiber.Ctx) error {
	featured, err := h.catalog.GetFeatured(c.UserContext(), h.count)
	if err != nil {
		return err
	}
	return c.Render("home/index", fiber.Map{
		"Title":          "Home",
		"WelcomeMessage": WelcomeMessage,
		"Featured":       featured,
	})
}
