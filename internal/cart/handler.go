package cart

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/spaceship-store/internal/logkey"
	"github.com/wichananm65/spaceship-store/internal/product"
	"github.com/wichananm65/spaceship-store/internal/web"
)

// CountLocal is the view binding for the cart badge.
const CountLocal = "CartCount"

type Availability interface {
	GetAvailability(ctx context.Context, ids []int) (map[int]product.Product, error)
}

type Handler struct {
	store   *Store
	catalog Availability
}

func NewHandler(store *Store, catalog Availability) *Handler {
	return &Handler{store: store, catalog: catalog}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/cart", h.getCart)
	app.Post("/cart/add", h.addToCart)
	app.Post("/cart/update", h.updateQuantity)
	app.Post("/cart/remove", h.removeFromCart)
	app.Post("/cart/clear", h.clearCart)
}

// Badge exposes the cart item count to every rendered page.
func (h *Handler) Badge(c *fiber.Ctx) error {
	if sess := web.Session(c); sess != nil {
		c.Locals(CountLocal, h.store.Count(sess))
	}
	return c.Next()
}

type lineView struct {
	Item    Item
	InStock bool
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	items := h.store.Items(web.Session(c))

	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	available, err := h.catalog.GetAvailability(c.UserContext(), ids)
	if err != nil {
		return err
	}

	lines := make([]lineView, len(items))
	for i, it := range items {
		p, ok := available[it.ProductID]
		lines[i] = lineView{Item: it, InStock: ok && p.InStock()}
	}
	return c.Render("cart/index", fiber.Map{
		"Title": "Cart",
		"Lines": lines,
		"Total": Total(items),
	})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.FormValue("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if err != nil {
		qty = 1
	}

	err = h.store.Add(c.UserContext(), web.Session(c), id, qty)
	if errors.Is(err, product.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	slog.Info("product added to cart", slog.Int(logkey.ProductID, id), slog.Int("quantity", ClampQuantity(qty)))
	return c.Redirect("/cart", fiber.StatusFound)
}

// updateQuantity treats a missing qty as 0, which removes the line.
func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.FormValue("id"))
	if err != nil {
		return c.Redirect("/cart", fiber.StatusFound)
	}
	qty, _ := strconv.Atoi(c.FormValue("qty"))
	if err := h.store.UpdateQuantity(web.Session(c), id, qty); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.FormValue("id"))
	if err != nil {
		return c.Redirect("/cart", fiber.StatusFound)
	}
	if err := h.store.Remove(web.Session(c), id); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if err := h.store.Clear(web.Session(c)); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}
