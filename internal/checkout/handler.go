package checkout

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/spaceship-store/internal/order"
	"github.com/wichananm65/spaceship-store/internal/web"
)

const emptyCartMessage = "Your cart is empty."

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/checkout", h.getCheckout)
	app.Post("/checkout/placeOrder", h.placeOrder)
	app.Get("/checkout/confirmation/:id<int>", h.getConfirmation)
}

func (h *Handler) getCheckout(c *fiber.Ctx) error {
	summary, err := h.service.Review(web.Session(c))
	if errors.Is(err, ErrEmptyCart) {
		return web.RedirectWithFlash(c, "/cart", emptyCartMessage)
	}
	if err != nil {
		return err
	}
	return c.Render("checkout/index", fiber.Map{
		"Title": "Checkout",
		"Items": summary.Items,
		"Total": summary.Total,
	})
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	placed, err := h.service.PlaceOrder(c.UserContext(), web.Session(c), Customer{
		Name:    c.FormValue("customerName"),
		Email:   c.FormValue("customerEmail"),
		Address: c.FormValue("shippingAddress"),
	})

	var declined *PaymentDeclinedError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return web.RedirectWithFlash(c, "/cart", emptyCartMessage)
	case errors.As(err, &declined):
		return web.RedirectWithFlash(c, "/checkout", "Payment failed: "+declined.Message)
	case errors.Is(err, order.ErrInvalidOrder):
		return web.RedirectWithFlash(c, "/checkout", "Please check your details: "+err.Error())
	case errors.Is(err, order.ErrUnknownProduct):
		return web.RedirectWithFlash(c, "/cart", "A part in your cart is no longer available.")
	case err != nil:
		return err
	}
	return c.Redirect("/checkout/confirmation/"+strconv.Itoa(placed.ID), fiber.StatusFound)
}

func (h *Handler) getConfirmation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	o, err := h.service.Confirmation(c.UserContext(), id)
	if errors.Is(err, order.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Render("checkout/confirmation", fiber.Map{
		"Title": "Order " + o.OrderNumber,
		"Order": o,
	})
}
