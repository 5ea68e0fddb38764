package order

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.getOrders)
	router.Get("/orders/:id<int>", h.getOrder)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	o, err := h.service.GetByID(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// getOrders returns the orders named by the comma separated ids query
// parameter, in the same sequence.
func (h *Handler) getOrders(c *fiber.Ctx) error {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	orders, err := h.service.ListByIDs(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func parseIDs(raw string) ([]int, error) {
	ids := make([]int, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, errors.New("ids must be a comma separated list of positive integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
