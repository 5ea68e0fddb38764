package category

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/categories", h.getCategories)
	router.Post("/categories", h.createCategory)
	router.Delete("/categories/:id<int>", h.deleteCategory)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Create(c.UserContext(), *payload)
	if errors.Is(err, ErrInvalidName) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	switch err := h.service.Delete(c.UserContext(), id); {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
	case errors.Is(err, ErrHasProducts):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case err != nil:
		return err
	}
	return c.JSON(fiber.Map{"deleted": true})
}
