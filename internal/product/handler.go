package product

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/products", h.getProducts)
	app.Get("/products/:id", h.getProduct)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/products", h.listAllProducts)
	router.Post("/products", h.createProduct)
	router.Put("/products/:id<int>", h.updateProduct)
	router.Delete("/products/:id<int>", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	query := c.Query("query")
	var categoryID *int
	if v, err := strconv.Atoi(c.Query("categoryId")); err == nil {
		categoryID = &v
	}

	products, err := h.service.Search(c.UserContext(), query, categoryID)
	if err != nil {
		return err
	}
	categories, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		return err
	}

	selected := 0
	if categoryID != nil {
		selected = *categoryID
	}
	return c.Render("products/index", fiber.Map{
		"Title":      "Products",
		"Products":   products,
		"Categories": categories,
		"Query":      query,
		"CategoryID": selected,
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}

	p, err := h.service.GetByID(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Render("products/details", fiber.Map{"Title": p.Name, "Product": p})
}

type productPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
	CategoryID  int             `json:"categoryId"`
	IsActive    *bool           `json:"isActive"`
}

func (p productPayload) toProduct(id int) Product {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return Product{
		ID:          id,
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Price:       p.Price.Round(2),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		IsActive:    active,
	}
}

func validateProductPayload(p *productPayload) map[string]string {
	errs := map[string]string{}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if len(name) > 200 {
		errs["name"] = "name must be at most 200 characters"
	}
	if len(p.Description) > 2000 {
		errs["description"] = "description must be at most 2000 characters"
	}
	if len(p.ImageURL) > 500 {
		errs["imageUrl"] = "imageUrl must be at most 500 characters"
	}
	if p.Price.IsNegative() {
		errs["price"] = "price must be >= 0"
	}
	if p.Stock < 0 {
		errs["stock"] = "stock must be >= 0"
	}
	if p.CategoryID <= 0 {
		errs["categoryId"] = "categoryId is required"
	}
	return errs
}

func (h *Handler) listAllProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := validateProductPayload(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.Create(c.UserContext(), payload.toProduct(0))
	if errors.Is(err, ErrUnknownCategory) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payload := new(productPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateProductPayload(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(c.UserContext(), payload.toProduct(id))
	switch {
	case errors.Is(err, ErrUpdateConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrUnknownCategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case err != nil:
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	deleted, err := h.service.Delete(c.UserContext(), id)
	if errors.Is(err, ErrInUse) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return err
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}
