package handlers

import (
	"log"

	"foodcourt/internal/models"
	"foodcourt/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGet)
	products.Post("/", h.HandleCreate)
	products.Put("/:id", h.HandleUpdate)
	products.Delete("/:id", h.HandleDelete)
}

// HandleList returns products filtered by the optional category and search
// query parameters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.List(c.Query("category"), c.Query("search"))
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", products)
}

// HandleGet returns one product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.Get(id)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", product)
}

// ProductRequest is the body of a product create or update.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description"`
	ImagePath   string  `json:"image_path"`
	Category    string  `json:"category"`
}

// HandleCreate adds a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Name and price are required")
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImagePath:   req.ImagePath,
		Category:    req.Category,
	}
	if err := h.service.Create(product); err != nil {
		log.Printf("Error creating product: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusCreated, "Product created successfully", product)
}

// HandleUpdate replaces an existing product's fields.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Name and price are required")
	}

	existing, err := h.service.Get(id)
	if err != nil {
		return failFromError(c, err)
	}

	existing.Name = req.Name
	existing.Price = req.Price
	existing.Description = req.Description
	existing.ImagePath = req.ImagePath
	existing.Category = req.Category
	if err := h.service.Update(existing); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Product updated successfully", existing)
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Product deleted successfully", fiber.Map{"id": id})
}
