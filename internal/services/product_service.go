package services

import (
	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List retrieves products, optionally filtered by category and a
// case-insensitive name substring.
func (s *ProductService) List(category, search string) ([]models.Product, error) {
	return s.repo.GetAll(category, search)
}

// Get retrieves a single product by its id.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create adds a new product, defaulting the category to "Other".
func (s *ProductService) Create(product *models.Product) error {
	if product.Category == "" {
		product.Category = "Other"
	}
	return s.repo.Create(product)
}

// Update replaces an existing product's fields.
func (s *ProductService) Update(product *models.Product) error {
	if product.Category == "" {
		product.Category = "Other"
	}
	return s.repo.Update(product)
}

// Delete removes a product permanently. Order items that reference it keep
// their denormalized name; their product_id becomes orphaned.
func (s *ProductService) Delete(id uint) error {
	return s.repo.Delete(id)
}
