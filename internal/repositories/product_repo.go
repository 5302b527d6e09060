package repositories

import "foodcourt/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll lists products newest first, optionally filtered by category
	// ("" or "All" disables the filter) and case-insensitive name substring.
	GetAll(category, search string) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// First returns the product with the lowest id, used as the repair
	// target for orphaned order items.
	First() (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
