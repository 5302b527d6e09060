package repositories

import (
	"strings"
	"sync"

	"foodcourt/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns products matching the optional filters.
func (r *MockProductRepository) GetAll(category, search string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := strings.ToLower(strings.TrimSpace(search))
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		if s != "" && !strings.Contains(strings.ToLower(p.Name), s) {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

// GetByID returns a product by its id.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// First returns the product with the lowest id.
func (r *MockProductRepository) First() (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var first *models.Product
	for id := range r.products {
		if first == nil || id < first.ID {
			p := r.products[id]
			first = &p
		}
	}
	if first == nil {
		return nil, ErrNotFound
	}
	return first, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products[product.ID] = *product
	return nil
}

// Update replaces an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrNotFound
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}
