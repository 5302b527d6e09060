package services

import (
	"testing"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestProductCreateDefaultsCategory(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := NewProductService(repo)

	product := &models.Product{Name: "Pho Bo", Price: 8.5}
	assert.NoError(t, service.Create(product))
	assert.Equal(t, "Other", product.Category)

	drink := &models.Product{Name: "Tra Da", Price: 1, Category: "Drinks"}
	assert.NoError(t, service.Create(drink))
	assert.Equal(t, "Drinks", drink.Category)
}

func TestProductListFilters(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := NewProductService(repo)
	service.Create(&models.Product{Name: "Pho Bo", Price: 8.5, Category: "Noodles"})
	service.Create(&models.Product{Name: "Pho Ga", Price: 8, Category: "Noodles"})
	service.Create(&models.Product{Name: "Tra Da", Price: 1, Category: "Drinks"})

	all, err := service.List("", "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// The "All" category behaves like no filter.
	all, err = service.List("All", "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	noodles, err := service.List("Noodles", "")
	assert.NoError(t, err)
	assert.Len(t, noodles, 2)

	pho, err := service.List("", "pho")
	assert.NoError(t, err)
	assert.Len(t, pho, 2)

	both, err := service.List("Noodles", "ga")
	assert.NoError(t, err)
	assert.Len(t, both, 1)
	assert.Equal(t, "Pho Ga", both[0].Name)
}

func TestProductUpdate(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := NewProductService(repo)
	product := &models.Product{Name: "Pho Bo", Price: 8.5, Category: "Noodles"}
	service.Create(product)

	product.Price = 9.5
	assert.NoError(t, service.Update(product))

	stored, err := service.Get(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 9.5, stored.Price)
}

func TestProductUpdateUnknown(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := NewProductService(repo)

	err := service.Update(&models.Product{ID: 99, Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := NewProductService(repo)
	product := &models.Product{Name: "Pho Bo", Price: 8.5}
	service.Create(product)

	assert.NoError(t, service.Delete(product.ID))

	_, err := service.Get(product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, service.Delete(product.ID), repositories.ErrNotFound)
}
