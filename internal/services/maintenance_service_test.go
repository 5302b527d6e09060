package services

import (
	"testing"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func newMaintenanceFixture() (*MaintenanceService, *repositories.MockOrderRepository, *repositories.MockOrderItemRepository, *repositories.MockProductRepository) {
	orderRepo := repositories.NewMockOrderRepository()
	itemRepo := repositories.NewMockOrderItemRepository()
	productRepo := repositories.NewMockProductRepository()
	service := NewMaintenanceService(orderRepo, itemRepo, productRepo)
	return service, orderRepo, itemRepo, productRepo
}

func TestBackfillItemNames(t *testing.T) {
	service, _, itemRepo, productRepo := newMaintenanceFixture()
	productRepo.Create(&models.Product{Name: "Pho Bo", Price: 8.5})

	itemRepo.Create(&models.OrderItem{OrderID: 1, ProductID: 1, Quantity: 1, Price: 8.5})
	itemRepo.Create(&models.OrderItem{OrderID: 1, ProductID: 99, Quantity: 1, Price: 5})
	itemRepo.Create(&models.OrderItem{OrderID: 2, ProductID: 1, Name: "Already named", Quantity: 1, Price: 8.5})

	report, err := service.BackfillItemNames()

	assert.NoError(t, err)
	assert.Equal(t, SweepReport{Scanned: 2, Fixed: 2}, report)

	items, _ := itemRepo.GetAll()
	assert.Equal(t, "Pho Bo", items[0].Name)
	assert.Equal(t, "Product #99", items[1].Name)
	assert.Equal(t, "Already named", items[2].Name)
}

func TestBackfillItemNamesIdempotent(t *testing.T) {
	service, _, itemRepo, productRepo := newMaintenanceFixture()
	productRepo.Create(&models.Product{Name: "Pho Bo", Price: 8.5})
	itemRepo.Create(&models.OrderItem{OrderID: 1, ProductID: 1, Quantity: 1, Price: 8.5})

	first, err := service.BackfillItemNames()
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Fixed)

	second, err := service.BackfillItemNames()
	assert.NoError(t, err)
	assert.Equal(t, SweepReport{Scanned: 0, Fixed: 0}, second)
}

func TestRepairOrphanedItems(t *testing.T) {
	service, _, itemRepo, productRepo := newMaintenanceFixture()
	productRepo.Create(&models.Product{Name: "Pho Bo", Price: 8.5})
	productRepo.Create(&models.Product{Name: "Tra Da", Price: 1})

	itemRepo.Create(&models.OrderItem{OrderID: 1, ProductID: 2, Name: "Tra Da", Quantity: 1, Price: 1})
	itemRepo.Create(&models.OrderItem{OrderID: 1, ProductID: 77, Name: "Deleted product", Quantity: 1, Price: 5})

	report, err := service.RepairOrphanedItems()

	assert.NoError(t, err)
	assert.Equal(t, SweepReport{Scanned: 2, Fixed: 1}, report)

	items, _ := itemRepo.GetAll()
	// The healthy item is untouched.
	assert.Equal(t, uint(2), items[0].ProductID)
	assert.Equal(t, "Tra Da", items[0].Name)
	// The orphan now points at the lowest-id product and carries its name.
	assert.Equal(t, uint(1), items[1].ProductID)
	assert.Equal(t, "Pho Bo", items[1].Name)
}

func TestRepairOrphanedItemsNoProducts(t *testing.T) {
	service, _, itemRepo, _ := newMaintenanceFixture()
	itemRepo.Create(&models.OrderItem{OrderID: 1, ProductID: 77, Quantity: 1, Price: 5})

	_, err := service.RepairOrphanedItems()

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "no products found in the database")
}

func TestRepairOrphanedItemsIdempotent(t *testing.T) {
	service, _, itemRepo, productRepo := newMaintenanceFixture()
	productRepo.Create(&models.Product{Name: "Pho Bo", Price: 8.5})
	itemRepo.Create(&models.OrderItem{OrderID: 1, ProductID: 77, Quantity: 1, Price: 5})

	first, err := service.RepairOrphanedItems()
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Fixed)

	second, err := service.RepairOrphanedItems()
	assert.NoError(t, err)
	assert.Equal(t, SweepReport{Scanned: 1, Fixed: 0}, second)
}

func TestBackfillReturningItems(t *testing.T) {
	service, orderRepo, itemRepo, productRepo := newMaintenanceFixture()
	productRepo.Create(&models.Product{Name: "Pho Bo", Price: 8.5})

	returning := &models.Order{UserID: 1, TotalAmount: 8.5, Status: models.StatusReturning}
	orderRepo.Create(returning)
	pending := &models.Order{UserID: 1, TotalAmount: 5, Status: models.StatusPending}
	orderRepo.Create(pending)

	itemRepo.Create(&models.OrderItem{OrderID: returning.ID, ProductID: 1, Quantity: 1, Price: 8.5})
	itemRepo.Create(&models.OrderItem{OrderID: pending.ID, ProductID: 1, Quantity: 1, Price: 5})

	report, err := service.BackfillReturningItems()

	assert.NoError(t, err)
	assert.Equal(t, SweepReport{Scanned: 1, Fixed: 1}, report)

	items, _ := itemRepo.GetByOrderID(returning.ID)
	assert.Equal(t, "Pho Bo", items[0].Name)

	// Items on orders outside returning status stay untouched.
	items, _ = itemRepo.GetByOrderID(pending.ID)
	assert.Empty(t, items[0].Name)
}
