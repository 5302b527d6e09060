package services

import (
	"errors"
	"fmt"
	"log"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
)

// MaintenanceService owns the repair sweeps that backfill missing or
// orphaned denormalized fields on order items. Each sweep is idempotent and
// safe to re-run: a row that fails to update is logged and skipped, never
// failing the whole sweep.
type MaintenanceService struct {
	orderRepo   repositories.OrderRepository
	itemRepo    repositories.OrderItemRepository
	productRepo repositories.ProductRepository
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	orderRepo repositories.OrderRepository,
	itemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepository,
) *MaintenanceService {
	return &MaintenanceService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
	}
}

// SweepReport tallies one repair run.
type SweepReport struct {
	Scanned int `json:"scanned"`
	Fixed   int `json:"fixed"`
}

// BackfillItemNames fills the name of every order item that has none,
// from the product it references or the synthesized placeholder.
func (s *MaintenanceService) BackfillItemNames() (SweepReport, error) {
	items, err := s.itemRepo.GetWithEmptyName()
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Scanned: len(items)}
	for _, item := range items {
		name := resolveDisplayName("", s.productRepo.GetByID, item.ProductID)
		if err := s.itemRepo.UpdateFields(item.ID, map[string]interface{}{"name": name}); err != nil {
			log.Printf("Skipping order item %d during name backfill: %v", item.ID, err)
			continue
		}
		report.Fixed++
	}
	return report, nil
}

// RepairOrphanedItems repoints order items whose product no longer exists
// at the lowest-id product, copying its name. It fails only when the
// products table is empty, since then there is nothing to repoint to.
func (s *MaintenanceService) RepairOrphanedItems() (SweepReport, error) {
	defaultProduct, err := s.productRepo.First()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return SweepReport{}, fmt.Errorf("no products found in the database: %w", ErrInvalidInput)
		}
		return SweepReport{}, err
	}

	items, err := s.itemRepo.GetAll()
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Scanned: len(items)}
	for _, item := range items {
		if _, err := s.productRepo.GetByID(item.ProductID); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Skipping order item %d during orphan repair: %v", item.ID, err)
			continue
		}

		fields := map[string]interface{}{
			"product_id": defaultProduct.ID,
			"name":       defaultProduct.Name,
		}
		if err := s.itemRepo.UpdateFields(item.ID, fields); err != nil {
			log.Printf("Skipping order item %d during orphan repair: %v", item.ID, err)
			continue
		}
		report.Fixed++
	}
	return report, nil
}

// BackfillReturningItems fills missing item names on orders currently in
// returning status, where the name is about to show up in return handling.
func (s *MaintenanceService) BackfillReturningItems() (SweepReport, error) {
	orders, err := s.orderRepo.Find(0, models.StatusReturning)
	if err != nil {
		return SweepReport{}, err
	}

	var report SweepReport
	for _, order := range orders {
		items, err := s.itemRepo.GetByOrderID(order.ID)
		if err != nil {
			log.Printf("Skipping order %d during returning backfill: %v", order.ID, err)
			continue
		}
		report.Scanned += len(items)

		for _, item := range items {
			if item.Name != "" {
				continue
			}
			name := resolveDisplayName("", s.productRepo.GetByID, item.ProductID)
			if err := s.itemRepo.UpdateFields(item.ID, map[string]interface{}{"name": name}); err != nil {
				log.Printf("Skipping order item %d during returning backfill: %v", item.ID, err)
				continue
			}
			report.Fixed++
		}
	}
	return report, nil
}
