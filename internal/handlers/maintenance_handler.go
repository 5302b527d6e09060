package handlers

import (
	"log"

	"foodcourt/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MaintenanceHandler exposes the admin data repair sweeps.
type MaintenanceHandler struct {
	service *services.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(service *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// RegisterRoutes registers the maintenance routes. The caller is expected to
// pass an admin-protected router group.
func (h *MaintenanceHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/update-order-items", h.HandleBackfillItemNames)
	router.Post("/fix-order-items-product-id", h.HandleRepairOrphanedItems)
	router.Post("/fix-returning-order-items", h.HandleBackfillReturningItems)
}

// HandleBackfillItemNames fills in missing names on order items.
func (h *MaintenanceHandler) HandleBackfillItemNames(c *fiber.Ctx) error {
	report, err := h.service.BackfillItemNames()
	if err != nil {
		log.Printf("Error backfilling order item names: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Order item names updated", report)
}

// HandleRepairOrphanedItems repoints order items whose product no longer
// exists at an existing product.
func (h *MaintenanceHandler) HandleRepairOrphanedItems(c *fiber.Ctx) error {
	report, err := h.service.RepairOrphanedItems()
	if err != nil {
		log.Printf("Error repairing orphaned order items: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Orphaned order items repaired", report)
}

// HandleBackfillReturningItems fills in missing names on items of orders
// that are currently being returned.
func (h *MaintenanceHandler) HandleBackfillReturningItems(c *fiber.Ctx) error {
	report, err := h.service.BackfillReturningItems()
	if err != nil {
		log.Printf("Error backfilling returning order items: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Returning order items updated", report)
}
