package memory

import (
	"fmt"
	"sort"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/domain/repositories"
)

// stockKey identifies one (warehouse, SKU) cell of the snapshot
type stockKey struct {
	warehouseID entities.WarehouseID
	sku         entities.SKU
}

// InventoryRepository provides the in-memory stock snapshot. Loads are
// full replaces validated against the warehouse directory; between
// loads the snapshot is read-only.
type InventoryRepository struct {
	warehouseRepo repositories.WarehouseRepository
	quantities    map[stockKey]entities.Quantity
	skus          []entities.SKU
}

// NewInventoryRepository creates an empty inventory repository backed
// by the given warehouse directory
func NewInventoryRepository(warehouseRepo repositories.WarehouseRepository) *InventoryRepository {
	return &InventoryRepository{
		warehouseRepo: warehouseRepo,
		quantities:    make(map[stockKey]entities.Quantity),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadRecords replaces the entire snapshot. The new snapshot is staged
// and validated first, so a failed load leaves the previous one
// untouched: there is no partial load.
func (r *InventoryRepository) LoadRecords(records []*entities.InventoryRecord) error {
	staged := make(map[stockKey]entities.Quantity, len(records))
	skuSet := make(map[entities.SKU]bool)

	for i, rec := range records {
		if rec.Quantity < 0 {
			return fmt.Errorf("inventory record %d: quantity cannot be negative, got %d", i+1, rec.Quantity)
		}
		if _, err := r.warehouseRepo.GetWarehouse(rec.WarehouseID); err != nil {
			return fmt.Errorf("inventory record %d: %w", i+1, err)
		}

		key := stockKey{warehouseID: rec.WarehouseID, sku: rec.SKU}
		staged[key] += rec.Quantity
		skuSet[rec.SKU] = true
	}

	skus := make([]entities.SKU, 0, len(skuSet))
	for sku := range skuSet {
		skus = append(skus, sku)
	}
	sort.Slice(skus, func(i, j int) bool { return skus[i] < skus[j] })

	r.quantities = staged
	r.skus = skus
	return nil
}

// QuantityOf returns the on-hand quantity, zero when absent
func (r *InventoryRepository) QuantityOf(warehouseID entities.WarehouseID, sku entities.SKU) entities.Quantity {
	return r.quantities[stockKey{warehouseID: warehouseID, sku: sku}]
}

// StockSufficient reports whether the warehouse can cover every line
// from its own stock
func (r *InventoryRepository) StockSufficient(warehouseID entities.WarehouseID, lines []entities.ResolvedLine) bool {
	for _, line := range lines {
		if r.QuantityOf(warehouseID, line.SKU) < line.Quantity {
			return false
		}
	}
	return true
}

// Shortfall returns the lines the warehouse cannot cover and by how
// much, empty when the warehouse is sufficient
func (r *InventoryRepository) Shortfall(warehouseID entities.WarehouseID, lines []entities.ResolvedLine) []entities.LineShortfall {
	var shortfalls []entities.LineShortfall
	for _, line := range lines {
		available := r.QuantityOf(warehouseID, line.SKU)
		if available < line.Quantity {
			shortfalls = append(shortfalls, entities.LineShortfall{
				SKU:       line.SKU,
				Requested: line.Quantity,
				Available: available,
				Short:     line.Quantity - available,
			})
		}
	}
	return shortfalls
}

// KnownSKUs returns the canonical SKU set of the current snapshot,
// sorted by SKU
func (r *InventoryRepository) KnownSKUs() []entities.SKU {
	skus := make([]entities.SKU, len(r.skus))
	copy(skus, r.skus)
	return skus
}
