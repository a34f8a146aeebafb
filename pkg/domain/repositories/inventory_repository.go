package repositories

import "github.com/shiproute/routing/pkg/domain/entities"

// InventoryRepository provides access to the per-warehouse stock
// snapshot. Loading is a full replace; a load that fails validation
// must leave the previous snapshot untouched.
type InventoryRepository interface {
	// LoadRecords replaces the entire snapshot. It fails if any record
	// has a negative quantity or references a warehouse unknown to the
	// directory.
	LoadRecords(records []*entities.InventoryRecord) error

	// QuantityOf returns the on-hand quantity, zero when absent.
	QuantityOf(warehouseID entities.WarehouseID, sku entities.SKU) entities.Quantity

	// StockSufficient reports whether the warehouse can cover every
	// line from its own stock. Orders are never split across
	// warehouses.
	StockSufficient(warehouseID entities.WarehouseID, lines []entities.ResolvedLine) bool

	// Shortfall returns the lines the warehouse cannot cover and by
	// how much. Empty when the warehouse is sufficient.
	Shortfall(warehouseID entities.WarehouseID, lines []entities.ResolvedLine) []entities.LineShortfall

	// KnownSKUs returns the canonical SKU set of the current snapshot,
	// sorted for deterministic iteration.
	KnownSKUs() []entities.SKU
}
