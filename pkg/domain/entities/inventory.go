package entities

import "fmt"

// Quantity represents an integer quantity of discrete units
type Quantity int64

// InventoryRecord is the on-hand quantity of one SKU at one warehouse.
// A record absent from the store is equivalent to quantity zero; there
// is no implicit backorder.
type InventoryRecord struct {
	WarehouseID WarehouseID
	SKU         SKU
	Quantity    Quantity
}

// NewInventoryRecord creates a validated InventoryRecord
func NewInventoryRecord(warehouseID WarehouseID, sku SKU, quantity Quantity) (*InventoryRecord, error) {
	if string(warehouseID) == "" {
		return nil, fmt.Errorf("warehouse id cannot be empty")
	}
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}

	return &InventoryRecord{
		WarehouseID: warehouseID,
		SKU:         sku,
		Quantity:    quantity,
	}, nil
}
