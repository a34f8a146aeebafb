package repositories

import "github.com/shiproute/routing/pkg/domain/entities"

// WarehouseRepository provides access to the warehouse directory. The
// directory is loaded once per run and read-only thereafter.
type WarehouseRepository interface {
	// LoadWarehouses replaces the directory contents.
	LoadWarehouses(warehouses []*entities.Warehouse) error

	// GetWarehouse returns the warehouse with the given id.
	GetWarehouse(id entities.WarehouseID) (*entities.Warehouse, error)

	// GetAllWarehouses returns all warehouses sorted by id.
	GetAllWarehouses() ([]*entities.Warehouse, error)

	// Count returns the number of configured warehouses.
	Count() int
}
