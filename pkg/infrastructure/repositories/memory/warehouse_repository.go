package memory

import (
	"fmt"
	"sort"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/domain/repositories"
)

// WarehouseRepository provides the in-memory warehouse directory
type WarehouseRepository struct {
	warehouses map[entities.WarehouseID]*entities.Warehouse
}

// NewWarehouseRepository creates an empty warehouse repository
func NewWarehouseRepository() *WarehouseRepository {
	return &WarehouseRepository{
		warehouses: make(map[entities.WarehouseID]*entities.Warehouse),
	}
}

// Verify interface compliance
var _ repositories.WarehouseRepository = (*WarehouseRepository)(nil)

// LoadWarehouses replaces the directory contents. Duplicate ids fail
// the load and leave the previous directory untouched.
func (r *WarehouseRepository) LoadWarehouses(warehouses []*entities.Warehouse) error {
	staged := make(map[entities.WarehouseID]*entities.Warehouse, len(warehouses))
	for _, wh := range warehouses {
		if _, exists := staged[wh.ID]; exists {
			return fmt.Errorf("duplicate warehouse id: %s", wh.ID)
		}
		staged[wh.ID] = wh
	}

	r.warehouses = staged
	return nil
}

// GetWarehouse returns the warehouse with the given id
func (r *WarehouseRepository) GetWarehouse(id entities.WarehouseID) (*entities.Warehouse, error) {
	wh, exists := r.warehouses[id]
	if !exists {
		return nil, fmt.Errorf("warehouse not found: %s", id)
	}
	return wh, nil
}

// GetAllWarehouses returns all warehouses sorted by id, so callers
// iterate in a stable order regardless of map layout
func (r *WarehouseRepository) GetAllWarehouses() ([]*entities.Warehouse, error) {
	warehouses := make([]*entities.Warehouse, 0, len(r.warehouses))
	for _, wh := range r.warehouses {
		warehouses = append(warehouses, wh)
	}
	sort.Slice(warehouses, func(i, j int) bool {
		return warehouses[i].ID < warehouses[j].ID
	})
	return warehouses, nil
}

// Count returns the number of configured warehouses
func (r *WarehouseRepository) Count() int {
	return len(r.warehouses)
}
