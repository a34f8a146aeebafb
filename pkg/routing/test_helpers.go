package routing

import (
	"testing"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/infrastructure/repositories/memory"
)

// testWarehouse describes one warehouse and its stock for fixture setup
type testWarehouse struct {
	id       entities.WarehouseID
	state    string
	lat, lon float64
	priority int
	stock    map[entities.SKU]entities.Quantity
}

// buildTestRepos loads the given warehouses and stock into fresh
// in-memory repositories
func buildTestRepos(t *testing.T, warehouses []testWarehouse) (*memory.WarehouseRepository, *memory.InventoryRepository) {
	t.Helper()

	warehouseRepo := memory.NewWarehouseRepository()
	var whs []*entities.Warehouse
	for _, tw := range warehouses {
		wh, err := entities.NewWarehouse(tw.id, entities.Coordinate{Latitude: tw.lat, Longitude: tw.lon}, tw.state, tw.priority)
		if err != nil {
			t.Fatalf("Failed to build warehouse %s: %v", tw.id, err)
		}
		whs = append(whs, wh)
	}
	if err := warehouseRepo.LoadWarehouses(whs); err != nil {
		t.Fatalf("Failed to load warehouses: %v", err)
	}

	inventoryRepo := memory.NewInventoryRepository(warehouseRepo)
	var records []*entities.InventoryRecord
	for _, tw := range warehouses {
		for sku, qty := range tw.stock {
			rec, err := entities.NewInventoryRecord(tw.id, sku, qty)
			if err != nil {
				t.Fatalf("Failed to build inventory record: %v", err)
			}
			records = append(records, rec)
		}
	}
	if err := inventoryRepo.LoadRecords(records); err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}

	return warehouseRepo, inventoryRepo
}

// testOrder builds an order with a destination at the given coordinate
func testOrder(t *testing.T, id string, lat, lon float64, lines ...entities.OrderLine) *entities.Order {
	t.Helper()

	order, err := entities.NewOrder(id, entities.Coordinate{Latitude: lat, Longitude: lon}, lines)
	if err != nil {
		t.Fatalf("Failed to build order %s: %v", id, err)
	}
	return order
}
