package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/infrastructure/repositories/memory"
	"github.com/shiproute/routing/pkg/routing"
)

func buildBatchFixture(t *testing.T) (*memory.WarehouseRepository, *memory.InventoryRepository) {
	t.Helper()

	warehouseRepo := memory.NewWarehouseRepository()
	a, _ := entities.NewWarehouse("WH-A", entities.Coordinate{Latitude: 36.7, Longitude: -119.4}, "CA", 0)
	b, _ := entities.NewWarehouse("WH-B", entities.Coordinate{Latitude: 35.5, Longitude: -86.5}, "TN", 0)
	if err := warehouseRepo.LoadWarehouses([]*entities.Warehouse{a, b}); err != nil {
		t.Fatalf("Failed to load warehouses: %v", err)
	}

	inventoryRepo := memory.NewInventoryRepository(warehouseRepo)
	if err := inventoryRepo.LoadRecords([]*entities.InventoryRecord{
		{WarehouseID: "WH-A", SKU: "SKU-1", Quantity: 10},
		{WarehouseID: "WH-B", SKU: "SKU-1", Quantity: 10},
		{WarehouseID: "WH-B", SKU: "SKU-2", Quantity: 2},
	}); err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}

	return warehouseRepo, inventoryRepo
}

func TestBatchRoutingService_RouteBatch(t *testing.T) {
	ctx := context.Background()
	warehouseRepo, inventoryRepo := buildBatchFixture(t)

	engine := routing.NewEngine(warehouseRepo, inventoryRepo)
	service := NewBatchRoutingService(engine, warehouseRepo, nil, nil)

	dest := entities.Coordinate{Latitude: 35.0, Longitude: -85.0}
	orders := []*entities.Order{
		{ID: "ORD-1", Destination: dest, Lines: []entities.OrderLine{{RawSKU: "SKU-1", Quantity: 1}}},
		{ID: "ORD-2", Destination: dest, Lines: []entities.OrderLine{{RawSKU: "SKU-2", Quantity: 5}}},
		{ID: "ORD-3", Destination: dest, Lines: []entities.OrderLine{{RawSKU: "MISSING", Quantity: 1}}},
	}

	result, err := service.RouteBatch(ctx, orders)
	if err != nil {
		t.Fatalf("RouteBatch failed: %v", err)
	}

	if len(result.Decisions) != 3 {
		t.Fatalf("Expected a decision per order, got %d", len(result.Decisions))
	}
	if result.Routed != 1 || result.Unfulfilled != 2 {
		t.Errorf("Expected 1 routed / 2 unfulfilled, got %d / %d", result.Routed, result.Unfulfilled)
	}

	if result.ReasonCounts[entities.InsufficientStock] != 1 {
		t.Errorf("Expected one InsufficientStock, got %d", result.ReasonCounts[entities.InsufficientStock])
	}
	if result.ReasonCounts[entities.UnresolvedSKU] != 1 {
		t.Errorf("Expected one UnresolvedSKU, got %d", result.ReasonCounts[entities.UnresolvedSKU])
	}

	// One bad order must not stop the rest: ORD-1 still routed.
	first := result.Decisions[0]
	if !first.Decision.Recommended || first.Decision.WarehouseID != "WH-B" {
		t.Errorf("Expected ORD-1 routed to WH-B, got %+v", first.Decision)
	}

	if result.RunID == uuid.Nil {
		t.Error("Expected a run id to be assigned")
	}
}

func TestBatchRoutingService_EmptyDirectoryAborts(t *testing.T) {
	ctx := context.Background()

	warehouseRepo := memory.NewWarehouseRepository()
	inventoryRepo := memory.NewInventoryRepository(warehouseRepo)

	engine := routing.NewEngine(warehouseRepo, inventoryRepo)
	service := NewBatchRoutingService(engine, warehouseRepo, nil, nil)

	orders := []*entities.Order{
		{ID: "ORD-1", Destination: entities.Coordinate{}, Lines: []entities.OrderLine{{RawSKU: "X", Quantity: 1}}},
	}

	_, err := service.RouteBatch(ctx, orders)
	if err != routing.ErrNoWarehouses {
		t.Errorf("Expected ErrNoWarehouses, got %v", err)
	}
}

func TestBatchRoutingService_ShipmentEstimate(t *testing.T) {
	ctx := context.Background()
	warehouseRepo, inventoryRepo := buildBatchFixture(t)

	attrRepo := memory.NewSKUAttributeRepository()
	attrs, err := entities.NewSKUAttributes("SKU-1",
		decimal.NewFromInt(30), decimal.NewFromInt(20), decimal.NewFromInt(10),
		decimal.RequireFromString("1.5"))
	if err != nil {
		t.Fatalf("Failed to build attributes: %v", err)
	}
	if err := attrRepo.LoadAttributes([]*entities.SKUAttributes{attrs}); err != nil {
		t.Fatalf("Failed to load attributes: %v", err)
	}

	engine := routing.NewEngine(warehouseRepo, inventoryRepo)
	service := NewBatchRoutingService(engine, warehouseRepo, attrRepo, nil)

	dest := entities.Coordinate{Latitude: 35.0, Longitude: -85.0}
	orders := []*entities.Order{
		{ID: "ORD-1", Destination: dest, Lines: []entities.OrderLine{{RawSKU: "SKU-1", Quantity: 2}}},
	}

	result, err := service.RouteBatch(ctx, orders)
	if err != nil {
		t.Fatalf("RouteBatch failed: %v", err)
	}

	estimate := result.Decisions[0].Estimate
	if estimate == nil {
		t.Fatal("Expected a shipment estimate")
	}
	if !estimate.Complete {
		t.Error("Expected complete estimate")
	}
	if estimate.WeightKg.String() != "3" {
		t.Errorf("Expected weight 3 kg, got %s", estimate.WeightKg)
	}
	if estimate.VolumeCm3.String() != "12000" {
		t.Errorf("Expected volume 12000 cm3, got %s", estimate.VolumeCm3)
	}
}

func TestBatchRoutingService_IncompleteEstimate(t *testing.T) {
	ctx := context.Background()
	warehouseRepo, inventoryRepo := buildBatchFixture(t)

	// Attribute table loaded but empty: the estimate exists and is
	// flagged incomplete rather than failing the order.
	attrRepo := memory.NewSKUAttributeRepository()

	engine := routing.NewEngine(warehouseRepo, inventoryRepo)
	service := NewBatchRoutingService(engine, warehouseRepo, attrRepo, nil)

	dest := entities.Coordinate{Latitude: 35.0, Longitude: -85.0}
	orders := []*entities.Order{
		{ID: "ORD-1", Destination: dest, Lines: []entities.OrderLine{{RawSKU: "SKU-1", Quantity: 1}}},
	}

	result, err := service.RouteBatch(ctx, orders)
	if err != nil {
		t.Fatalf("RouteBatch failed: %v", err)
	}

	estimate := result.Decisions[0].Estimate
	if estimate == nil {
		t.Fatal("Expected an estimate")
	}
	if estimate.Complete {
		t.Error("Expected incomplete estimate for missing attributes")
	}
	if !estimate.WeightKg.IsZero() {
		t.Errorf("Expected zero weight, got %s", estimate.WeightKg)
	}
}
