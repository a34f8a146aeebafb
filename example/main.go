package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"github.com/shiproute/routing/pkg/application/services"
	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/infrastructure/repositories/memory"
	"github.com/shiproute/routing/pkg/routing"
)

func main() {
	ctx := context.Background()

	// Create repositories
	warehouseRepo := memory.NewWarehouseRepository()
	inventoryRepo := memory.NewInventoryRepository(warehouseRepo)
	attrRepo := memory.NewSKUAttributeRepository()

	// Set up a small two-coast network
	if err := setupNetwork(warehouseRepo, inventoryRepo, attrRepo); err != nil {
		fmt.Printf("❌ Setup failed: %v\n", err)
		os.Exit(1)
	}

	// Create routing engine and batch service
	engine := routing.NewEngine(warehouseRepo, inventoryRepo)
	logger := log.New(os.Stderr, "route: ", log.LstdFlags)
	batchService := services.NewBatchRoutingService(engine, warehouseRepo, attrRepo, logger)

	// Orders from three customers; the third references a SKU that is
	// out of stock everywhere
	orders := buildOrders()

	fmt.Println("🚀 Routing a small order batch...")
	fmt.Printf("Warehouses: %d | Orders: %d\n\n", warehouseRepo.Count(), len(orders))

	result, err := batchService.RouteBatch(ctx, orders)
	if err != nil {
		fmt.Printf("❌ Routing failed: %v\n", err)
		os.Exit(1)
	}

	// Display results
	fmt.Println("📊 Batch Results:")
	fmt.Printf("  Run ID: %s\n", result.RunID)
	fmt.Printf("  Routed: %d\n", result.Routed)
	fmt.Printf("  Unfulfillable: %d\n", result.Unfulfilled)
	fmt.Println()

	for _, od := range result.Decisions {
		d := od.Decision
		if d.Recommended {
			fmt.Printf("📦 %s → %s (%.1f km)\n", od.OrderID, d.WarehouseID, d.DistanceKm)
			if od.Estimate != nil && od.Estimate.Complete {
				fmt.Printf("    Shipment: %s kg, %s cm3\n",
					od.Estimate.WeightKg, od.Estimate.VolumeCm3)
			}
		} else {
			fmt.Printf("⚠️  %s: %s\n", od.OrderID, d.Summary())
		}
	}

	fmt.Println()
	fmt.Println("✅ Routing complete!")
}

func setupNetwork(
	warehouseRepo *memory.WarehouseRepository,
	inventoryRepo *memory.InventoryRepository,
	attrRepo *memory.SKUAttributeRepository,
) error {
	var warehouses []*entities.Warehouse
	for _, spec := range []struct {
		id       entities.WarehouseID
		state    string
		lat, lon float64
		priority int
	}{
		{"WH-CA", "CA", 36.1162, -119.6816, 5},
		{"WH-TN", "TN", 35.7478, -86.6923, 3},
		{"WH-NJ", "NJ", 40.2989, -74.5210, 0},
	} {
		loc, err := entities.NewCoordinate(spec.lat, spec.lon)
		if err != nil {
			return err
		}
		wh, err := entities.NewWarehouse(spec.id, loc, spec.state, spec.priority)
		if err != nil {
			return err
		}
		warehouses = append(warehouses, wh)
	}
	if err := warehouseRepo.LoadWarehouses(warehouses); err != nil {
		return err
	}

	var records []*entities.InventoryRecord
	for _, spec := range []struct {
		wh  entities.WarehouseID
		sku entities.SKU
		qty entities.Quantity
	}{
		{"WH-CA", "SKU-APPLE", 40},
		{"WH-CA", "SKU-BANANA", 10},
		{"WH-TN", "SKU-APPLE", 25},
		{"WH-NJ", "SKU-APPLE", 5},
		{"WH-NJ", "SKU-BANANA", 100},
	} {
		rec, err := entities.NewInventoryRecord(spec.wh, spec.sku, spec.qty)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	if err := inventoryRepo.LoadRecords(records); err != nil {
		return err
	}

	apple, err := entities.NewSKUAttributes(
		"SKU-APPLE",
		decimal.NewFromInt(20), decimal.NewFromInt(15), decimal.NewFromInt(10),
		decimal.RequireFromString("0.8"),
	)
	if err != nil {
		return err
	}
	return attrRepo.LoadAttributes([]*entities.SKUAttributes{apple})
}

func buildOrders() []*entities.Order {
	mustOrder := func(id string, lat, lon float64, lines ...entities.OrderLine) *entities.Order {
		dest, err := entities.NewCoordinate(lat, lon)
		if err != nil {
			panic(err)
		}
		order, err := entities.NewOrder(id, dest, lines)
		if err != nil {
			panic(err)
		}
		return order
	}

	return []*entities.Order{
		// West coast customer, apples only
		mustOrder("ORD-SEATTLE", 47.6062, -122.3321,
			entities.OrderLine{RawSKU: "SKU-APPLE", Quantity: 3}),
		// East coast customer, mixed basket routed to the one warehouse
		// holding both SKUs
		mustOrder("ORD-BOSTON", 42.3601, -71.0589,
			entities.OrderLine{RawSKU: "sku_apple", Quantity: 2},
			entities.OrderLine{RawSKU: "SKU-BANANA", Quantity: 4}),
		// More bananas than anyone holds
		mustOrder("ORD-MIAMI", 25.7617, -80.1918,
			entities.OrderLine{RawSKU: "SKU-BANANA", Quantity: 500}),
	}
}
