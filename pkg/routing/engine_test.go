package routing

import (
	"context"
	"testing"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/domain/services"
	"github.com/shiproute/routing/pkg/infrastructure/repositories/memory"
)

func TestEngine_Route_NearestSufficientWarehouse(t *testing.T) {
	ctx := context.Background()

	// B is much closer to the destination than A, but only A has
	// stock: B must be filtered out before ranking.
	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", state: "CA", lat: 36.0, lon: -119.0, stock: map[entities.SKU]entities.Quantity{"X": 5}},
		{id: "WH-B", state: "TN", lat: 35.5, lon: -86.5, stock: map[entities.SKU]entities.Quantity{"X": 0}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)

	// Destination near B.
	order := testOrder(t, "ORD-1", 35.0, -85.0, entities.OrderLine{RawSKU: "X", Quantity: 2})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if !decision.Recommended {
		t.Fatalf("Expected recommendation, got reason %v", decision.Reason)
	}
	if decision.WarehouseID != "WH-A" {
		t.Errorf("Expected WH-A, got %s", decision.WarehouseID)
	}
	if decision.DistanceKm <= 0 {
		t.Errorf("Expected positive distance, got %f", decision.DistanceKm)
	}
	if len(decision.Lines) != 1 || decision.Lines[0].SKU != "X" || decision.Lines[0].Quantity != 2 {
		t.Errorf("Expected matched line X qty 2, got %+v", decision.Lines)
	}
}

func TestEngine_Route_TieBreakLexicographicID(t *testing.T) {
	ctx := context.Background()

	// Same coordinates, same priority: the lexicographically smaller
	// id must win, and keep winning across repeated calls.
	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-B", lat: 40.0, lon: -90.0, stock: map[entities.SKU]entities.Quantity{"X": 10}},
		{id: "WH-A", lat: 40.0, lon: -90.0, stock: map[entities.SKU]entities.Quantity{"X": 10}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)
	order := testOrder(t, "ORD-1", 42.0, -88.0, entities.OrderLine{RawSKU: "X", Quantity: 1})

	for i := 0; i < 20; i++ {
		decision, err := engine.Route(ctx, order)
		if err != nil {
			t.Fatalf("Route failed: %v", err)
		}
		if decision.WarehouseID != "WH-A" {
			t.Fatalf("Call %d: expected WH-A, got %s", i, decision.WarehouseID)
		}
	}
}

func TestEngine_Route_TieBreakPriorityBeatsID(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 40.0, lon: -90.0, priority: 1, stock: map[entities.SKU]entities.Quantity{"X": 10}},
		{id: "WH-B", lat: 40.0, lon: -90.0, priority: 5, stock: map[entities.SKU]entities.Quantity{"X": 10}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)
	order := testOrder(t, "ORD-1", 42.0, -88.0, entities.OrderLine{RawSKU: "X", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision.WarehouseID != "WH-B" {
		t.Errorf("Expected higher-priority WH-B, got %s", decision.WarehouseID)
	}
}

func TestEngine_Route_InsufficientStockEverywhere(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 36.0, lon: -119.0, stock: map[entities.SKU]entities.Quantity{"Y": 1}},
		{id: "WH-B", lat: 35.5, lon: -86.5, stock: map[entities.SKU]entities.Quantity{"Y": 2}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)
	order := testOrder(t, "ORD-1", 35.0, -85.0, entities.OrderLine{RawSKU: "Y", Quantity: 3})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if decision.Recommended {
		t.Fatal("Expected unfulfillable decision")
	}
	if decision.Reason != entities.InsufficientStock {
		t.Fatalf("Expected InsufficientStock, got %v", decision.Reason)
	}
	if len(decision.Shortfalls) != 2 {
		t.Fatalf("Expected shortfall detail for both warehouses, got %d", len(decision.Shortfalls))
	}

	for _, sf := range decision.Shortfalls {
		if len(sf.Lines) != 1 {
			t.Fatalf("Expected one short line for %s, got %d", sf.WarehouseID, len(sf.Lines))
		}
		line := sf.Lines[0]
		if line.SKU != "Y" || line.Requested != 3 {
			t.Errorf("Unexpected shortfall line for %s: %+v", sf.WarehouseID, line)
		}
		expectedShort := entities.Quantity(3) - line.Available
		if line.Short != expectedShort {
			t.Errorf("Warehouse %s: expected short %d, got %d", sf.WarehouseID, expectedShort, line.Short)
		}
	}
}

func TestEngine_Route_AllOrNothingPerWarehouse(t *testing.T) {
	ctx := context.Background()

	// WH-A covers 2 of 3 lines; WH-B covers all three. WH-A must not
	// be recommended and must show up in shortfall detail on failure.
	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 35.0, lon: -85.0, stock: map[entities.SKU]entities.Quantity{"A": 5, "B": 5}},
		{id: "WH-B", lat: 61.0, lon: -152.0, stock: map[entities.SKU]entities.Quantity{"A": 5, "B": 5, "C": 5}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)

	// Destination right next to WH-A.
	order := testOrder(t, "ORD-1", 35.0, -85.0,
		entities.OrderLine{RawSKU: "A", Quantity: 1},
		entities.OrderLine{RawSKU: "B", Quantity: 1},
		entities.OrderLine{RawSKU: "C", Quantity: 1},
	)

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if !decision.Recommended {
		t.Fatalf("Expected recommendation, got reason %v", decision.Reason)
	}
	if decision.WarehouseID != "WH-B" {
		t.Errorf("Expected WH-B despite greater distance, got %s", decision.WarehouseID)
	}
}

func TestEngine_Route_AmbiguousSKUFailsBeforeStockCheck(t *testing.T) {
	ctx := context.Background()

	// Ample stock of both plausible candidates; ambiguity must still
	// fail the order.
	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 36.0, lon: -119.0, stock: map[entities.SKU]entities.Quantity{"SKU-1": 100, "SKU-2": 100}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)
	order := testOrder(t, "ORD-1", 35.0, -85.0, entities.OrderLine{RawSKU: "SKU", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if decision.Reason != entities.UnresolvedSKU {
		t.Fatalf("Expected UnresolvedSKU, got %v", decision.Reason)
	}
	if len(decision.Unresolved) != 1 {
		t.Fatalf("Expected one unresolved line, got %d", len(decision.Unresolved))
	}

	cands := decision.Unresolved[0].Candidates
	if len(cands) != 2 || cands[0] != "SKU-1" || cands[1] != "SKU-2" {
		t.Errorf("Expected candidates [SKU-1 SKU-2], got %v", cands)
	}
}

func TestEngine_Route_UnknownSKU(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 36.0, lon: -119.0, stock: map[entities.SKU]entities.Quantity{"X": 5}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)
	order := testOrder(t, "ORD-1", 35.0, -85.0, entities.OrderLine{RawSKU: "NOPE", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if decision.Reason != entities.UnresolvedSKU {
		t.Fatalf("Expected UnresolvedSKU, got %v", decision.Reason)
	}
	if len(decision.Unresolved) != 1 || decision.Unresolved[0].RawSKU != "NOPE" {
		t.Errorf("Expected unresolved line for NOPE, got %+v", decision.Unresolved)
	}
	if len(decision.Unresolved[0].Candidates) != 0 {
		t.Errorf("Expected no candidates for unknown reference, got %v", decision.Unresolved[0].Candidates)
	}
}

func TestEngine_Route_FuzzyReferenceProceedsToRouting(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 36.0, lon: -119.0, stock: map[entities.SKU]entities.Quantity{"SKU-123": 5}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)

	// Underscore instead of dash only resolves via normalization.
	order := testOrder(t, "ORD-1", 35.0, -85.0, entities.OrderLine{RawSKU: "sku_123 ", Quantity: 2})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if !decision.Recommended {
		t.Fatalf("Expected recommendation, got reason %v", decision.Reason)
	}
	if decision.Lines[0].SKU != "SKU-123" {
		t.Errorf("Expected canonical SKU-123, got %s", decision.Lines[0].SKU)
	}
}

func TestEngine_Route_EmptyDirectory(t *testing.T) {
	ctx := context.Background()

	warehouseRepo := memory.NewWarehouseRepository()
	inventoryRepo := memory.NewInventoryRepository(warehouseRepo)

	engine := NewEngine(warehouseRepo, inventoryRepo)
	order := testOrder(t, "ORD-1", 35.0, -85.0, entities.OrderLine{RawSKU: "X", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if decision.Reason != entities.NoWarehousesConfigured {
		t.Errorf("Expected NoWarehousesConfigured, got %v", decision.Reason)
	}
}

func TestEngine_Route_DuplicateLinesAggregate(t *testing.T) {
	ctx := context.Background()

	// Two lines of the same SKU must be summed before the stock
	// check: 2+2 against stock of 3 is insufficient.
	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 36.0, lon: -119.0, stock: map[entities.SKU]entities.Quantity{"X": 3}},
	})

	engine := NewEngine(warehouseRepo, inventoryRepo)
	order := testOrder(t, "ORD-1", 35.0, -85.0,
		entities.OrderLine{RawSKU: "X", Quantity: 2},
		entities.OrderLine{RawSKU: "X", Quantity: 2},
	)

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if decision.Reason != entities.InsufficientStock {
		t.Fatalf("Expected InsufficientStock, got %v", decision.Reason)
	}
	if len(decision.Lines) != 1 || decision.Lines[0].Quantity != 4 {
		t.Errorf("Expected aggregated line qty 4, got %+v", decision.Lines)
	}
}

func TestEngine_Route_Monotonicity(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 10.0, lon: 0.0, stock: map[entities.SKU]entities.Quantity{"X": 5}},
		{id: "WH-B", lat: 20.0, lon: 0.0, stock: map[entities.SKU]entities.Quantity{"X": 5}},
	})

	// Stub estimator keyed by warehouse latitude so distances can be
	// dialed without moving anything.
	distances := map[float64]float64{10.0: 5, 20.0: 8}
	stub := func(_, dest entities.Coordinate) float64 {
		return distances[dest.Latitude]
	}

	engine := NewEngineWithConfig(warehouseRepo, inventoryRepo, stub, DefaultEngineConfig())
	order := testOrder(t, "ORD-1", 0.0, 0.0, entities.OrderLine{RawSKU: "X", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision.WarehouseID != "WH-A" {
		t.Fatalf("Expected WH-A at distance 5, got %s", decision.WarehouseID)
	}

	// Increase WH-A's distance but keep it the minimum: no change.
	distances[10.0] = 7
	decision, err = engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision.WarehouseID != "WH-A" {
		t.Errorf("Expected WH-A to stay recommended at distance 7, got %s", decision.WarehouseID)
	}

	// Push WH-A past WH-B: the recommendation must switch.
	distances[10.0] = 9
	decision, err = engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision.WarehouseID != "WH-B" {
		t.Errorf("Expected recommendation to switch to WH-B, got %s", decision.WarehouseID)
	}
}

func TestEngine_Route_EpsilonTie(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", lat: 10.0, lon: 0.0, priority: 0, stock: map[entities.SKU]entities.Quantity{"X": 5}},
		{id: "WH-B", lat: 20.0, lon: 0.0, priority: 9, stock: map[entities.SKU]entities.Quantity{"X": 5}},
	})

	// WH-B is a hair farther; with an epsilon window the two are tied
	// and WH-B's priority must win.
	stub := func(_, dest entities.Coordinate) float64 {
		if dest.Latitude == 10.0 {
			return 100.0
		}
		return 100.0000001
	}

	config := DefaultEngineConfig()
	config.EpsilonKm = 1e-6
	engine := NewEngineWithConfig(warehouseRepo, inventoryRepo, stub, config)

	order := testOrder(t, "ORD-1", 0.0, 0.0, entities.OrderLine{RawSKU: "X", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision.WarehouseID != "WH-B" {
		t.Errorf("Expected WH-B via epsilon tie priority, got %s", decision.WarehouseID)
	}
}

func TestEngine_Route_BlockedWarehouses(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-GA", state: "GA", lat: 32.1, lon: -82.9, stock: map[entities.SKU]entities.Quantity{"X": 5}},
		{id: "WH-TX", state: "TX", lat: 31.9, lon: -99.9, stock: map[entities.SKU]entities.Quantity{"X": 5}},
		{id: "WH-CA", state: "CA", lat: 36.7, lon: -119.4, stock: map[entities.SKU]entities.Quantity{"X": 5}},
	})

	config := DefaultEngineConfig()
	config.BlockedStates = []string{"GA", "TX"}
	engine := NewEngineWithConfig(warehouseRepo, inventoryRepo, services.Haversine, config)

	// Destination in Georgia; both nearer warehouses are blocked.
	order := testOrder(t, "ORD-1", 32.1, -82.9, entities.OrderLine{RawSKU: "X", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if decision.WarehouseID != "WH-CA" {
		t.Errorf("Expected WH-CA after blocking, got %s", decision.WarehouseID)
	}
}

func TestEngine_Route_AllCandidatesBlocked(t *testing.T) {
	ctx := context.Background()

	warehouseRepo, inventoryRepo := buildTestRepos(t, []testWarehouse{
		{id: "WH-A", state: "GA", lat: 32.1, lon: -82.9, stock: map[entities.SKU]entities.Quantity{"X": 5}},
	})

	config := DefaultEngineConfig()
	config.BlockedWarehouses = []entities.WarehouseID{"WH-A"}
	engine := NewEngineWithConfig(warehouseRepo, inventoryRepo, services.Haversine, config)

	order := testOrder(t, "ORD-1", 32.1, -82.9, entities.OrderLine{RawSKU: "X", Quantity: 1})

	decision, err := engine.Route(ctx, order)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if decision.Reason != entities.InsufficientStock {
		t.Fatalf("Expected InsufficientStock, got %v", decision.Reason)
	}
	if len(decision.Shortfalls) != 1 || !decision.Shortfalls[0].Blocked {
		t.Errorf("Expected blocked shortfall entry, got %+v", decision.Shortfalls)
	}
}
