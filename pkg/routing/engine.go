package routing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/domain/repositories"
	"github.com/shiproute/routing/pkg/domain/services"
)

// ErrNoWarehouses is returned when routing is attempted against an
// empty warehouse directory. This is a configuration problem, not a
// per-order one: no order can ever succeed, so batch callers should
// stop before the first order.
var ErrNoWarehouses = errors.New("no warehouses configured")

// EngineConfig holds tuning and policy knobs for the routing engine
type EngineConfig struct {
	// EpsilonKm is the distance window within which two candidates are
	// considered tied. Zero means exact comparison.
	EpsilonKm float64
	// BlockedWarehouses excludes candidates by id before stock
	// filtering.
	BlockedWarehouses []entities.WarehouseID
	// BlockedStates excludes candidates located in the given USPS
	// state codes.
	BlockedStates []string
}

// DefaultEngineConfig returns the configuration used by NewEngine
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{EpsilonKm: 0}
}

// Engine selects the warehouse that should fulfill an order. It is
// stateless per call: each Route invocation reads the two read-only
// stores and nothing else, so independent orders may be routed in any
// order (or concurrently by a future caller) with identical results.
type Engine struct {
	warehouseRepo repositories.WarehouseRepository
	inventoryRepo repositories.InventoryRepository
	distance      services.DistanceFunc
	config        EngineConfig

	blockedIDs    map[entities.WarehouseID]bool
	blockedStates map[string]bool
}

// NewEngine creates a routing engine with the default great-circle
// distance estimator and default configuration
func NewEngine(warehouseRepo repositories.WarehouseRepository, inventoryRepo repositories.InventoryRepository) *Engine {
	return NewEngineWithConfig(warehouseRepo, inventoryRepo, services.Haversine, DefaultEngineConfig())
}

// NewEngineWithConfig creates a routing engine with a custom distance
// estimator and configuration. The estimator must honor the
// DistanceFunc determinism contract.
func NewEngineWithConfig(
	warehouseRepo repositories.WarehouseRepository,
	inventoryRepo repositories.InventoryRepository,
	distance services.DistanceFunc,
	config EngineConfig,
) *Engine {
	blockedIDs := make(map[entities.WarehouseID]bool, len(config.BlockedWarehouses))
	for _, id := range config.BlockedWarehouses {
		blockedIDs[id] = true
	}
	blockedStates := make(map[string]bool, len(config.BlockedStates))
	for _, st := range config.BlockedStates {
		blockedStates[st] = true
	}

	return &Engine{
		warehouseRepo: warehouseRepo,
		inventoryRepo: inventoryRepo,
		distance:      distance,
		config:        config,
		blockedIDs:    blockedIDs,
		blockedStates: blockedStates,
	}
}

// candidate pairs a stock-sufficient warehouse with its computed
// distance to the order destination
type candidate struct {
	warehouse *entities.Warehouse
	distance  float64
}

// Route produces a routing decision for one order. Per-order failures
// (unresolved SKU, insufficient stock) come back as Unfulfillable
// decision values, never as errors; the error return is reserved for
// repository access problems.
func (e *Engine) Route(ctx context.Context, order *entities.Order) (*entities.RoutingDecision, error) {
	warehouses, err := e.warehouseRepo.GetAllWarehouses()
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}

	if len(warehouses) == 0 {
		return &entities.RoutingDecision{
			OrderID: order.ID,
			Reason:  entities.NoWarehousesConfigured,
		}, nil
	}

	// Step 1: resolve every raw line. Routing never guesses a SKU, so
	// a single unresolved or ambiguous line fails the whole order.
	lines, unresolved := e.resolveLines(order)
	if len(unresolved) > 0 {
		return &entities.RoutingDecision{
			OrderID:    order.ID,
			Reason:     entities.UnresolvedSKU,
			Unresolved: unresolved,
		}, nil
	}

	// Step 2: filter by blocking policy and all-or-nothing stock
	// sufficiency, keeping shortfall detail for the rejected.
	var candidates []candidate
	var shortfalls []entities.WarehouseShortfall

	for _, wh := range warehouses {
		if e.blockedIDs[wh.ID] || (wh.State != "" && e.blockedStates[wh.State]) {
			shortfalls = append(shortfalls, entities.WarehouseShortfall{
				WarehouseID: wh.ID,
				Blocked:     true,
			})
			continue
		}

		if short := e.inventoryRepo.Shortfall(wh.ID, lines); len(short) > 0 {
			shortfalls = append(shortfalls, entities.WarehouseShortfall{
				WarehouseID: wh.ID,
				Lines:       short,
			})
			continue
		}

		candidates = append(candidates, candidate{
			warehouse: wh,
			distance:  e.distance(order.Destination, wh.Location),
		})
	}

	if len(candidates) == 0 {
		return &entities.RoutingDecision{
			OrderID:    order.ID,
			Reason:     entities.InsufficientStock,
			Lines:      lines,
			Shortfalls: shortfalls,
		}, nil
	}

	// Step 3: rank ascending by distance; ties within epsilon go to
	// the higher priority weight, then the lexicographically smaller
	// id. Never broken by iteration order.
	best := e.pickBest(candidates)

	return &entities.RoutingDecision{
		OrderID:     order.ID,
		Recommended: true,
		WarehouseID: best.warehouse.ID,
		DistanceKm:  best.distance,
		Lines:       lines,
	}, nil
}

// resolveLines resolves every raw order line to a canonical SKU and
// aggregates duplicate SKUs into a single requested line
func (e *Engine) resolveLines(order *entities.Order) ([]entities.ResolvedLine, []entities.UnresolvedLine) {
	known := e.inventoryRepo.KnownSKUs()

	var unresolved []entities.UnresolvedLine
	requested := make(map[entities.SKU]entities.Quantity)
	var skuOrder []entities.SKU

	for _, line := range order.Lines {
		match := services.ResolveSKU(line.RawSKU, known)
		switch match.Kind {
		case services.MatchExact, services.MatchFuzzy:
			if _, seen := requested[match.SKU]; !seen {
				skuOrder = append(skuOrder, match.SKU)
			}
			requested[match.SKU] += line.Quantity
		case services.MatchAmbiguous:
			unresolved = append(unresolved, entities.UnresolvedLine{
				RawSKU:     line.RawSKU,
				Candidates: match.Candidates,
			})
		default:
			unresolved = append(unresolved, entities.UnresolvedLine{RawSKU: line.RawSKU})
		}
	}

	if len(unresolved) > 0 {
		return nil, unresolved
	}

	lines := make([]entities.ResolvedLine, 0, len(skuOrder))
	for _, sku := range skuOrder {
		lines = append(lines, entities.ResolvedLine{SKU: sku, Quantity: requested[sku]})
	}
	return lines, nil
}

// pickBest selects the minimum-distance candidate with deterministic
// tie-breaking
func (e *Engine) pickBest(candidates []candidate) candidate {
	// Sorting by id first makes the scan independent of how the
	// directory happened to order its warehouses.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].warehouse.ID < candidates[j].warehouse.ID
	})

	best := candidates[0]
	for _, cand := range candidates[1:] {
		switch {
		case cand.distance < best.distance-e.config.EpsilonKm:
			best = cand
		case cand.distance <= best.distance+e.config.EpsilonKm:
			// Tied within epsilon: higher priority wins, then the
			// smaller id. The slice is id-sorted, so on full ties the
			// earlier candidate stands.
			if cand.warehouse.Priority > best.warehouse.Priority {
				best = cand
			}
		}
	}
	return best
}
