package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/domain/repositories"
	"github.com/shiproute/routing/pkg/routing"
)

// ShipmentEstimate annotates a recommendation with the total weight
// (kg) and volume (cm3) of the picked lines. Complete is false when
// one or more SKUs have no recorded attributes; the totals then cover
// only the lines that do.
type ShipmentEstimate struct {
	WeightKg  decimal.Decimal
	VolumeCm3 decimal.Decimal
	Complete  bool
}

// OrderDecision pairs one order with its decision and optional
// shipment estimate
type OrderDecision struct {
	OrderID  string
	Decision *entities.RoutingDecision
	Estimate *ShipmentEstimate
}

// BatchResult is the outcome of routing one batch of orders
type BatchResult struct {
	RunID        uuid.UUID
	Started      time.Time
	Completed    time.Time
	Decisions    []OrderDecision
	Routed       int
	Unfulfilled  int
	ReasonCounts map[entities.FailureReason]int
}

// BatchRoutingService routes an ordered batch of orders through the
// engine. Per-order failures are captured as decision values so one
// bad order never stops the rest of the batch; structural problems
// (an empty warehouse directory) abort before the first order.
type BatchRoutingService struct {
	engine        *routing.Engine
	warehouseRepo repositories.WarehouseRepository
	attrRepo      repositories.SKUAttributeRepository
	logger        *log.Logger
}

// NewBatchRoutingService creates a batch routing service. attrRepo may
// be nil, in which case no shipment estimates are produced. logger may
// be nil to disable progress output.
func NewBatchRoutingService(
	engine *routing.Engine,
	warehouseRepo repositories.WarehouseRepository,
	attrRepo repositories.SKUAttributeRepository,
	logger *log.Logger,
) *BatchRoutingService {
	return &BatchRoutingService{
		engine:        engine,
		warehouseRepo: warehouseRepo,
		attrRepo:      attrRepo,
		logger:        logger,
	}
}

// RouteBatch routes the orders sequentially and returns the collected
// decisions. Every order gets a decision; silent skips are disallowed.
func (s *BatchRoutingService) RouteBatch(ctx context.Context, orders []*entities.Order) (*BatchResult, error) {
	if s.warehouseRepo.Count() == 0 {
		return nil, routing.ErrNoWarehouses
	}

	result := &BatchResult{
		RunID:        uuid.New(),
		Started:      time.Now(),
		Decisions:    make([]OrderDecision, 0, len(orders)),
		ReasonCounts: make(map[entities.FailureReason]int),
	}

	for _, order := range orders {
		decision, err := s.engine.Route(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("failed to route order %s: %w", order.ID, err)
		}

		od := OrderDecision{OrderID: order.ID, Decision: decision}
		if decision.Recommended {
			result.Routed++
			od.Estimate = s.estimateShipment(decision.Lines)
		} else {
			result.Unfulfilled++
			result.ReasonCounts[decision.Reason]++
		}
		result.Decisions = append(result.Decisions, od)

		if s.logger != nil {
			s.logger.Printf("order %s: %s", order.ID, decision.Summary())
		}
	}

	result.Completed = time.Now()
	return result, nil
}

// estimateShipment totals weight and volume for the resolved lines
// using the attribute table. Missing attributes degrade the estimate,
// they never fail the order.
func (s *BatchRoutingService) estimateShipment(lines []entities.ResolvedLine) *ShipmentEstimate {
	if s.attrRepo == nil {
		return nil
	}

	estimate := &ShipmentEstimate{
		WeightKg:  decimal.Zero,
		VolumeCm3: decimal.Zero,
		Complete:  true,
	}

	for _, line := range lines {
		attrs, ok := s.attrRepo.GetAttributes(line.SKU)
		if !ok {
			estimate.Complete = false
			continue
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		estimate.WeightKg = estimate.WeightKg.Add(attrs.UnitWeight.Mul(qty))
		estimate.VolumeCm3 = estimate.VolumeCm3.Add(attrs.Volume().Mul(qty))
	}

	return estimate
}
