package entities

import (
	"fmt"
	"strings"
)

// FailureReason classifies why an order could not be routed
type FailureReason int

const (
	NoFailure FailureReason = iota
	UnresolvedSKU
	InsufficientStock
	NoWarehousesConfigured
)

// String method for FailureReason enum
func (r FailureReason) String() string {
	switch r {
	case NoFailure:
		return "None"
	case UnresolvedSKU:
		return "UnresolvedSKU"
	case InsufficientStock:
		return "InsufficientStock"
	case NoWarehousesConfigured:
		return "NoWarehousesConfigured"
	default:
		return "Unknown"
	}
}

// LineShortfall records how far one warehouse falls short on one line
type LineShortfall struct {
	SKU       SKU
	Requested Quantity
	Available Quantity
	Short     Quantity
}

// WarehouseShortfall explains why one warehouse was rejected for an
// order: either it was blocked by configuration, or one or more lines
// could not be covered from its stock.
type WarehouseShortfall struct {
	WarehouseID WarehouseID
	Blocked     bool
	Lines       []LineShortfall
}

// UnresolvedLine records an order line whose raw SKU reference did not
// resolve to exactly one canonical SKU. Candidates is empty when the
// reference matched nothing, and lists the tied SKUs when it was
// ambiguous.
type UnresolvedLine struct {
	RawSKU     string
	Candidates []SKU
}

// RoutingDecision is the outcome of routing one order: either a
// recommendation (warehouse, distance, resolved lines) or an
// unfulfillable result with a reason and per-warehouse detail.
// Decisions are values; they are computed fresh per order and never
// persisted by the core.
type RoutingDecision struct {
	OrderID     string
	Recommended bool
	WarehouseID WarehouseID
	DistanceKm  float64
	Lines       []ResolvedLine
	Reason      FailureReason
	Unresolved  []UnresolvedLine
	Shortfalls  []WarehouseShortfall
}

// Summary returns a single human-readable line suitable for writing
// back into an output cell. Every order gets either a concrete
// recommendation or a reason; silent skips are disallowed.
func (d *RoutingDecision) Summary() string {
	if d.Recommended {
		return fmt.Sprintf("%s (%.1f km)", d.WarehouseID, d.DistanceKm)
	}

	switch d.Reason {
	case UnresolvedSKU:
		var parts []string
		for _, u := range d.Unresolved {
			if len(u.Candidates) == 0 {
				parts = append(parts, fmt.Sprintf("%q not found", u.RawSKU))
			} else {
				cands := make([]string, len(u.Candidates))
				for i, c := range u.Candidates {
					cands[i] = string(c)
				}
				parts = append(parts, fmt.Sprintf("%q ambiguous between %s", u.RawSKU, strings.Join(cands, ", ")))
			}
		}
		return "unresolved sku: " + strings.Join(parts, "; ")
	case InsufficientStock:
		return "no warehouse has sufficient stock"
	case NoWarehousesConfigured:
		return "no warehouses configured"
	default:
		return "unfulfillable"
	}
}
