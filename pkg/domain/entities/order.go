package entities

import "fmt"

// OrderLine is a single requested line as it appears in the order
// source: free-text SKU reference plus a positive quantity. The raw
// reference may be an alias or inconsistently formatted code; it is
// resolved to a canonical SKU by the matcher before routing.
type OrderLine struct {
	RawSKU   string
	Quantity Quantity
}

// ResolvedLine is an order line after SKU resolution
type ResolvedLine struct {
	SKU      SKU
	Quantity Quantity
}

// Order is one shipment request: a destination and one or more
// requested lines. Destination coordinates are supplied by the caller
// (resolved from a state code or address upstream).
type Order struct {
	ID          string
	Destination Coordinate
	Lines       []OrderLine
}

// NewOrder creates a validated Order
func NewOrder(id string, destination Coordinate, lines []OrderLine) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("order %s has no lines", id)
	}
	for i, line := range lines {
		if line.RawSKU == "" {
			return nil, fmt.Errorf("order %s line %d: sku reference cannot be empty", id, i+1)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("order %s line %d: quantity must be positive, got %d", id, i+1, line.Quantity)
		}
	}

	return &Order{
		ID:          id,
		Destination: destination,
		Lines:       lines,
	}, nil
}
