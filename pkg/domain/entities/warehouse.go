package entities

import "fmt"

// WarehouseID is a unique warehouse identifier
type WarehouseID string

// Coordinate is a latitude/longitude pair in decimal degrees
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinate creates a validated Coordinate
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinate{}, fmt.Errorf("latitude out of range: %f", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Coordinate{}, fmt.Errorf("longitude out of range: %f", longitude)
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

// Warehouse represents a fulfillment location. The warehouse set is fixed
// for the duration of a routing run. Priority is an optional tie-break
// weight: when two warehouses are equidistant the higher priority wins.
type Warehouse struct {
	ID       WarehouseID
	Location Coordinate
	State    string // USPS state code, empty if unknown
	Priority int
}

// NewWarehouse creates a validated Warehouse
func NewWarehouse(id WarehouseID, location Coordinate, state string, priority int) (*Warehouse, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("warehouse id cannot be empty")
	}

	return &Warehouse{
		ID:       id,
		Location: location,
		State:    state,
		Priority: priority,
	}, nil
}
