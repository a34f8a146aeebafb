package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/domain/services"
)

// Loader handles loading routing data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadWarehouses loads the warehouse directory from a CSV file.
// Coordinates may be given explicitly or left empty when the state
// column resolves through the bundled centroid table.
func (l *Loader) LoadWarehouses(filename string) ([]*entities.Warehouse, error) {
	records, err := readAll(filename, []string{"warehouse_id", "state", "latitude", "longitude", "priority"})
	if err != nil {
		return nil, fmt.Errorf("warehouses CSV: %w", err)
	}

	var warehouses []*entities.Warehouse
	for i, record := range records {
		wh, err := parseWarehouse(record)
		if err != nil {
			return nil, fmt.Errorf("warehouses CSV row %d: %w", i+2, err)
		}
		warehouses = append(warehouses, wh)
	}

	return warehouses, nil
}

// LoadInventory loads the stock snapshot from a CSV file
func (l *Loader) LoadInventory(filename string) ([]*entities.InventoryRecord, error) {
	records, err := readAll(filename, []string{"warehouse_id", "sku", "quantity"})
	if err != nil {
		return nil, fmt.Errorf("inventory CSV: %w", err)
	}

	var inventory []*entities.InventoryRecord
	for i, record := range records {
		quantity, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid quantity: %s", i+2, record[2])
		}

		rec, err := entities.NewInventoryRecord(
			entities.WarehouseID(strings.TrimSpace(record[0])),
			entities.SKU(strings.TrimSpace(record[1])),
			entities.Quantity(quantity),
		)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		inventory = append(inventory, rec)
	}

	return inventory, nil
}

// LoadSKUAttributes loads per-SKU dimensions and weights from a CSV
// file. Dimensions are centimeters, unit weight is kilograms.
func (l *Loader) LoadSKUAttributes(filename string) ([]*entities.SKUAttributes, error) {
	records, err := readAll(filename, []string{"sku", "length_cm", "width_cm", "height_cm", "unit_weight_kg"})
	if err != nil {
		return nil, fmt.Errorf("sku attributes CSV: %w", err)
	}

	var attrs []*entities.SKUAttributes
	for i, record := range records {
		a, err := parseSKUAttributes(record)
		if err != nil {
			return nil, fmt.Errorf("sku attributes CSV row %d: %w", i+2, err)
		}
		attrs = append(attrs, a)
	}

	return attrs, nil
}

// LoadOrders loads orders from a CSV file. The destination is either a
// state reference (full name or USPS code) or an explicit coordinate
// pair; explicit coordinates win when both are present. The lines
// column uses bundle syntax, e.g. "SKU-A*2+SKU-B".
func (l *Loader) LoadOrders(filename string) ([]*entities.Order, error) {
	records, err := readAll(filename, []string{"order_id", "destination_state", "destination_lat", "destination_lon", "lines"})
	if err != nil {
		return nil, fmt.Errorf("orders CSV: %w", err)
	}

	var orders []*entities.Order
	for i, record := range records {
		order, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// ParseLineSpec expands a bundle specification into order lines.
// Components are joined with '+', each optionally carrying a '*qty'
// suffix; a bare component means quantity 1.
func ParseLineSpec(spec string) ([]entities.OrderLine, error) {
	var lines []entities.OrderLine

	for _, part := range strings.Split(spec, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		raw := part
		qty := int64(1)
		if idx := strings.Index(part, "*"); idx >= 0 {
			raw = strings.TrimSpace(part[:idx])
			qtyStr := strings.TrimSpace(part[idx+1:])
			parsed, err := strconv.ParseInt(qtyStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid quantity in component %q", part)
			}
			qty = parsed
		}

		if raw == "" {
			return nil, fmt.Errorf("missing sku in component %q", part)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("quantity must be positive in component %q", part)
		}

		lines = append(lines, entities.OrderLine{RawSKU: raw, Quantity: entities.Quantity(qty)})
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("empty line specification")
	}
	return lines, nil
}

// Helper functions for reading and parsing CSV records

func readAll(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have header and at least one data row", filename)
	}

	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseWarehouse(record []string) (*entities.Warehouse, error) {
	id := entities.WarehouseID(strings.TrimSpace(record[0]))
	stateRaw := strings.TrimSpace(record[1])

	state := ""
	if stateRaw != "" {
		code, ok := services.StateAbbreviation(stateRaw)
		if !ok {
			return nil, fmt.Errorf("unknown state: %s", stateRaw)
		}
		state = code
	}

	location, err := parseLocation(record[2], record[3], state)
	if err != nil {
		return nil, err
	}

	priority := 0
	if p := strings.TrimSpace(record[4]); p != "" {
		priority, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid priority: %s", record[4])
		}
	}

	return entities.NewWarehouse(id, location, state, priority)
}

func parseSKUAttributes(record []string) (*entities.SKUAttributes, error) {
	sku := entities.SKU(strings.TrimSpace(record[0]))

	dims := make([]decimal.Decimal, 4)
	names := []string{"length_cm", "width_cm", "height_cm", "unit_weight_kg"}
	for i := 0; i < 4; i++ {
		d, err := decimal.NewFromString(strings.TrimSpace(record[i+1]))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", names[i], record[i+1])
		}
		dims[i] = d
	}

	return entities.NewSKUAttributes(sku, dims[0], dims[1], dims[2], dims[3])
}

func parseOrder(record []string) (*entities.Order, error) {
	id := strings.TrimSpace(record[0])

	state := ""
	if stateRaw := strings.TrimSpace(record[1]); stateRaw != "" {
		code, ok := services.StateAbbreviation(stateRaw)
		if !ok {
			return nil, fmt.Errorf("unknown destination state: %s", stateRaw)
		}
		state = code
	}

	destination, err := parseLocation(record[2], record[3], state)
	if err != nil {
		return nil, err
	}

	lines, err := ParseLineSpec(record[4])
	if err != nil {
		return nil, err
	}

	return entities.NewOrder(id, destination, lines)
}

// parseLocation resolves an explicit lat/lon pair, falling back to the
// state centroid when the pair is empty
func parseLocation(latStr, lonStr, state string) (entities.Coordinate, error) {
	latStr = strings.TrimSpace(latStr)
	lonStr = strings.TrimSpace(lonStr)

	if latStr == "" && lonStr == "" {
		if state == "" {
			return entities.Coordinate{}, fmt.Errorf("no coordinates and no resolvable state")
		}
		coord, ok := services.StateCoordinate(state)
		if !ok {
			return entities.Coordinate{}, fmt.Errorf("no centroid for state: %s", state)
		}
		return coord, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return entities.Coordinate{}, fmt.Errorf("invalid latitude: %s", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return entities.Coordinate{}, fmt.Errorf("invalid longitude: %s", lonStr)
	}

	return entities.NewCoordinate(lat, lon)
}
