package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SKU is the canonical stock-keeping-unit identifier recognized by the
// inventory store. Raw order text is resolved to a SKU by the matcher;
// SKUs are never merged or renamed within a run.
type SKU string

// SKUAttributes holds the physical properties of a SKU used for shipment
// weight and volume estimates. Dimensions are centimeters, weight is
// kilograms per unit.
type SKUAttributes struct {
	SKU        SKU
	Length     decimal.Decimal
	Width      decimal.Decimal
	Height     decimal.Decimal
	UnitWeight decimal.Decimal
}

// NewSKUAttributes creates validated SKUAttributes
func NewSKUAttributes(sku SKU, length, width, height, unitWeight decimal.Decimal) (*SKUAttributes, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if length.IsNegative() || width.IsNegative() || height.IsNegative() {
		return nil, fmt.Errorf("dimensions cannot be negative for sku %s", sku)
	}
	if unitWeight.IsNegative() {
		return nil, fmt.Errorf("unit weight cannot be negative for sku %s", sku)
	}

	return &SKUAttributes{
		SKU:        sku,
		Length:     length,
		Width:      width,
		Height:     height,
		UnitWeight: unitWeight,
	}, nil
}

// Volume returns the unit volume in cubic centimeters
func (a *SKUAttributes) Volume() decimal.Decimal {
	return a.Length.Mul(a.Width).Mul(a.Height)
}
