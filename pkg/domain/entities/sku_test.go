package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewSKUAttributes_Validation(t *testing.T) {
	attrs, err := NewSKUAttributes(
		"SKU-123",
		decimal.NewFromInt(30),
		decimal.NewFromInt(20),
		decimal.NewFromInt(10),
		decimal.RequireFromString("1.5"),
	)
	if err != nil {
		t.Fatalf("Expected valid attributes creation to succeed: %v", err)
	}
	if !attrs.UnitWeight.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("Expected unit weight 1.5, got %s", attrs.UnitWeight)
	}

	testCases := []struct {
		name       string
		sku        SKU
		length     string
		unitWeight string
	}{
		{"empty sku", "", "30", "1.5"},
		{"negative dimension", "SKU-123", "-1", "1.5"},
		{"negative weight", "SKU-123", "30", "-0.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSKUAttributes(
				tc.sku,
				decimal.RequireFromString(tc.length),
				decimal.NewFromInt(20),
				decimal.NewFromInt(10),
				decimal.RequireFromString(tc.unitWeight),
			)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
		})
	}
}

func TestSKUAttributes_Volume(t *testing.T) {
	attrs, err := NewSKUAttributes(
		"SKU-123",
		decimal.NewFromInt(30),
		decimal.NewFromInt(20),
		decimal.NewFromInt(10),
		decimal.NewFromInt(1),
	)
	if err != nil {
		t.Fatalf("Expected valid attributes creation to succeed: %v", err)
	}

	want := decimal.NewFromInt(6000)
	if !attrs.Volume().Equal(want) {
		t.Errorf("Expected volume %s, got %s", want, attrs.Volume())
	}
}
