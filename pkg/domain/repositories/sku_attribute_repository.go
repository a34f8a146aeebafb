package repositories

import "github.com/shiproute/routing/pkg/domain/entities"

// SKUAttributeRepository provides access to per-SKU physical
// attributes. Attributes are optional: a SKU without attributes simply
// gets no shipment estimate.
type SKUAttributeRepository interface {
	// LoadAttributes replaces the attribute table.
	LoadAttributes(attrs []*entities.SKUAttributes) error

	// GetAttributes returns the attributes for a SKU, or false when
	// none are recorded.
	GetAttributes(sku entities.SKU) (*entities.SKUAttributes, bool)
}
