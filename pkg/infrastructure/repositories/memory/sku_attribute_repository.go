package memory

import (
	"fmt"

	"github.com/shiproute/routing/pkg/domain/entities"
	"github.com/shiproute/routing/pkg/domain/repositories"
)

// SKUAttributeRepository provides in-memory SKU physical attributes
type SKUAttributeRepository struct {
	attributes map[entities.SKU]*entities.SKUAttributes
}

// NewSKUAttributeRepository creates an empty attribute repository
func NewSKUAttributeRepository() *SKUAttributeRepository {
	return &SKUAttributeRepository{
		attributes: make(map[entities.SKU]*entities.SKUAttributes),
	}
}

// Verify interface compliance
var _ repositories.SKUAttributeRepository = (*SKUAttributeRepository)(nil)

// LoadAttributes replaces the attribute table
func (r *SKUAttributeRepository) LoadAttributes(attrs []*entities.SKUAttributes) error {
	staged := make(map[entities.SKU]*entities.SKUAttributes, len(attrs))
	for _, a := range attrs {
		if _, exists := staged[a.SKU]; exists {
			return fmt.Errorf("duplicate attributes for sku: %s", a.SKU)
		}
		staged[a.SKU] = a
	}

	r.attributes = staged
	return nil
}

// GetAttributes returns the attributes for a SKU, or false when none
// are recorded
func (r *SKUAttributeRepository) GetAttributes(sku entities.SKU) (*entities.SKUAttributes, bool) {
	a, exists := r.attributes[sku]
	return a, exists
}
