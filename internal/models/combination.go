// internal/models/combination.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// OptionValueRef is one selected option value inside a combination. The
// slice on the combination keeps the order the caller supplied; the hash is
// order independent.
type OptionValueRef struct {
	OptionTypeID  uuid.UUID `json:"option_type_id"`
	OptionValueID uuid.UUID `json:"option_value_id"`
}

type OptionValueRefs []OptionValueRef

func (r OptionValueRefs) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *OptionValueRefs) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("unsupported type for option value refs")
	}

	return json.Unmarshal(bytes, r)
}

// ValueIDs returns the option value ids in input order.
func (r OptionValueRefs) ValueIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r))
	for _, ref := range r {
		ids = append(ids, ref.OptionValueID)
	}
	return ids
}

// Combination is one unique set of option value selections for a product,
// carried as its own stock-keeping row. (product_id, hash) is unique: the
// hash is a fingerprint of the sorted value-id set, so the same selections
// in any order map to the same row.
type Combination struct {
	BaseModel
	ProductID        uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_combinations_product_hash"`
	OptionValues     OptionValueRefs `json:"option_values" gorm:"type:jsonb"`
	Hash             string          `json:"hash" gorm:"size:64;not null;uniqueIndex:idx_combinations_product_hash"`
	Summary          string          `json:"summary" gorm:"size:255"`
	SKU              string          `json:"sku" gorm:"size:128"`
	AdditionalPrice  float64         `json:"additional_price" gorm:"type:decimal(10,2);default:0"`
	StockQuantity    int             `json:"stock_quantity" gorm:"default:0"`
	ReservedQuantity int             `json:"reserved_quantity" gorm:"default:0"`
	IsActive         bool            `json:"is_active" gorm:"default:true;index"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Combination) TableName() string {
	return "combinations"
}

// EffectivePrice is the price a cart or order line pays for this combination.
func (c *Combination) EffectivePrice(basePrice float64) float64 {
	return basePrice + c.AdditionalPrice
}

func (c *Combination) InStock(requiredQty int) bool {
	return c.StockQuantity >= requiredQty
}
