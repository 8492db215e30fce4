// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// CartItem is one line in a user's cart. CombinationID is nil for products
// sold without option combinations; such lines fall back to the product's
// legacy stock and base price.
type CartItem struct {
	BaseModel
	UserID        uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;index"`
	CombinationID *uuid.UUID `json:"combination_id" gorm:"type:uuid;index"`
	Quantity      int        `json:"quantity" gorm:"not null;default:1"`
	UnitPrice     float64    `json:"unit_price" gorm:"type:decimal(10,2);not null"`

	Product     *Product     `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Combination *Combination `json:"combination,omitempty" gorm:"foreignKey:CombinationID"`
}

func (i *CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
