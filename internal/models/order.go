// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID           uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	OrderNumber      string      `json:"order_number" gorm:"uniqueIndex;size:32;not null"`
	Status           OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	TotalAmount      float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	ShippingAddress  JSONB       `json:"shipping_address" gorm:"type:jsonb"`
	Notes            string      `json:"notes" gorm:"type:text"`
	PaymentReference string      `json:"payment_reference" gorm:"size:128"`
	PaidAt           *time.Time  `json:"paid_at"`
	CancelledAt      *time.Time  `json:"cancelled_at"`

	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots name, SKU, summary and unit price at checkout time so
// later edits to the catalog never rewrite order history. A non-nil
// CombinationID also pins the referenced combination row: combinations with
// order history are soft-deleted, never removed.
type OrderItem struct {
	BaseModel
	OrderID       uuid.UUID  `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;index"`
	CombinationID *uuid.UUID `json:"combination_id" gorm:"type:uuid;index"`
	ProductName   string     `json:"product_name" gorm:"size:255;not null"`
	SKU           string     `json:"sku" gorm:"size:128"`
	Summary       string     `json:"summary" gorm:"size:255"`
	Quantity      int        `json:"quantity" gorm:"not null"`
	UnitPrice     float64    `json:"unit_price" gorm:"type:decimal(10,2);not null"`

	Product     *Product     `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Combination *Combination `json:"combination,omitempty" gorm:"foreignKey:CombinationID"`
}

func (i *OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
