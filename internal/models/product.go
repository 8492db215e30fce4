// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:255;not null"`
	Translations  JSONB          `json:"translations" gorm:"type:jsonb"`
	Description   string         `json:"description" gorm:"type:text"`
	Category      string         `json:"category" gorm:"size:100;index"`
	SKU           string         `json:"sku" gorm:"size:64;index"`
	BasePrice     float64        `json:"base_price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int            `json:"stock_quantity" gorm:"default:0"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	Attributes    JSONB          `json:"attributes" gorm:"type:jsonb"`
	Status        ProductStatus  `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SalesCount    int64          `json:"sales_count" gorm:"default:0"`

	// Relationships
	Combinations []Combination `json:"combinations,omitempty" gorm:"foreignKey:ProductID"`
}

// Name resolution follows the option-value rule: requested language,
// default language, then the plain Name column.
func (p *Product) LocalizedName(lang, defaultLang string) string {
	return p.Translations.Localized(lang, defaultLang, p.Name)
}

// StockQuantity on the product row is the legacy per-product stock, used
// only for cart and order lines that carry no combination reference.
