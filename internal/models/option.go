// internal/models/option.go
package models

import (
	"github.com/google/uuid"
)

// OptionType is a selectable axis on a product, such as "Color" or "Size".
type OptionType struct {
	BaseModel
	Name         string `json:"name" gorm:"size:100;not null"`
	Translations JSONB  `json:"translations" gorm:"type:jsonb"`
	DisplayOrder int    `json:"display_order" gorm:"default:0;index"`
	IsActive     bool   `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Values []OptionValue `json:"values,omitempty" gorm:"foreignKey:OptionTypeID"`
}

// OptionValue is one concrete choice within a type, such as "Red" within
// "Color". AdditionalPrice is added to the product base price whenever the
// value is part of a selected combination.
type OptionValue struct {
	BaseModel
	OptionTypeID    uuid.UUID `json:"option_type_id" gorm:"type:uuid;not null;index"`
	Name            string    `json:"name" gorm:"size:100;not null"`
	Translations    JSONB     `json:"translations" gorm:"type:jsonb"`
	AdditionalPrice float64   `json:"additional_price" gorm:"type:decimal(10,2);default:0"`
	ColorCode       string    `json:"color_code" gorm:"size:16"`
	DisplayOrder    int       `json:"display_order" gorm:"default:0;index"`
	IsActive        bool      `json:"is_active" gorm:"default:true;index"`

	OptionType *OptionType `json:"option_type,omitempty" gorm:"foreignKey:OptionTypeID"`
}

func (t *OptionType) LocalizedName(lang, defaultLang string) string {
	return t.Translations.Localized(lang, defaultLang, t.Name)
}

func (v *OptionValue) LocalizedName(lang, defaultLang string) string {
	return v.Translations.Localized(lang, defaultLang, v.Name)
}
