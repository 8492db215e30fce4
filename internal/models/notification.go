// internal/models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a stored in-app notice. UserID is nil for back-office
// notices addressed to all admins (low stock alerts). Delivery channels such
// as email or push are out of scope; rows are read through the API.
type Notification struct {
	BaseModel
	UserID              *uuid.UUID       `json:"user_id" gorm:"type:uuid;index"`
	Type                NotificationType `json:"type" gorm:"type:varchar(32);not null;index"`
	Title               string           `json:"title" gorm:"size:255;not null"`
	Message             string           `json:"message" gorm:"type:text"`
	Data                JSONB            `json:"data" gorm:"type:jsonb"`
	RelatedResourceType string           `json:"related_resource_type" gorm:"size:50"`
	RelatedResourceID   *uuid.UUID       `json:"related_resource_id" gorm:"type:uuid"`
	ReadAt              *time.Time       `json:"read_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
