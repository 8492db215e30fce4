// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/utils"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService persists back-office and customer notifications.
// Rows with a nil user id are admin-wide and show up for every admin.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(notification *models.Notification) error {
	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// NotifyLowStock records an admin-wide alert for a combination that dropped
// to the low stock threshold.
func (s *NotificationService) NotifyLowStock(combination *models.Combination) error {
	return s.Create(&models.Notification{
		Type:    models.NotificationTypeLowStock,
		Title:   "Low stock alert",
		Message: fmt.Sprintf("Combination %s (%s) is down to %d units", combination.SKU, combination.Summary, combination.StockQuantity),
		Data: models.JSONB{
			"combination_id": combination.ID.String(),
			"product_id":     combination.ProductID.String(),
			"sku":            combination.SKU,
			"stock_quantity": combination.StockQuantity,
		},
		RelatedResourceType: "combination",
		RelatedResourceID:   &combination.ID,
	})
}

func (s *NotificationService) NotifyOrderPlaced(order *models.Order) error {
	return s.Create(&models.Notification{
		UserID:  &order.UserID,
		Type:    models.NotificationTypeOrderPlaced,
		Title:   "Order placed",
		Message: fmt.Sprintf("Order %s has been placed", order.OrderNumber),
		Data: models.JSONB{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
		},
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	})
}

func (s *NotificationService) NotifyOrderCancelled(order *models.Order) error {
	return s.Create(&models.Notification{
		UserID:  &order.UserID,
		Type:    models.NotificationTypeOrderCancelled,
		Title:   "Order cancelled",
		Message: fmt.Sprintf("Order %s has been cancelled and reserved stock released", order.OrderNumber),
		Data: models.JSONB{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
		},
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	})
}

func (s *NotificationService) NotifyOrderRefunded(order *models.Order) error {
	return s.Create(&models.Notification{
		UserID:  &order.UserID,
		Type:    models.NotificationTypeOrderRefunded,
		Title:   "Order refunded",
		Message: fmt.Sprintf("Order %s has been refunded", order.OrderNumber),
		Data: models.JSONB{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
		},
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	})
}

// GetForUser lists a user's notifications newest first. Admins also see
// admin-wide rows (nil user id).
func (s *NotificationService) GetForUser(userID uuid.UUID, isAdmin bool, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Notification{})
	if isAdmin {
		query = query.Where("user_id = ? OR user_id IS NULL", userID)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.Notification
	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	result := utils.CreatePaginationResult(notifications, total, params)
	return &result, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID, isAdmin bool) (int64, error) {
	query := s.db.Model(&models.Notification{}).Where("read_at IS NULL")
	if isAdmin {
		query = query.Where("user_id = ? OR user_id IS NULL", userID)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(id, userID uuid.UUID, isAdmin bool) error {
	query := s.db.Model(&models.Notification{}).Where("id = ?", id)
	if isAdmin {
		query = query.Where("user_id = ? OR user_id IS NULL", userID)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	result := query.Update("read_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID, isAdmin bool) (int64, error) {
	query := s.db.Model(&models.Notification{}).Where("read_at IS NULL")
	if isAdmin {
		query = query.Where("user_id = ? OR user_id IS NULL", userID)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	result := query.Update("read_at", time.Now())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}
