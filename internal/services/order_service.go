// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/utils"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotPending   = errors.New("order is not pending")
	ErrOrderNotCancelled = errors.New("order cannot be cancelled in its current status")
)

// OrderService turns carts into orders and walks orders through their
// lifecycle. Checkout reserves stock line by line inside one transaction,
// visiting combination lines in sorted id order so two concurrent checkouts
// that share items always lock rows in the same sequence.
type OrderService struct {
	db                  *gorm.DB
	combinationService  *CombinationService
	cartService         *CartService
	productService      *ProductService
	notificationService *NotificationService
}

type CheckoutRequest struct {
	ShippingAddress map[string]interface{} `json:"shipping_address" validate:"required"`
	Notes           string                 `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=shipped delivered"`
}

type OrderFilter struct {
	Status string
	UserID *uuid.UUID
}

func NewOrderService(db *gorm.DB, combinationService *CombinationService, cartService *CartService, productService *ProductService, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		combinationService:  combinationService,
		cartService:         cartService,
		productService:      productService,
		notificationService: notificationService,
	}
}

// Checkout converts the user's cart into a pending order. All stock
// reservations and the order insert commit or roll back together; a single
// line without sufficient stock fails the whole checkout.
func (s *OrderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	cart, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	// Combination lines first, ordered by combination id, then legacy
	// product-stock lines ordered by product id.
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if (a.CombinationID == nil) != (b.CombinationID == nil) {
			return a.CombinationID != nil
		}
		if a.CombinationID != nil {
			return a.CombinationID.String() < b.CombinationID.String()
		}
		return a.ProductID.String() < b.ProductID.String()
	})

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     orderNumber,
		Status:          models.OrderStatusPending,
		ShippingAddress: models.JSONB(req.ShippingAddress),
		Notes:           req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if item.CombinationID != nil {
				if _, err := s.combinationService.ReserveStockTx(tx, *item.CombinationID, item.Quantity); err != nil {
					return err
				}
			} else if err := reserveProductStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			order.TotalAmount += item.LineTotal()
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range items {
			orderItem := models.OrderItem{
				OrderID:       order.ID,
				ProductID:     item.ProductID,
				CombinationID: item.CombinationID,
				Quantity:      item.Quantity,
				UnitPrice:     item.UnitPrice,
			}
			if item.Product != nil {
				orderItem.ProductName = item.Product.Name
				orderItem.SKU = item.Product.SKU
			}
			if item.Combination != nil {
				orderItem.SKU = item.Combination.SKU
				orderItem.Summary = item.Combination.Summary
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return s.cartService.clearCartTx(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		go func(o models.Order) {
			if err := s.notificationService.NotifyOrderPlaced(&o); err != nil {
				logrus.WithError(err).WithField("order_id", o.ID).
					Error("Failed to create order notification")
			}
		}(*order)
	}

	return s.GetByID(order.ID, userID, false)
}

// reserveProductStockTx applies the conditional decrement to the legacy
// per-product stock column for lines without a combination.
func reserveProductStockTx(tx *gorm.DB, productID uuid.UUID, qty int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return fmt.Errorf("failed to reserve product stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (s *OrderService) GetByID(id, userID uuid.UUID, isAdmin bool) (*models.Order, error) {
	query := s.db.Preload("Items").Preload("Items.Product").Preload("Items.Combination")
	if !isAdmin {
		query = query.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetOrders(filter OrderFilter, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Order{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	if err := utils.ApplyPagination(query.Preload("Items").Order("created_at DESC"), params).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// Cancel voids a pending order and returns every reserved unit to stock.
func (s *OrderService) Cancel(id, userID uuid.UUID, isAdmin bool) (*models.Order, error) {
	order, err := s.GetByID(id, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotCancelled
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if item.CombinationID != nil {
				if _, err := s.combinationService.ReleaseStockTx(tx, *item.CombinationID, item.Quantity); err != nil {
					return err
				}
			} else if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to release product stock: %w", err)
			}
		}

		return tx.Model(order).Updates(map[string]interface{}{
			"status":       models.OrderStatusCancelled,
			"cancelled_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		go func(o models.Order) {
			if err := s.notificationService.NotifyOrderCancelled(&o); err != nil {
				logrus.WithError(err).WithField("order_id", o.ID).
					Error("Failed to create cancellation notification")
			}
		}(*order)
	}

	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	return order, nil
}

// MarkPaid finalizes a pending order after a successful payment: the
// reservation becomes a sale, reserved counters drop and sales counters rise.
func (s *OrderService) MarkPaid(id uuid.UUID, paymentReference string) (*models.Order, error) {
	order, err := s.GetByID(id, uuid.Nil, true)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if item.CombinationID != nil {
				if err := tx.Model(&models.Combination{}).
					Where("id = ?", *item.CombinationID).
					Update("reserved_quantity", gorm.Expr("GREATEST(reserved_quantity - ?, 0)", item.Quantity)).Error; err != nil {
					return fmt.Errorf("failed to settle reservation: %w", err)
				}
			}
			if err := s.productService.IncrementSales(tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("failed to update sales count: %w", err)
			}
		}

		return tx.Model(order).Updates(map[string]interface{}{
			"status":            models.OrderStatusPaid,
			"paid_at":           now,
			"payment_reference": paymentReference,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusPaid
	order.PaidAt = &now
	order.PaymentReference = paymentReference
	return order, nil
}

// Refund returns a paid order's units to stock and closes the order. The
// Stripe refund itself happens in the payment service; this is the inventory
// and bookkeeping half.
func (s *OrderService) Refund(id uuid.UUID) (*models.Order, error) {
	order, err := s.GetByID(id, uuid.Nil, true)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, errors.New("only paid orders can be refunded")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if item.CombinationID != nil {
				if err := tx.Model(&models.Combination{}).
					Where("id = ?", *item.CombinationID).
					Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
					return fmt.Errorf("failed to restore combination stock: %w", err)
				}
			} else if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to restore product stock: %w", err)
			}

			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("sales_count", gorm.Expr("GREATEST(sales_count - ?, 0)", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update sales count: %w", err)
			}
		}

		return tx.Model(order).Updates(map[string]interface{}{
			"status":       models.OrderStatusCancelled,
			"cancelled_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		go func(o models.Order) {
			if err := s.notificationService.NotifyOrderRefunded(&o); err != nil {
				logrus.WithError(err).WithField("order_id", o.ID).
					Error("Failed to create refund notification")
			}
		}(*order)
	}

	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	return order, nil
}

// UpdateStatus moves a paid order forward through fulfilment.
func (s *OrderService) UpdateStatus(id uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order, err := s.GetByID(id, uuid.Nil, true)
	if err != nil {
		return nil, err
	}

	valid := map[models.OrderStatus]models.OrderStatus{
		models.OrderStatusShipped:   models.OrderStatusPaid,
		models.OrderStatusDelivered: models.OrderStatusShipped,
	}
	if required, ok := valid[req.Status]; !ok || order.Status != required {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, req.Status)
	}

	if err := s.db.Model(order).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = req.Status
	return order, nil
}
