// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/utils"
)

var (
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrProductNotAvailable = errors.New("product is not available")
)

// CartService keeps one cart per user, one row per (product, combination)
// line. Unit prices are refreshed from the catalog on every read so carts
// never quote stale prices; the binding snapshot happens at checkout.
type CartService struct {
	db                 *gorm.DB
	combinationService *CombinationService
}

type AddToCartRequest struct {
	ProductID     uuid.UUID              `json:"product_id" validate:"required"`
	CombinationID *uuid.UUID             `json:"combination_id,omitempty"`
	OptionValues  models.OptionValueRefs `json:"option_values,omitempty"`
	Quantity      int                    `json:"quantity" validate:"required,min=1,max=999"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=999"`
}

type CartSummary struct {
	Items      []models.CartItem `json:"items"`
	ItemCount  int               `json:"item_count"`
	TotalPrice float64           `json:"total_price"`
}

func NewCartService(db *gorm.DB, combinationService *CombinationService) *CartService {
	return &CartService{db: db, combinationService: combinationService}
}

// AddItem puts a product line into the cart. Callers may identify the
// combination directly by id or by its option value set; a repeated add to
// the same line increments the quantity instead of duplicating the row.
func (s *CartService) AddItem(userID uuid.UUID, req *AddToCartRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if product.Status != models.ProductStatusActive {
		return nil, ErrProductNotAvailable
	}

	combinationID := req.CombinationID
	unitPrice := product.BasePrice

	if combinationID == nil && len(req.OptionValues) > 0 {
		combination, err := s.combinationService.FindByOptionValues(req.ProductID, req.OptionValues)
		if err != nil {
			return nil, err
		}
		if combination == nil {
			return nil, ErrCombinationNotFound
		}
		combinationID = &combination.ID
	}

	if combinationID != nil {
		combination, err := s.combinationService.GetByID(*combinationID)
		if err != nil {
			return nil, err
		}
		if combination.ProductID != req.ProductID {
			return nil, errors.New("combination does not belong to this product")
		}
		if !combination.IsActive {
			return nil, ErrProductNotAvailable
		}
		if !combination.InStock(req.Quantity) {
			return nil, ErrInsufficientStock
		}
		unitPrice = combination.EffectivePrice(product.BasePrice)
	} else if product.StockQuantity < req.Quantity {
		return nil, ErrInsufficientStock
	}

	var item models.CartItem
	query := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID)
	if combinationID != nil {
		query = query.Where("combination_id = ?", *combinationID)
	} else {
		query = query.Where("combination_id IS NULL")
	}

	err := query.First(&item).Error
	switch {
	case err == nil:
		item.Quantity += req.Quantity
		item.UnitPrice = unitPrice
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:        userID,
			ProductID:     req.ProductID,
			CombinationID: combinationID,
			Quantity:      req.Quantity,
			UnitPrice:     unitPrice,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.db.Preload("Product").Preload("Combination").First(&item, item.ID)
	return &item, nil
}

// GetCart returns the user's cart with prices refreshed from the current
// catalog state.
func (s *CartService) GetCart(userID uuid.UUID) (*CartSummary, error) {
	var items []models.CartItem
	if err := s.db.Preload("Product").Preload("Combination").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	summary := &CartSummary{Items: items}
	for i := range items {
		item := &items[i]
		if item.Product != nil {
			price := item.Product.BasePrice
			if item.Combination != nil {
				price = item.Combination.EffectivePrice(item.Product.BasePrice)
			}
			if price != item.UnitPrice {
				item.UnitPrice = price
				s.db.Model(item).Update("unit_price", price)
			}
		}
		summary.ItemCount += item.Quantity
		summary.TotalPrice += item.LineTotal()
	}
	return summary, nil
}

func (s *CartService) UpdateItem(userID, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item models.CartItem
	if err := s.db.Preload("Product").Preload("Combination").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if item.Combination != nil {
		if !item.Combination.InStock(req.Quantity) {
			return nil, ErrInsufficientStock
		}
	} else if item.Product != nil && item.Product.StockQuantity < req.Quantity {
		return nil, ErrInsufficientStock
	}

	if err := s.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return &item, nil
}

func (s *CartService) RemoveItem(userID, itemID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) clearCartTx(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
