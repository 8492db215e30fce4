// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name         string                 `json:"name" validate:"required,min=1,max=255"`
	Translations map[string]interface{} `json:"translations,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Category     string                 `json:"category,omitempty" validate:"omitempty,max=100"`
	SKU          string                 `json:"sku,omitempty" validate:"omitempty,max=64"`
	BasePrice    float64                `json:"base_price" validate:"required,min=0"`
	Stock        *int                   `json:"stock_quantity,omitempty"`
	Images       []string               `json:"images,omitempty"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
	Status       *models.ProductStatus  `json:"status,omitempty" validate:"omitempty,oneof=draft active archived"`
}

type UpdateProductRequest struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Translations map[string]interface{} `json:"translations,omitempty"`
	Description  *string                `json:"description,omitempty"`
	Category     *string                `json:"category,omitempty" validate:"omitempty,max=100"`
	SKU          *string                `json:"sku,omitempty" validate:"omitempty,max=64"`
	BasePrice    *float64               `json:"base_price,omitempty" validate:"omitempty,min=0"`
	Stock        *int                   `json:"stock_quantity,omitempty"`
	Images       []string               `json:"images,omitempty"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
	Status       *models.ProductStatus  `json:"status,omitempty" validate:"omitempty,oneof=draft active archived"`
}

type ProductFilter struct {
	Category string
	Status   string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// GetProducts lists products with filtering, pagination and sorting. The
// storefront calls it with status=active; admin listings pass no status.
func (s *ProductService) GetProducts(filter ProductFilter, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", search, search)
	}
	if filter.MinPrice != nil {
		query = query.Where("base_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("base_price <= ?", *filter.MaxPrice)
	}
	if filter.InStock {
		// A product is purchasable when either its legacy stock or any active
		// combination has units left.
		query = query.Where(
			"stock_quantity > 0 OR EXISTS (SELECT 1 FROM combinations c WHERE c.product_id = products.id AND c.is_active = true AND c.stock_quantity > 0 AND c.deleted_at IS NULL)")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "base_price", "name", "sales_count"}
	query = utils.ApplySort(query, params, allowedSortFields)

	var products []models.Product
	if err := utils.ApplyPagination(query, params).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Combinations", "is_active = ?", true).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Name:          req.Name,
		Translations:  models.JSONB(req.Translations),
		Description:   req.Description,
		Category:      req.Category,
		SKU:           req.SKU,
		BasePrice:     req.BasePrice,
		StockQuantity: coerceNonNegativeInt(req.Stock),
		Images:        pq.StringArray(req.Images),
		Attributes:    models.JSONB(req.Attributes),
		Status:        models.ProductStatusDraft,
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Translations != nil {
		updates["translations"] = models.JSONB(req.Translations)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.Stock != nil {
		updates["stock_quantity"] = coerceNonNegativeInt(req.Stock)
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Attributes != nil {
		updates["attributes"] = models.JSONB(req.Attributes)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete archives or removes a product. Combinations follow the aggregate
// soft/hard dispatch: a product whose combinations appear on order history is
// archived with its combinations deactivated; otherwise product and
// combinations are removed together.
func (s *ProductService) Delete(id uuid.UUID) (bool, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return false, err
	}

	var archived bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var referenced int64
		if err := tx.Model(&models.OrderItem{}).
			Where("product_id = ?", id).
			Count(&referenced).Error; err != nil {
			return fmt.Errorf("failed to count order references: %w", err)
		}

		if referenced > 0 {
			archived = true
			if err := tx.Model(&models.Combination{}).
				Where("product_id = ?", id).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Model(product).Update("status", models.ProductStatusArchived).Error
		}

		if err := tx.Unscoped().
			Where("product_id = ?", id).
			Delete(&models.Combination{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(product).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return archived, nil
}

// GetCategories returns the distinct category labels of active products for
// the storefront filter UI.
func (s *ProductService) GetCategories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.Product{}).
		Where("status = ? AND category <> ''", models.ProductStatusActive).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *ProductService) IncrementSales(tx *gorm.DB, productID uuid.UUID, qty int) error {
	return tx.Model(&models.Product{}).Where("id = ?", productID).
		Update("sales_count", gorm.Expr("sales_count + ?", qty)).Error
}
