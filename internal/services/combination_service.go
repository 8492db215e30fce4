// internal/services/combination_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/openshelf/storefront-backend/internal/config"
	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/utils"
)

var (
	ErrCombinationNotFound  = errors.New("combination not found")
	ErrDuplicateCombination = errors.New("combination already exists for this option set")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrProductNotFound      = errors.New("product not found")
)

// CombinationService maintains one stock-keeping row per unique option value
// set of a product. It owns identity (hash, summary, SKU), stock arithmetic
// and bulk cartesian generation; cart and order flows consume it for price
// and stock resolution.
type CombinationService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	optionService       *OptionService
	notificationService *NotificationService
}

type CreateCombinationRequest struct {
	OptionValues    models.OptionValueRefs `json:"option_values" validate:"required,min=1"`
	SKU             string                 `json:"sku,omitempty" validate:"omitempty,max=128"`
	AdditionalPrice *float64               `json:"additional_price,omitempty"`
	StockQuantity   *int                   `json:"stock_quantity,omitempty"`
	IsActive        *bool                  `json:"is_active,omitempty"`
}

type UpdateCombinationRequest struct {
	SKU             *string  `json:"sku,omitempty" validate:"omitempty,max=128"`
	AdditionalPrice *float64 `json:"additional_price,omitempty"`
	StockQuantity   *int     `json:"stock_quantity,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

type GenerateCombinationsRequest struct {
	OptionTypeIDs  []uuid.UUID            `json:"option_type_ids" validate:"required,min=1"`
	DefaultStock   *int                   `json:"default_stock,omitempty"`
	SelectedValues map[string][]uuid.UUID `json:"selected_values,omitempty"`
}

type CombinationFilter struct {
	IsActive          *bool
	IncludeOutOfStock bool
}

type BulkStockItem struct {
	ID            uuid.UUID `json:"id" validate:"required"`
	StockQuantity int       `json:"stock_quantity" validate:"min=0"`
}

type BulkStockRequest struct {
	Items []BulkStockItem `json:"items" validate:"required,min=1,dive"`
}

type BulkStockResult struct {
	ID      uuid.UUID `json:"id"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

type CombinationStatistics struct {
	Total                    int64 `json:"total"`
	Active                   int64 `json:"active"`
	OutOfStock               int64 `json:"out_of_stock"`
	LowStock                 int64 `json:"low_stock"`
	TotalStock               int64 `json:"total_stock"`
	ProductsWithCombinations int64 `json:"products_with_combinations"`
}

type PriceQuote struct {
	ProductID       uuid.UUID `json:"product_id"`
	BasePrice       float64   `json:"base_price"`
	AdditionalPrice float64   `json:"additional_price"`
	TotalPrice      float64   `json:"total_price"`
}

func NewCombinationService(db *gorm.DB, cfg *config.Config, optionService *OptionService, notificationService *NotificationService) *CombinationService {
	return &CombinationService{
		db:                  db,
		cfg:                 cfg,
		optionService:       optionService,
		notificationService: notificationService,
	}
}

// GenerateSummary builds the human-readable label for a value set, in the
// caller's input order, using localized value names with the default
// language as fallback. One batch lookup, empty input yields "".
func (s *CombinationService) GenerateSummary(refs models.OptionValueRefs, lang string) (string, error) {
	if len(refs) == 0 {
		return "", nil
	}

	values, err := s.optionService.GetValuesByIDs(refs.ValueIDs())
	if err != nil {
		return "", err
	}

	defaultLang := s.cfg.I18n.DefaultLocale
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, values[ref.OptionValueID].LocalizedName(lang, defaultLang))
	}
	return buildSummary(names), nil
}

// GenerateSKU suggests a SKU: the product's own SKU (or a code derived from
// its id), then one short code per value ordered by option type id. Callers
// may override the suggestion.
func (s *CombinationService) GenerateSKU(productID uuid.UUID, refs models.OptionValueRefs) (string, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	base := product.SKU
	if base == "" {
		base = "P-" + strings.ToUpper(product.ID.String()[:8])
	}

	if len(refs) == 0 {
		return base + combinationSKUDelimiter + combinationSKUDefault, nil
	}

	values, err := s.optionService.GetValuesByIDs(refs.ValueIDs())
	if err != nil {
		return "", err
	}

	ordered := make([]*models.OptionValue, 0, len(refs))
	for _, ref := range refs {
		ordered = append(ordered, values[ref.OptionValueID])
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].OptionTypeID.String() < ordered[j].OptionTypeID.String()
	})

	parts := make([]string, 0, len(ordered)+1)
	parts = append(parts, base)
	for _, value := range ordered {
		parts = append(parts, skuCodeFromName(value.Name))
	}
	return strings.Join(parts, combinationSKUDelimiter), nil
}

// Create persists one combination. The value set must be non-empty, every
// referenced value must exist and belong to its declared type, and the set
// must not collide with an existing combination of the same product.
// AdditionalPrice defaults to the sum of the component values' price deltas;
// admins can override it here or later through Update.
func (s *CombinationService) Create(productID uuid.UUID, req *CreateCombinationRequest) (*models.Combination, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	values, err := s.optionService.GetValuesByIDs(req.OptionValues.ValueIDs())
	if err != nil {
		return nil, err
	}
	for _, ref := range req.OptionValues {
		if values[ref.OptionValueID].OptionTypeID != ref.OptionTypeID {
			return nil, fmt.Errorf("option value %s does not belong to type %s",
				ref.OptionValueID, ref.OptionTypeID)
		}
	}

	hash := GenerateCombinationHash(req.OptionValues)

	var existing int64
	if err := s.db.Model(&models.Combination{}).
		Where("product_id = ? AND hash = ?", productID, hash).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check for duplicates: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateCombination
	}

	summary, err := s.GenerateSummary(req.OptionValues, s.cfg.I18n.DefaultLocale)
	if err != nil {
		return nil, err
	}

	sku := req.SKU
	if sku == "" {
		if sku, err = s.GenerateSKU(productID, req.OptionValues); err != nil {
			return nil, err
		}
	}

	additionalPrice := 0.0
	if req.AdditionalPrice != nil {
		additionalPrice = coerceNonNegativeFloat(req.AdditionalPrice)
	} else {
		for _, ref := range req.OptionValues {
			additionalPrice += values[ref.OptionValueID].AdditionalPrice
		}
	}

	combination := &models.Combination{
		ProductID:       productID,
		OptionValues:    req.OptionValues,
		Hash:            hash,
		Summary:         summary,
		SKU:             sku,
		AdditionalPrice: additionalPrice,
		StockQuantity:   coerceNonNegativeInt(req.StockQuantity),
		IsActive:        true,
	}
	if req.IsActive != nil {
		combination.IsActive = *req.IsActive
	}

	if err := s.db.Create(combination).Error; err != nil {
		return nil, fmt.Errorf("failed to create combination: %w", err)
	}

	// Join the parent product for display convenience
	s.db.Preload("Product").First(combination, combination.ID)

	return combination, nil
}

func (s *CombinationService) GetByID(id uuid.UUID) (*models.Combination, error) {
	var combination models.Combination
	if err := s.db.Preload("Product").First(&combination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCombinationNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &combination, nil
}

// Update patches sku, additional_price, stock_quantity and is_active. Hash
// and summary are immutable after creation; numeric inputs are re-coerced to
// non-negative values. An empty patch returns the current state unchanged.
func (s *CombinationService) Update(id uuid.UUID, req *UpdateCombinationRequest) (*models.Combination, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	combination, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.AdditionalPrice != nil {
		updates["additional_price"] = coerceNonNegativeFloat(req.AdditionalPrice)
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = coerceNonNegativeInt(req.StockQuantity)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return combination, nil
	}

	if err := s.db.Model(combination).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update combination: %w", err)
	}
	return combination, nil
}

// Delete removes a combination, unless historical order lines reference it;
// those keep their combination row, so the record is deactivated instead.
// Returns true when the combination was soft-deleted.
func (s *CombinationService) Delete(id uuid.UUID) (bool, error) {
	combination, err := s.GetByID(id)
	if err != nil {
		return false, err
	}

	var referenced int64
	if err := s.db.Model(&models.OrderItem{}).
		Where("combination_id = ?", id).
		Count(&referenced).Error; err != nil {
		return false, fmt.Errorf("failed to count order references: %w", err)
	}

	if referenced > 0 {
		if err := s.db.Model(combination).Update("is_active", false).Error; err != nil {
			return false, fmt.Errorf("failed to deactivate combination: %w", err)
		}
		return true, nil
	}

	if err := s.db.Unscoped().Delete(combination).Error; err != nil {
		return false, fmt.Errorf("failed to delete combination: %w", err)
	}
	return false, nil
}

// DeleteByProduct applies the soft/hard dispatch in aggregate: if any of the
// product's combinations appears on an order line, all of them are
// deactivated; otherwise all are removed.
func (s *CombinationService) DeleteByProduct(productID uuid.UUID) (bool, error) {
	subquery := s.db.Model(&models.Combination{}).Select("id").Where("product_id = ?", productID)

	var referenced int64
	if err := s.db.Model(&models.OrderItem{}).
		Where("combination_id IN (?)", subquery).
		Count(&referenced).Error; err != nil {
		return false, fmt.Errorf("failed to count order references: %w", err)
	}

	if referenced > 0 {
		if err := s.db.Model(&models.Combination{}).
			Where("product_id = ?", productID).
			Update("is_active", false).Error; err != nil {
			return false, fmt.Errorf("failed to deactivate combinations: %w", err)
		}
		return true, nil
	}

	if err := s.db.Unscoped().
		Where("product_id = ?", productID).
		Delete(&models.Combination{}).Error; err != nil {
		return false, fmt.Errorf("failed to delete combinations: %w", err)
	}
	return false, nil
}

// UpdateStock sets the absolute stock level. Negative input is rejected here
// and nowhere coerced, so the store level enforces the same contract as the
// HTTP surface.
func (s *CombinationService) UpdateStock(id uuid.UUID, quantity int) (*models.Combination, error) {
	if quantity < 0 {
		return nil, errors.New("stock quantity must not be negative")
	}

	result := s.db.Model(&models.Combination{}).Where("id = ?", id).
		Update("stock_quantity", quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCombinationNotFound
	}

	combination, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.maybeLowStockAlert(combination)
	return combination, nil
}

// AdjustStock applies a relative change in one atomic update, clamped at
// zero: adjusting by -1000 on a stock of 3 lands on 0.
func (s *CombinationService) AdjustStock(id uuid.UUID, delta int) (*models.Combination, error) {
	return s.adjustStock(s.db, id, delta)
}

func (s *CombinationService) adjustStock(db *gorm.DB, id uuid.UUID, delta int) (*models.Combination, error) {
	result := db.Model(&models.Combination{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("GREATEST(stock_quantity + ?, 0)", delta))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCombinationNotFound
	}

	combination, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delta < 0 {
		s.maybeLowStockAlert(combination)
	}
	return combination, nil
}

// ReserveStock takes qty units out of stock for a checkout in progress. The
// sufficiency check and the decrement are one conditional UPDATE guarded by
// stock_quantity >= qty, judged by the affected row count, so two
// overlapping checkouts can never both succeed on the last unit.
func (s *CombinationService) ReserveStock(id uuid.UUID, qty int) (*models.Combination, error) {
	return s.ReserveStockTx(s.db, id, qty)
}

// ReserveStockTx is the transactional variant used by multi-line order
// placement; callers pass their own *gorm.DB transaction handle.
func (s *CombinationService) ReserveStockTx(tx *gorm.DB, id uuid.UUID, qty int) (*models.Combination, error) {
	if qty <= 0 {
		return nil, errors.New("reserve quantity must be positive")
	}

	result := tx.Model(&models.Combination{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Updates(map[string]interface{}{
			"stock_quantity":    gorm.Expr("stock_quantity - ?", qty),
			"reserved_quantity": gorm.Expr("reserved_quantity + ?", qty),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to reserve stock: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var combination models.Combination
		if err := tx.First(&combination, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCombinationNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		return nil, ErrInsufficientStock
	}

	var combination models.Combination
	if err := tx.First(&combination, id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	s.maybeLowStockAlert(&combination)
	return &combination, nil
}

// ReleaseStock returns previously reserved units, used when an order is
// cancelled or a payment fails. The reserved counter never drops below zero.
func (s *CombinationService) ReleaseStock(id uuid.UUID, qty int) (*models.Combination, error) {
	return s.ReleaseStockTx(s.db, id, qty)
}

func (s *CombinationService) ReleaseStockTx(tx *gorm.DB, id uuid.UUID, qty int) (*models.Combination, error) {
	if qty <= 0 {
		return nil, errors.New("release quantity must be positive")
	}

	result := tx.Model(&models.Combination{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity":    gorm.Expr("stock_quantity + ?", qty),
			"reserved_quantity": gorm.Expr("GREATEST(reserved_quantity - ?, 0)", qty),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to release stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCombinationNotFound
	}

	var combination models.Combination
	if err := tx.First(&combination, id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &combination, nil
}

func (s *CombinationService) IsInStock(id uuid.UUID, requiredQty int) (bool, error) {
	if requiredQty < 1 {
		requiredQty = 1
	}

	combination, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	return combination.InStock(requiredQty), nil
}

// GenerateAllCombinations expands the cartesian product of the given option
// types into combination rows. Each type contributes its active values, or
// the caller-restricted subset; types left with no candidates are dropped.
// Creation is best-effort per tuple: existing duplicates are skipped
// silently, which makes re-running generation after a partial earlier run
// safe, and other failures are logged and skipped. Only newly created rows
// are returned.
func (s *CombinationService) GenerateAllCombinations(productID uuid.UUID, req *GenerateCombinationsRequest) ([]models.Combination, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	defaultStock := s.cfg.Inventory.DefaultBulkStock
	if req.DefaultStock != nil {
		defaultStock = coerceNonNegativeInt(req.DefaultStock)
	}

	var candidateLists [][]models.OptionValue
	for _, typeID := range req.OptionTypeIDs {
		values, err := s.optionService.GetValuesByType(typeID, true)
		if err != nil {
			return nil, err
		}

		if selected, ok := req.SelectedValues[typeID.String()]; ok {
			values = filterValuesByIDs(values, selected)
		}

		if len(values) == 0 {
			logrus.WithFields(logrus.Fields{
				"product_id":     productID,
				"option_type_id": typeID,
			}).Debug("Option type contributed no candidate values; dropped from generation")
			continue
		}
		candidateLists = append(candidateLists, values)
	}

	if len(candidateLists) == 0 {
		return []models.Combination{}, nil
	}

	created := make([]models.Combination, 0)
	for _, tuple := range cartesianProduct(candidateLists) {
		refs := make(models.OptionValueRefs, 0, len(tuple))
		for _, value := range tuple {
			refs = append(refs, models.OptionValueRef{
				OptionTypeID:  value.OptionTypeID,
				OptionValueID: value.ID,
			})
		}

		combination, err := s.Create(productID, &CreateCombinationRequest{
			OptionValues:  refs,
			StockQuantity: &defaultStock,
		})
		if err != nil {
			if errors.Is(err, ErrDuplicateCombination) {
				continue
			}
			logrus.WithError(err).WithField("product_id", productID).
				Warn("Skipping combination tuple during bulk generation")
			continue
		}
		created = append(created, *combination)
	}

	return created, nil
}

// filterValuesByIDs re-validates a caller-supplied restriction: only listed
// ids that actually belong to the candidate set survive.
func filterValuesByIDs(values []models.OptionValue, ids []uuid.UUID) []models.OptionValue {
	allowed := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}

	filtered := make([]models.OptionValue, 0, len(values))
	for _, value := range values {
		if allowed[value.ID] {
			filtered = append(filtered, value)
		}
	}
	return filtered
}

// GetByProduct lists a product's combinations in creation order, optionally
// restricted to active rows and/or rows with stock.
func (s *CombinationService) GetByProduct(productID uuid.UUID, filter CombinationFilter) ([]models.Combination, error) {
	query := s.db.Where("product_id = ?", productID).Order("created_at ASC")
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if !filter.IncludeOutOfStock {
		query = query.Where("stock_quantity > 0")
	}

	var combinations []models.Combination
	if err := query.Find(&combinations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch combinations: %w", err)
	}
	return combinations, nil
}

// FindByOptionValues resolves a value set to its combination row via the
// hash, or nil when no such combination exists. Callers that get a
// duplicate error from Create are expected to come here instead of retrying.
func (s *CombinationService) FindByOptionValues(productID uuid.UUID, refs models.OptionValueRefs) (*models.Combination, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	hash := GenerateCombinationHash(refs)

	var combination models.Combination
	if err := s.db.Preload("Product").
		Where("product_id = ? AND hash = ?", productID, hash).
		First(&combination).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &combination, nil
}

// GetLowStock lists active combinations at or below the threshold across all
// products, lowest stock first, for operational alerting.
func (s *CombinationService) GetLowStock(threshold, limit int) ([]models.Combination, error) {
	if threshold < 0 {
		threshold = s.cfg.Inventory.LowStockThreshold
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var combinations []models.Combination
	if err := s.db.Preload("Product").
		Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC, created_at ASC").
		Limit(limit).
		Find(&combinations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock combinations: %w", err)
	}
	return combinations, nil
}

func (s *CombinationService) GetOutOfStock(limit int) ([]models.Combination, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var combinations []models.Combination
	if err := s.db.Preload("Product").
		Where("is_active = ? AND stock_quantity = 0", true).
		Order("created_at ASC").
		Limit(limit).
		Find(&combinations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch out of stock combinations: %w", err)
	}
	return combinations, nil
}

func (s *CombinationService) GetStatistics() (*CombinationStatistics, error) {
	stats := &CombinationStatistics{}

	model := func() *gorm.DB { return s.db.Model(&models.Combination{}) }

	if err := model().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count combinations: %w", err)
	}
	if err := model().Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active combinations: %w", err)
	}
	if err := model().Where("is_active = ? AND stock_quantity = 0", true).
		Count(&stats.OutOfStock).Error; err != nil {
		return nil, fmt.Errorf("failed to count out of stock combinations: %w", err)
	}
	if err := model().Where("is_active = ? AND stock_quantity BETWEEN 1 AND ?",
		true, s.cfg.Inventory.LowStockThreshold).
		Count(&stats.LowStock).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock combinations: %w", err)
	}
	if err := model().Select("COALESCE(SUM(stock_quantity), 0)").
		Scan(&stats.TotalStock).Error; err != nil {
		return nil, fmt.Errorf("failed to sum stock: %w", err)
	}
	if err := model().Distinct("product_id").
		Count(&stats.ProductsWithCombinations).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return stats, nil
}

// CalculatePrice quotes base price plus the selected values' price deltas,
// independent of any persisted combination row, for live previews before a
// combination exists.
func (s *CombinationService) CalculatePrice(productID uuid.UUID, refs models.OptionValueRefs) (*PriceQuote, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	quote := &PriceQuote{
		ProductID: productID,
		BasePrice: product.BasePrice,
	}

	if len(refs) > 0 {
		values, err := s.optionService.GetValuesByIDs(refs.ValueIDs())
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			quote.AdditionalPrice += values[ref.OptionValueID].AdditionalPrice
		}
	}

	quote.TotalPrice = quote.BasePrice + quote.AdditionalPrice
	return quote, nil
}

// UpdateStockBulk applies absolute stock levels item by item. Failures do
// not abort the batch; each item reports its own outcome.
func (s *CombinationService) UpdateStockBulk(req *BulkStockRequest) ([]BulkStockResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	results := make([]BulkStockResult, 0, len(req.Items))
	for _, item := range req.Items {
		result := BulkStockResult{ID: item.ID, Success: true}
		if _, err := s.UpdateStock(item.ID, item.StockQuantity); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}

// maybeLowStockAlert raises a back-office notification when an active
// combination drops to the configured threshold.
func (s *CombinationService) maybeLowStockAlert(combination *models.Combination) {
	if s.notificationService == nil || !s.cfg.Inventory.AlertOnLowStock {
		return
	}
	if !combination.IsActive || combination.StockQuantity > s.cfg.Inventory.LowStockThreshold {
		return
	}

	go func(c models.Combination) {
		if err := s.notificationService.NotifyLowStock(&c); err != nil {
			logrus.WithError(err).WithField("combination_id", c.ID).
				Error("Failed to create low stock notification")
		}
	}(*combination)
}
