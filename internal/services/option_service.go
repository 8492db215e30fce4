// internal/services/option_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/utils"
)

var (
	ErrOptionTypeNotFound  = errors.New("option type not found")
	ErrOptionValueNotFound = errors.New("option value not found")
)

// OptionService is the read/write store for option types and their values.
// Combination creation, summaries and SKUs all resolve values through it.
type OptionService struct {
	db *gorm.DB
}

type CreateOptionTypeRequest struct {
	Name         string                 `json:"name" validate:"required,min=1,max=100"`
	Translations map[string]interface{} `json:"translations,omitempty"`
	DisplayOrder int                    `json:"display_order" validate:"min=0"`
	IsActive     *bool                  `json:"is_active,omitempty"`
}

type UpdateOptionTypeRequest struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Translations map[string]interface{} `json:"translations,omitempty"`
	DisplayOrder *int                   `json:"display_order,omitempty" validate:"omitempty,min=0"`
	IsActive     *bool                  `json:"is_active,omitempty"`
}

type CreateOptionValueRequest struct {
	Name            string                 `json:"name" validate:"required,min=1,max=100"`
	Translations    map[string]interface{} `json:"translations,omitempty"`
	AdditionalPrice float64                `json:"additional_price"`
	ColorCode       string                 `json:"color_code,omitempty" validate:"color_code"`
	DisplayOrder    int                    `json:"display_order" validate:"min=0"`
	IsActive        *bool                  `json:"is_active,omitempty"`
}

type UpdateOptionValueRequest struct {
	Name            *string                `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Translations    map[string]interface{} `json:"translations,omitempty"`
	AdditionalPrice *float64               `json:"additional_price,omitempty"`
	ColorCode       *string                `json:"color_code,omitempty"`
	DisplayOrder    *int                   `json:"display_order,omitempty" validate:"omitempty,min=0"`
	IsActive        *bool                  `json:"is_active,omitempty"`
}

func NewOptionService(db *gorm.DB) *OptionService {
	return &OptionService{db: db}
}

func (s *OptionService) GetTypes(includeInactive bool) ([]models.OptionType, error) {
	query := s.db.Model(&models.OptionType{}).Order("display_order ASC, created_at ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var types []models.OptionType
	if err := query.Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch option types: %w", err)
	}
	return types, nil
}

func (s *OptionService) GetType(id uuid.UUID) (*models.OptionType, error) {
	var optionType models.OptionType
	if err := s.db.Preload("Values", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC, created_at ASC")
	}).First(&optionType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionTypeNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &optionType, nil
}

func (s *OptionService) CreateType(req *CreateOptionTypeRequest) (*models.OptionType, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	optionType := &models.OptionType{
		Name:         req.Name,
		Translations: models.JSONB(req.Translations),
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		optionType.IsActive = *req.IsActive
	}

	if err := s.db.Create(optionType).Error; err != nil {
		return nil, fmt.Errorf("failed to create option type: %w", err)
	}
	return optionType, nil
}

func (s *OptionService) UpdateType(id uuid.UUID, req *UpdateOptionTypeRequest) (*models.OptionType, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var optionType models.OptionType
	if err := s.db.First(&optionType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionTypeNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Translations != nil {
		updates["translations"] = models.JSONB(req.Translations)
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return &optionType, nil
	}

	if err := s.db.Model(&optionType).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update option type: %w", err)
	}
	return &optionType, nil
}

// DeleteType removes a type and its values, unless any value is part of an
// existing combination; in that case the type is deactivated instead,
// mirroring the combination soft-delete dispatch. Returns true when the type
// was only deactivated.
func (s *OptionService) DeleteType(id uuid.UUID) (bool, error) {
	optionType, err := s.GetType(id)
	if err != nil {
		return false, err
	}

	var used int64
	for _, value := range optionType.Values {
		count, err := s.ValueUsageCount(value.ID)
		if err != nil {
			return false, err
		}
		used += count
		if used > 0 {
			break
		}
	}

	if used > 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.OptionType{}).Where("id = ?", id).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Model(&models.OptionValue{}).Where("option_type_id = ?", id).
				Update("is_active", false).Error
		})
		if err != nil {
			return false, fmt.Errorf("failed to deactivate option type: %w", err)
		}
		return true, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_type_id = ?", id).Delete(&models.OptionValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.OptionType{}, id).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete option type: %w", err)
	}
	return false, nil
}

func (s *OptionService) GetValue(id uuid.UUID) (*models.OptionValue, error) {
	var value models.OptionValue
	if err := s.db.Preload("OptionType").First(&value, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionValueNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &value, nil
}

// GetValuesByIDs resolves a batch of value ids into a lookup map. Every
// requested id must exist; a missing id is a hard error.
func (s *OptionService) GetValuesByIDs(ids []uuid.UUID) (map[uuid.UUID]*models.OptionValue, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*models.OptionValue{}, nil
	}

	var values []models.OptionValue
	if err := s.db.Where("id IN ?", ids).Find(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch option values: %w", err)
	}

	byID := make(map[uuid.UUID]*models.OptionValue, len(values))
	for i := range values {
		byID[values[i].ID] = &values[i]
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, ErrOptionValueNotFound
		}
	}
	return byID, nil
}

// GetValuesByType lists a type's values, ordered for display. With
// activeOnly set, inactive values are excluded.
func (s *OptionService) GetValuesByType(typeID uuid.UUID, activeOnly bool) ([]models.OptionValue, error) {
	query := s.db.Where("option_type_id = ?", typeID).
		Order("display_order ASC, created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var values []models.OptionValue
	if err := query.Find(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch option values: %w", err)
	}
	return values, nil
}

func (s *OptionService) CreateValue(typeID uuid.UUID, req *CreateOptionValueRequest) (*models.OptionValue, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var optionType models.OptionType
	if err := s.db.First(&optionType, typeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionTypeNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	value := &models.OptionValue{
		OptionTypeID:    typeID,
		Name:            req.Name,
		Translations:    models.JSONB(req.Translations),
		AdditionalPrice: req.AdditionalPrice,
		ColorCode:       req.ColorCode,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        true,
	}
	if req.IsActive != nil {
		value.IsActive = *req.IsActive
	}

	if err := s.db.Create(value).Error; err != nil {
		return nil, fmt.Errorf("failed to create option value: %w", err)
	}
	return value, nil
}

func (s *OptionService) UpdateValue(id uuid.UUID, req *UpdateOptionValueRequest) (*models.OptionValue, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var value models.OptionValue
	if err := s.db.First(&value, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionValueNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Translations != nil {
		updates["translations"] = models.JSONB(req.Translations)
	}
	if req.AdditionalPrice != nil {
		updates["additional_price"] = *req.AdditionalPrice
	}
	if req.ColorCode != nil {
		updates["color_code"] = *req.ColorCode
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return &value, nil
	}

	if err := s.db.Model(&value).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update option value: %w", err)
	}
	return &value, nil
}

// DeleteValue removes a value, or deactivates it when combinations still
// reference it. Returns true when the value was only deactivated.
func (s *OptionService) DeleteValue(id uuid.UUID) (bool, error) {
	var value models.OptionValue
	if err := s.db.First(&value, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrOptionValueNotFound
		}
		return false, fmt.Errorf("database error: %w", err)
	}

	used, err := s.ValueUsageCount(id)
	if err != nil {
		return false, err
	}

	if used > 0 {
		if err := s.db.Model(&value).Update("is_active", false).Error; err != nil {
			return false, fmt.Errorf("failed to deactivate option value: %w", err)
		}
		return true, nil
	}

	if err := s.db.Delete(&value).Error; err != nil {
		return false, fmt.Errorf("failed to delete option value: %w", err)
	}
	return false, nil
}

// ValueUsageCount counts combinations whose option_values JSONB contains the
// given value id, via Postgres containment.
func (s *OptionService) ValueUsageCount(valueID uuid.UUID) (int64, error) {
	needle, err := json.Marshal([]map[string]string{{"option_value_id": valueID.String()}})
	if err != nil {
		return 0, fmt.Errorf("failed to build usage query: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Combination{}).
		Where("option_values @> ?", string(needle)).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count option value usage: %w", err)
	}
	return count, nil
}
