// internal/handlers/combination.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/storefront-backend/internal/i18n"
	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/services"
	"github.com/openshelf/storefront-backend/internal/utils"
)

type CombinationHandler struct {
	combinationService *services.CombinationService
}

func NewCombinationHandler(combinationService *services.CombinationService) *CombinationHandler {
	return &CombinationHandler{combinationService: combinationService}
}

// respondError maps service sentinels to HTTP statuses; everything else is a
// 500 with the detail kept out of the response body.
func (h *CombinationHandler) respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrCombinationNotFound):
		utils.NotFoundResponse(c, "combination")
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrOptionValueNotFound):
		utils.NotFoundResponse(c, "option_value")
	case errors.Is(err, services.ErrDuplicateCombination):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCombinationDuplicate))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ErrorResponse(c, http.StatusConflict, "OUT_OF_STOCK",
			i18n.T(lang, i18n.KeyCombinationOutOfStock), nil)
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// GetByProduct handles GET /products/:id/combinations
func (h *CombinationHandler) GetByProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	filter := services.CombinationFilter{
		IncludeOutOfStock: queryBool(c, "include_out_of_stock", true),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	combinations, err := h.combinationService.GetByProduct(productID, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, combinations)
}

// Find handles POST /products/:id/combinations/find
func (h *CombinationHandler) Find(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		OptionValues models.OptionValueRefs `json:"option_values"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	combination, err := h.combinationService.FindByOptionValues(productID, req.OptionValues)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if combination == nil {
		utils.NotFoundResponse(c, "combination")
		return
	}
	utils.SuccessResponse(c, combination)
}

// CalculatePrice handles POST /products/:id/combinations/price
func (h *CombinationHandler) CalculatePrice(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		OptionValues models.OptionValueRefs `json:"option_values"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	quote, err := h.combinationService.CalculatePrice(productID, req.OptionValues)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, quote)
}

// CheckAvailability handles GET /combinations/:id/availability
func (h *CombinationHandler) CheckAvailability(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	quantity := queryInt(c, "quantity", 1)
	inStock, err := h.combinationService.IsInStock(id, quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"combination_id": id,
		"quantity":       quantity,
		"in_stock":       inStock,
	})
}

// Create handles POST /admin/products/:id/combinations
func (h *CombinationHandler) Create(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	combination, err := h.combinationService.Create(productID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.CreatedResponse(c, combination)
}

// Generate handles POST /admin/products/:id/combinations/generate
func (h *CombinationHandler) Generate(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.GenerateCombinationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	created, err := h.combinationService.GenerateAllCombinations(productID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, created, gin.H{
		"generated": len(created),
		"message":   i18n.T(lang, i18n.KeyCombinationsGenerated, len(created)),
	})
}

// DeleteByProduct handles DELETE /admin/products/:id/combinations
func (h *CombinationHandler) DeleteByProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	deactivated, err := h.combinationService.DeleteByProduct(productID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	key := i18n.KeyCombinationDeleted
	if deactivated {
		key = i18n.KeyCombinationDeactivated
	}
	utils.SuccessResponse(c, gin.H{
		"deactivated": deactivated,
		"message":     i18n.T(lang, key),
	})
}

// GetByID handles GET /admin/combinations/:id
func (h *CombinationHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	combination, err := h.combinationService.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, combination)
}

// Update handles PUT /admin/combinations/:id
func (h *CombinationHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	combination, err := h.combinationService.Update(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, combination)
}

// Delete handles DELETE /admin/combinations/:id
func (h *CombinationHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	deactivated, err := h.combinationService.Delete(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	key := i18n.KeyCombinationDeleted
	if deactivated {
		key = i18n.KeyCombinationDeactivated
	}
	utils.SuccessResponse(c, gin.H{
		"deactivated": deactivated,
		"message":     i18n.T(lang, key),
	})
}

// UpdateStock handles PUT /admin/combinations/:id/stock
func (h *CombinationHandler) UpdateStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		StockQuantity int `json:"stock_quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	combination, err := h.combinationService.UpdateStock(id, req.StockQuantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, combination)
}

// AdjustStock handles POST /admin/combinations/:id/stock/adjust
func (h *CombinationHandler) AdjustStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	combination, err := h.combinationService.AdjustStock(id, req.Delta)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, combination)
}

// ReserveStock handles POST /admin/combinations/:id/stock/reserve
func (h *CombinationHandler) ReserveStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	combination, err := h.combinationService.ReserveStock(id, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, combination)
}

// ReleaseStock handles POST /admin/combinations/:id/stock/release
func (h *CombinationHandler) ReleaseStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	combination, err := h.combinationService.ReleaseStock(id, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, combination)
}

// UpdateStockBulk handles PUT /admin/combinations/stock
func (h *CombinationHandler) UpdateStockBulk(c *gin.Context) {
	var req services.BulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	results, err := h.combinationService.UpdateStockBulk(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, results)
}

// GetLowStock handles GET /admin/combinations/low-stock
func (h *CombinationHandler) GetLowStock(c *gin.Context) {
	threshold := queryInt(c, "threshold", -1)
	limit := queryInt(c, "limit", 50)

	combinations, err := h.combinationService.GetLowStock(threshold, limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, combinations)
}

// GetOutOfStock handles GET /admin/combinations/out-of-stock
func (h *CombinationHandler) GetOutOfStock(c *gin.Context) {
	limit := queryInt(c, "limit", 50)

	combinations, err := h.combinationService.GetOutOfStock(limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, combinations)
}

// GetStatistics handles GET /admin/combinations/statistics
func (h *CombinationHandler) GetStatistics(c *gin.Context) {
	stats, err := h.combinationService.GetStatistics()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, stats)
}
