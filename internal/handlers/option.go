// internal/handlers/option.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/storefront-backend/internal/i18n"
	"github.com/openshelf/storefront-backend/internal/services"
	"github.com/openshelf/storefront-backend/internal/utils"
)

type OptionHandler struct {
	optionService *services.OptionService
}

func NewOptionHandler(optionService *services.OptionService) *OptionHandler {
	return &OptionHandler{optionService: optionService}
}

func (h *OptionHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOptionTypeNotFound):
		utils.NotFoundResponse(c, "option_type")
	case errors.Is(err, services.ErrOptionValueNotFound):
		utils.NotFoundResponse(c, "option_value")
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// GetTypes handles GET /options/types
func (h *OptionHandler) GetTypes(c *gin.Context) {
	includeInactive := queryBool(c, "include_inactive", false) && isAdmin(c)

	types, err := h.optionService.GetTypes(includeInactive)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, types)
}

// GetType handles GET /options/types/:id
func (h *OptionHandler) GetType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	optionType, err := h.optionService.GetType(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, optionType)
}

// CreateType handles POST /admin/options/types
func (h *OptionHandler) CreateType(c *gin.Context) {
	var req services.CreateOptionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	optionType, err := h.optionService.CreateType(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.CreatedResponse(c, optionType)
}

// UpdateType handles PUT /admin/options/types/:id
func (h *OptionHandler) UpdateType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOptionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	optionType, err := h.optionService.UpdateType(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, optionType)
}

// DeleteType handles DELETE /admin/options/types/:id
func (h *OptionHandler) DeleteType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	deactivated, err := h.optionService.DeleteType(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"deactivated": deactivated,
		"message":     i18n.T(lang, i18n.KeyOptionTypeDeleted),
	})
}

// GetValues handles GET /options/types/:id/values
func (h *OptionHandler) GetValues(c *gin.Context) {
	typeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	activeOnly := !(queryBool(c, "include_inactive", false) && isAdmin(c))
	values, err := h.optionService.GetValuesByType(typeID, activeOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, values)
}

// CreateValue handles POST /admin/options/types/:id/values
func (h *OptionHandler) CreateValue(c *gin.Context) {
	typeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateOptionValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	value, err := h.optionService.CreateValue(typeID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.CreatedResponse(c, value)
}

// UpdateValue handles PUT /admin/options/values/:id
func (h *OptionHandler) UpdateValue(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOptionValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	value, err := h.optionService.UpdateValue(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, value)
}

// DeleteValue handles DELETE /admin/options/values/:id
func (h *OptionHandler) DeleteValue(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	deactivated, err := h.optionService.DeleteValue(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"deactivated": deactivated,
		"message":     i18n.T(lang, i18n.KeyOptionValueDeleted),
	})
}
