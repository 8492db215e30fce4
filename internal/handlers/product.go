// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/storefront-backend/internal/i18n"
	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/services"
	"github.com/openshelf/storefront-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrProductNotFound) {
		utils.NotFoundResponse(c, "product")
		return
	}
	utils.BadRequestResponse(c, err.Error(), nil)
}

func parseProductFilter(c *gin.Context) services.ProductFilter {
	filter := services.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		InStock:  queryBool(c, "in_stock", false),
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	return filter
}

// List handles GET /products; the storefront only sees active products.
func (h *ProductHandler) List(c *gin.Context) {
	filter := parseProductFilter(c)
	filter.Status = string(models.ProductStatusActive)

	result, err := h.productService.GetProducts(filter, utils.GetPaginationParams(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.PaginatedResponse(c, *result)
}

// AdminList handles GET /admin/products with no forced status filter.
func (h *ProductHandler) AdminList(c *gin.Context) {
	filter := parseProductFilter(c)
	filter.Status = c.Query("status")

	result, err := h.productService.GetProducts(filter, utils.GetPaginationParams(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.PaginatedResponse(c, *result)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// GetCategories handles GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, categories)
}

// Create handles POST /admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.CreatedResponse(c, product)
}

// Update handles PUT /admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// Delete handles DELETE /admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	archived, err := h.productService.Delete(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"archived": archived,
		"message":  i18n.T(lang, i18n.KeyProductDeleted),
	})
}
