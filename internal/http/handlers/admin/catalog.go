package admin

import (
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
}

// CreateItemRequest 创建商品请求
type CreateItemRequest struct {
	Title         string        `json:"title" binding:"required"`
	Slug          string        `json:"slug" binding:"required"`
	Price         models.Money  `json:"price"`
	DiscountPrice *models.Money `json:"discount_price"`
	CategorySlug  string        `json:"category_slug"`
	Label         string        `json:"label"`
	Description   string        `json:"description"`
	Image         string        `json:"image"`
	IsActive      *bool         `json:"is_active"`
}

// UpdateItemRequest 更新商品请求，缺省字段保持不变
type UpdateItemRequest struct {
	Title         *string       `json:"title"`
	Price         *models.Money `json:"price"`
	DiscountPrice *models.Money `json:"discount_price"`
	ClearDiscount bool          `json:"clear_discount"`
	CategorySlug  *string       `json:"category_slug"`
	Label         *string       `json:"label"`
	Description   *string       `json:"description"`
	Image         *string       `json:"image"`
	IsActive      *bool         `json:"is_active"`
}

var catalogErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrInvalidRequest, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrItemPriceInvalid, Code: response.CodeBadRequest, Key: "error.item_price_invalid"},
	{Target: service.ErrDiscountInvalid, Code: response.CodeBadRequest, Key: "error.discount_invalid"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
}

func respondCatalogError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, catalogErrorRules, handlershared.ErrorRule{
		Code: response.CodeInternal,
		Key:  "error.internal",
	})
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CatalogAdminService.CreateCategory(requestContext(c), service.CategoryInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.recordAudit(c, service.AuditActionCategoryCreate, "category", category.ID, map[string]interface{}{
		"slug": category.Slug,
	})
	response.Success(c, category)
}

// CreateItem 创建商品
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.CatalogAdminService.CreateItem(requestContext(c), service.ItemInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CategorySlug:  req.CategorySlug,
		Label:         req.Label,
		Description:   req.Description,
		Image:         req.Image,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.recordAudit(c, service.AuditActionItemCreate, "item", item.ID, map[string]interface{}{
		"slug":  item.Slug,
		"price": item.Price.String(),
	})
	response.Success(c, item)
}

// UpdateItem 按 slug 更新商品
func (h *Handler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.CatalogAdminService.UpdateItem(requestContext(c), c.Param("slug"), service.ItemPatch{
		Title:         req.Title,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		ClearDiscount: req.ClearDiscount,
		CategorySlug:  req.CategorySlug,
		Label:         req.Label,
		Description:   req.Description,
		Image:         req.Image,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.recordAudit(c, service.AuditActionItemUpdate, "item", item.ID, map[string]interface{}{
		"slug":     item.Slug,
		"price":    item.Price.String(),
		"active":   item.IsActive,
		"discount": req.DiscountPrice != nil || req.ClearDiscount,
	})
	response.Success(c, item)
}
