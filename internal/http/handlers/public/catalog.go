package public

import (
	"errors"
	"strconv"

	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// Home 首页上架商品
func (h *Handler) Home(c *gin.Context) {
	items, err := h.CatalogService.Home(requestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// Shop 商店分页列表
func (h *Handler) Shop(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := h.CatalogService.Shop(requestContext(c), page)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, result.Items, response.Pagination{
		Page:      result.Page,
		PageSize:  result.PageSize,
		Total:     result.Total,
		TotalPage: int64(result.TotalPages),
	})
}

// Product 商品详情
func (h *Handler) Product(c *gin.Context) {
	item, err := h.CatalogService.Product(requestContext(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			respondError(c, response.CodeNotFound, "error.item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, item)
}

// Category 分类页
func (h *Handler) Category(c *gin.Context) {
	view, err := h.CatalogService.Category(requestContext(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, view)
}

// Categories 上架分类列表
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.CatalogService.Categories(requestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}
