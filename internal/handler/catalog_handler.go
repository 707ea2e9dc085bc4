package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-service/internal/service"
	"github.com/ashwinyue/faq-service/internal/service/catalog"
)

// CatalogHandler 分类与标签处理器
type CatalogHandler struct {
	svc *service.Services
}

// NewCatalogHandler 创建分类与标签处理器
func NewCatalogHandler(svc *service.Services) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// CreateCategory 创建分类
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	category, err := h.svc.Catalog.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, category)
}

// CreateTag 创建标签
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req catalog.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	tag, err := h.svc.Catalog.CreateTag(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, tag)
}

// ListTags 列出标签
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.svc.Catalog.ListTags(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, tags)
}
