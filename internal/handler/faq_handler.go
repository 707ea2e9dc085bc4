package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-service/internal/service"
	"github.com/ashwinyue/faq-service/internal/service/faq"
)

// FAQHandler FAQ处理器
type FAQHandler struct {
	svc *service.Services
}

// NewFAQHandler 创建FAQ处理器
func NewFAQHandler(svc *service.Services) *FAQHandler {
	return &FAQHandler{svc: svc}
}

// CreateFAQ 创建FAQ
func (h *FAQHandler) CreateFAQ(c *gin.Context) {
	var req faq.CreateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	resp, err := h.svc.FAQ.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, resp)
}

// GetFAQ 获取FAQ
func (h *FAQHandler) GetFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.svc.FAQ.Get(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, resp)
}

// ListFAQs 列出FAQ
func (h *FAQHandler) ListFAQs(c *gin.Context) {
	req := faq.ListFAQsRequest{Offset: 0, Limit: 20}

	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			validationError(c, "category_id must be an integer")
			return
		}
		req.CategoryID = &id
	}
	if v := c.Query("tag_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			validationError(c, "tag_id must be an integer")
			return
		}
		req.TagID = &id
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			validationError(c, "offset must be an integer")
			return
		}
		req.Offset = offset
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			validationError(c, "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	resp, err := h.svc.FAQ.List(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, resp)
}

// UpdateFAQ 更新FAQ
func (h *FAQHandler) UpdateFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req faq.UpdateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	resp, err := h.svc.FAQ.Update(c.Request.Context(), id, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, resp)
}

// DeleteFAQ 软删除FAQ
func (h *FAQHandler) DeleteFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.FAQ.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID 解析路径中的整数ID，失败时写出 422
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		validationError(c, "id must be an integer")
		return 0, false
	}
	return id, true
}
