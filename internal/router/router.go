package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-service/internal/handler"
	"github.com/ashwinyue/faq-service/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// FAQ 常见问题
	faqs := r.Group("/faqs")
	{
		faqs.POST("", h.FAQ.CreateFAQ)
		faqs.GET("", h.FAQ.ListFAQs)
		faqs.GET("/:id", h.FAQ.GetFAQ)
		faqs.PUT("/:id", h.FAQ.UpdateFAQ)
		faqs.DELETE("/:id", h.FAQ.DeleteFAQ)
	}

	// Category 分类
	categories := r.Group("/categories")
	{
		categories.POST("", h.Catalog.CreateCategory)
	}

	// Tag 标签
	tags := r.Group("/tags")
	{
		tags.POST("", h.Catalog.CreateTag)
		tags.GET("", h.Catalog.ListTags)
	}

	return r
}
