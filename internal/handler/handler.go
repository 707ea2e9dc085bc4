package handler

import (
	"github.com/ashwinyue/faq-service/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	FAQ     *FAQHandler
	Catalog *CatalogHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		FAQ:     NewFAQHandler(svc),
		Catalog: NewCatalogHandler(svc),
	}
}
