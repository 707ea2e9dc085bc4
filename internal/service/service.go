package service

import (
	"github.com/ashwinyue/faq-service/internal/repository"
	"github.com/ashwinyue/faq-service/internal/service/catalog"
	"github.com/ashwinyue/faq-service/internal/service/faq"
)

// Services 服务集合
type Services struct {
	FAQ     *faq.Service
	Catalog *catalog.Service
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories) *Services {
	return &Services{
		FAQ:     faq.NewService(repo),
		Catalog: catalog.NewService(repo),
	}
}
