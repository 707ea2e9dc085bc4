// Package catalog 管理分类与标签：独立于FAQ生命周期的单表操作
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-service/internal/model"
	"github.com/ashwinyue/faq-service/internal/repository"
	"github.com/ashwinyue/faq-service/internal/service/types"
)

// Service 分类与标签服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建分类与标签服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	ParentID  *int64 `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CreateCategory 创建分类
// parent_id 指向不存在的分类时由外键约束拒绝
func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	}
	if err := s.repo.Category.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("%w: parent category does not exist", types.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// CreateTag 创建标签，名称重复时返回 ErrConflict
func (s *Service) CreateTag(ctx context.Context, req *CreateTagRequest) (*model.Tag, error) {
	tag := &model.Tag{Name: req.Name}
	if err := s.repo.Tag.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: tag %q already exists", types.ErrConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// ListTags 列出所有标签
func (s *Service) ListTags(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.repo.Tag.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}
