package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-service/internal/model"
)

// FaqTagRepository FAQ-标签关联数据访问
type FaqTagRepository struct {
	db *gorm.DB
}

// NewFaqTagRepository 创建FAQ-标签关联仓库
func NewFaqTagRepository(db *gorm.DB) *FaqTagRepository {
	return &FaqTagRepository{db: db}
}

// ReplaceForFaq 全量替换FAQ的标签关联（先删除后插入）
// tag_ids 按集合语义去重；标签本身不会通过该边被删除
func (r *FaqTagRepository) ReplaceForFaq(ctx context.Context, tx *gorm.DB, faqID int64, tagIDs []int64) error {
	if err := tx.WithContext(ctx).
		Where("faq_id = ?", faqID).
		Delete(&model.FaqTag{}).Error; err != nil {
		return fmt.Errorf("failed to clear faq tags: %w", err)
	}

	seen := make(map[int64]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}

		row := &model.FaqTag{FaqID: faqID, TagID: tagID}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("failed to add tag %d: %w", tagID, err)
		}
	}
	return nil
}

// ListByFaqIDs 批量查询多个FAQ的标签ID，按 faq_id 分组
func (r *FaqTagRepository) ListByFaqIDs(ctx context.Context, faqIDs []int64) (map[int64][]int64, error) {
	grouped := make(map[int64][]int64, len(faqIDs))
	if len(faqIDs) == 0 {
		return grouped, nil
	}

	var rows []*model.FaqTag
	err := r.db.WithContext(ctx).
		Where("faq_id IN ?", faqIDs).
		Order("faq_id ASC, tag_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		grouped[row.FaqID] = append(grouped[row.FaqID], row.TagID)
	}
	return grouped, nil
}
