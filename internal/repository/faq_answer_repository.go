package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-service/internal/model"
)

// FaqAnswerRepository FAQ答案数据访问
type FaqAnswerRepository struct {
	db *gorm.DB
}

// NewFaqAnswerRepository 创建FAQ答案仓库
func NewFaqAnswerRepository(db *gorm.DB) *FaqAnswerRepository {
	return &FaqAnswerRepository{db: db}
}

// ReplaceForFaq 全量替换FAQ的答案（先删除后插入）
// 按提交顺序逐行插入，sort_order 相同的行由插入顺序（ID升序）保证稳定排序
func (r *FaqAnswerRepository) ReplaceForFaq(ctx context.Context, tx *gorm.DB, faqID int64, answers []*model.FaqAnswer) error {
	if err := tx.WithContext(ctx).
		Where("faq_id = ?", faqID).
		Delete(&model.FaqAnswer{}).Error; err != nil {
		return fmt.Errorf("failed to clear answers: %w", err)
	}

	for _, answer := range answers {
		answer.ID = 0
		answer.FaqID = faqID
		if err := tx.WithContext(ctx).Create(answer).Error; err != nil {
			return fmt.Errorf("failed to add answer: %w", err)
		}
	}
	return nil
}

// ListByFaqIDs 批量查询多个FAQ的答案，按 faq_id 分组
// 组内按 sort_order 升序，同序按ID升序
func (r *FaqAnswerRepository) ListByFaqIDs(ctx context.Context, faqIDs []int64) (map[int64][]*model.FaqAnswer, error) {
	grouped := make(map[int64][]*model.FaqAnswer, len(faqIDs))
	if len(faqIDs) == 0 {
		return grouped, nil
	}

	var rows []*model.FaqAnswer
	err := r.db.WithContext(ctx).
		Where("faq_id IN ?", faqIDs).
		Order("sort_order ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		grouped[row.FaqID] = append(grouped[row.FaqID], row)
	}
	return grouped, nil
}
