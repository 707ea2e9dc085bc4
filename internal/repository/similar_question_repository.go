package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-service/internal/model"
)

// SimilarQuestionRepository 相似问题数据访问
type SimilarQuestionRepository struct {
	db *gorm.DB
}

// NewSimilarQuestionRepository 创建相似问题仓库
func NewSimilarQuestionRepository(db *gorm.DB) *SimilarQuestionRepository {
	return &SimilarQuestionRepository{db: db}
}

// ReplaceForFaq 全量替换FAQ的相似问题（先删除后插入）
// 重复问法去重，保留首次出现的顺序；行ID每次替换都会重新生成
func (r *SimilarQuestionRepository) ReplaceForFaq(ctx context.Context, tx *gorm.DB, faqID int64, questions []string) error {
	if err := tx.WithContext(ctx).
		Where("faq_id = ?", faqID).
		Delete(&model.SimilarQuestion{}).Error; err != nil {
		return fmt.Errorf("failed to clear similar questions: %w", err)
	}

	seen := make(map[string]struct{}, len(questions))
	for _, question := range questions {
		if _, ok := seen[question]; ok {
			continue
		}
		seen[question] = struct{}{}

		row := &model.SimilarQuestion{
			FaqID:        faqID,
			QuestionText: question,
			IsActive:     true,
			CreatedBy:    model.CreatedByManual,
		}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("failed to add similar question: %w", err)
		}
	}
	return nil
}

// ListByFaqIDs 批量查询多个FAQ的相似问题，按 faq_id 分组
// 只返回 is_active 的行，组内按ID升序（插入顺序）
func (r *SimilarQuestionRepository) ListByFaqIDs(ctx context.Context, faqIDs []int64) (map[int64][]*model.SimilarQuestion, error) {
	grouped := make(map[int64][]*model.SimilarQuestion, len(faqIDs))
	if len(faqIDs) == 0 {
		return grouped, nil
	}

	var rows []*model.SimilarQuestion
	err := r.db.WithContext(ctx).
		Where("faq_id IN ? AND is_active = ?", faqIDs, true).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		grouped[row.FaqID] = append(grouped[row.FaqID], row)
	}
	return grouped, nil
}
