// Package faq 实现FAQ聚合的编排：一次请求内的多表写入合并为单个事务，
// 提交后重读聚合生成响应
package faq

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-service/internal/model"
	"github.com/ashwinyue/faq-service/internal/repository"
	"github.com/ashwinyue/faq-service/internal/service/types"
)

// Service FAQ服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建FAQ服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// AnswerInput 答案条目入参
type AnswerInput struct {
	AnswerType    string  `json:"answer_type" binding:"required,oneof=text rich_text card"`
	AnswerContent *string `json:"answer_content"`
	CardID        *int64  `json:"card_id"`
	IsActive      *bool   `json:"is_active"`
	SortOrder     int     `json:"sort_order"`
}

// CreateFAQRequest 创建FAQ请求
type CreateFAQRequest struct {
	CategoryID       int64         `json:"category_id" binding:"required"`
	StandardQuestion string        `json:"standard_question" binding:"required,max=500"`
	EffectiveStart   *time.Time    `json:"effective_start"`
	EffectiveEnd     *time.Time    `json:"effective_end"`
	SimilarQuestions []string      `json:"similar_questions"`
	TagIDs           []int64       `json:"tag_ids"`
	Answers          []AnswerInput `json:"answers" binding:"omitempty,dive"`
}

// UpdateFAQRequest 更新FAQ请求
// 每个字段都是三态：未提交则跳过；子集合提交为空数组时清空整个集合
type UpdateFAQRequest struct {
	CategoryID       types.Optional[int64]         `json:"category_id"`
	StandardQuestion types.Optional[string]        `json:"standard_question"`
	EffectiveStart   types.Optional[time.Time]     `json:"effective_start"`
	EffectiveEnd     types.Optional[*time.Time]    `json:"effective_end"`
	SimilarQuestions types.Optional[[]string]      `json:"similar_questions"`
	TagIDs           types.Optional[[]int64]       `json:"tag_ids"`
	Answers          types.Optional[[]AnswerInput] `json:"answers"`
}

// ListFAQsRequest 列表查询请求
type ListFAQsRequest struct {
	CategoryID *int64
	TagID      *int64
	Offset     int
	Limit      int
}

// AnswerResponse 答案条目出参
type AnswerResponse struct {
	ID            int64   `json:"id"`
	AnswerType    string  `json:"answer_type"`
	AnswerContent *string `json:"answer_content"`
	CardID        *int64  `json:"card_id"`
	IsActive      bool    `json:"is_active"`
	SortOrder     int     `json:"sort_order"`
}

// FAQResponse FAQ聚合出参
// similar_questions 只含激活条目；answers 按 (sort_order, id) 升序
type FAQResponse struct {
	ID               int64            `json:"id"`
	CategoryID       int64            `json:"category_id"`
	StandardQuestion string           `json:"standard_question"`
	EffectiveStart   time.Time        `json:"effective_start"`
	EffectiveEnd     *time.Time       `json:"effective_end"`
	SimilarQuestions []string         `json:"similar_questions"`
	TagIDs           []int64          `json:"tag_ids"`
	Answers          []AnswerResponse `json:"answers"`
}

// Create 创建FAQ及其三个子集合，全部语句在一个事务内提交
// category_id 的存在性由存储层外键约束保证，不做预检查
func (s *Service) Create(ctx context.Context, req *CreateFAQRequest) (*FAQResponse, error) {
	if err := validateQuestion(req.StandardQuestion); err != nil {
		return nil, err
	}
	if err := validateAnswers(req.Answers); err != nil {
		return nil, err
	}

	faq := &model.Faq{
		CategoryID:       req.CategoryID,
		StandardQuestion: req.StandardQuestion,
		EffectiveStart:   time.Now(),
		EffectiveEnd:     req.EffectiveEnd,
	}
	if req.EffectiveStart != nil {
		faq.EffectiveStart = *req.EffectiveStart
	}

	err := s.repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Faq.Create(ctx, tx, faq); err != nil {
			return err
		}
		if err := s.repo.SimilarQuestion.ReplaceForFaq(ctx, tx, faq.ID, req.SimilarQuestions); err != nil {
			return err
		}
		if err := s.repo.FaqTag.ReplaceForFaq(ctx, tx, faq.ID, req.TagIDs); err != nil {
			return err
		}
		return s.repo.FaqAnswer.ReplaceForFaq(ctx, tx, faq.ID, toAnswerModels(req.Answers))
	})
	if err != nil {
		return nil, storageError("failed to create FAQ", err)
	}

	// 提交后重读，响应反映存储确认的状态
	return s.Get(ctx, faq.ID)
}

// Get 获取FAQ聚合，不存在或已软删除时返回 ErrNotFound
func (s *Service) Get(ctx context.Context, id int64) (*FAQResponse, error) {
	faq, err := s.repo.Faq.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: FAQ %d", types.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get FAQ: %w", err)
	}

	assembled, err := s.assemble(ctx, []*model.Faq{faq})
	if err != nil {
		return nil, err
	}
	return assembled[0], nil
}

// List 分页查询FAQ聚合，过滤条件同时给出时取交集
func (s *Service) List(ctx context.Context, req *ListFAQsRequest) ([]*FAQResponse, error) {
	if req.Limit < 1 || req.Limit > 100 {
		return nil, fmt.Errorf("%w: limit must be within [1, 100]", types.ErrValidation)
	}
	if req.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", types.ErrValidation)
	}

	faqs, err := s.repo.Faq.List(ctx, repository.ListFilter{
		CategoryID: req.CategoryID,
		TagID:      req.TagID,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list FAQs: %w", err)
	}

	return s.assemble(ctx, faqs)
}

// Update 部分更新FAQ：只写提交的标量字段；
// 子集合字段提交时整体替换（空数组清空），未提交时保持不变。
// 所有写入在一个事务内提交，之后重读聚合生成响应
func (s *Service) Update(ctx context.Context, id int64, req *UpdateFAQRequest) (*FAQResponse, error) {
	fields, err := scalarUpdates(req)
	if err != nil {
		return nil, err
	}
	if req.Answers.IsSet() && req.Answers.Value() != nil {
		if err := validateAnswers(req.Answers.Value()); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.Faq.Get(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: FAQ %d", types.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get FAQ: %w", err)
	}

	err = s.repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Faq.UpdateFields(ctx, tx, id, fields); err != nil {
			return err
		}
		if sq := req.SimilarQuestions; sq.IsSet() && sq.Value() != nil {
			if err := s.repo.SimilarQuestion.ReplaceForFaq(ctx, tx, id, sq.Value()); err != nil {
				return err
			}
		}
		if tags := req.TagIDs; tags.IsSet() && tags.Value() != nil {
			if err := s.repo.FaqTag.ReplaceForFaq(ctx, tx, id, tags.Value()); err != nil {
				return err
			}
		}
		if ans := req.Answers; ans.IsSet() && ans.Value() != nil {
			if err := s.repo.FaqAnswer.ReplaceForFaq(ctx, tx, id, toAnswerModels(ans.Value())); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageError("failed to update FAQ", err)
	}

	return s.Get(ctx, id)
}

// Delete 软删除FAQ，子行保留；不存在或已软删除时返回 ErrNotFound
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Faq.SoftDelete(ctx, s.repo.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: FAQ %d", types.ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete FAQ: %w", err)
	}
	return nil
}

// assemble 批量装配聚合：三个子集合各自按 faq_id IN (...) 查询后内存分组，
// 避免扇出连接产生重复父行
func (s *Service) assemble(ctx context.Context, faqs []*model.Faq) ([]*FAQResponse, error) {
	ids := make([]int64, 0, len(faqs))
	for _, faq := range faqs {
		ids = append(ids, faq.ID)
	}

	similar, err := s.repo.SimilarQuestion.ListByFaqIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load similar questions: %w", err)
	}
	tagIDs, err := s.repo.FaqTag.ListByFaqIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load faq tags: %w", err)
	}
	answers, err := s.repo.FaqAnswer.ListByFaqIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	out := make([]*FAQResponse, 0, len(faqs))
	for _, faq := range faqs {
		resp := &FAQResponse{
			ID:               faq.ID,
			CategoryID:       faq.CategoryID,
			StandardQuestion: faq.StandardQuestion,
			EffectiveStart:   faq.EffectiveStart,
			EffectiveEnd:     faq.EffectiveEnd,
			SimilarQuestions: make([]string, 0, len(similar[faq.ID])),
			TagIDs:           make([]int64, 0, len(tagIDs[faq.ID])),
			Answers:          make([]AnswerResponse, 0, len(answers[faq.ID])),
		}
		for _, q := range similar[faq.ID] {
			resp.SimilarQuestions = append(resp.SimilarQuestions, q.QuestionText)
		}
		resp.TagIDs = append(resp.TagIDs, tagIDs[faq.ID]...)
		for _, ans := range answers[faq.ID] {
			resp.Answers = append(resp.Answers, AnswerResponse{
				ID:            ans.ID,
				AnswerType:    ans.AnswerType,
				AnswerContent: ans.AnswerContent,
				CardID:        ans.CardID,
				IsActive:      ans.IsActive,
				SortOrder:     ans.SortOrder,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

// scalarUpdates 提取请求中出现的标量字段，生成字段级更新集
func scalarUpdates(req *UpdateFAQRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if req.CategoryID.IsSet() {
		if req.CategoryID.Value() <= 0 {
			return nil, fmt.Errorf("%w: category_id must be positive", types.ErrValidation)
		}
		fields["category_id"] = req.CategoryID.Value()
	}
	if req.StandardQuestion.IsSet() {
		if err := validateQuestion(req.StandardQuestion.Value()); err != nil {
			return nil, err
		}
		fields["standard_question"] = req.StandardQuestion.Value()
	}
	if req.EffectiveStart.IsSet() {
		if req.EffectiveStart.Value().IsZero() {
			return nil, fmt.Errorf("%w: effective_start must not be null", types.ErrValidation)
		}
		fields["effective_start"] = req.EffectiveStart.Value()
	}
	if req.EffectiveEnd.IsSet() {
		// 显式 null 表示清除结束时间，恢复为长期有效
		fields["effective_end"] = req.EffectiveEnd.Value()
	}

	return fields, nil
}

func validateQuestion(question string) error {
	if n := utf8.RuneCountInString(question); n < 1 || n > 500 {
		return fmt.Errorf("%w: standard_question length must be within [1, 500]", types.ErrValidation)
	}
	return nil
}

func validateAnswers(answers []AnswerInput) error {
	for _, answer := range answers {
		if !model.ValidAnswerType(answer.AnswerType) {
			return fmt.Errorf("%w: invalid answer_type %q", types.ErrValidation, answer.AnswerType)
		}
	}
	return nil
}

// toAnswerModels 入参转实体，is_active 缺省为 true
func toAnswerModels(inputs []AnswerInput) []*model.FaqAnswer {
	out := make([]*model.FaqAnswer, 0, len(inputs))
	for _, in := range inputs {
		isActive := true
		if in.IsActive != nil {
			isActive = *in.IsActive
		}
		out = append(out, &model.FaqAnswer{
			AnswerType:    in.AnswerType,
			AnswerContent: in.AnswerContent,
			CardID:        in.CardID,
			IsActive:      isActive,
			SortOrder:     in.SortOrder,
		})
	}
	return out
}

// storageError 将存储层错误翻译为服务层错误类别
func storageError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", types.ErrConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", types.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
