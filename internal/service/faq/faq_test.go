package faq

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ashwinyue/faq-service/internal/model"
	"github.com/ashwinyue/faq-service/internal/repository"
	"github.com/ashwinyue/faq-service/internal/service/types"
)

// newTestService 基于内存 sqlite 构建服务
func newTestService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// 单连接保证所有查询落在同一个内存库上
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	repos := repository.NewRepositories(db)
	return NewService(repos), repos
}

// seedCatalog 准备一个分类和两个标签
func seedCatalog(t *testing.T, repos *repository.Repositories) (categoryID, tagBilling, tagTechnical int64) {
	t.Helper()
	ctx := context.Background()

	category := &model.Category{Name: "General"}
	if err := repos.Category.Create(ctx, category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	billing := &model.Tag{Name: "billing"}
	if err := repos.Tag.Create(ctx, billing); err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	technical := &model.Tag{Name: "technical"}
	if err := repos.Tag.Create(ctx, technical); err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	return category.ID, billing.ID, technical.ID
}

func updateRequest(t *testing.T, raw string) *UpdateFAQRequest {
	t.Helper()
	var req UpdateFAQRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("failed to unmarshal update request: %v", err)
	}
	return &req
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateRoundTrip(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, tagBilling, tagTechnical := seedCatalog(t, repos)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID:       categoryID,
		StandardQuestion: "How to reset password?",
		SimilarQuestions: []string{"Forgot password", "Forgot password", "Cannot login"},
		TagIDs:           []int64{tagBilling, tagBilling, tagTechnical},
		Answers: []AnswerInput{
			{AnswerType: model.AnswerTypeText, AnswerContent: strPtr("A"), SortOrder: 2},
			{AnswerType: model.AnswerTypeText, AnswerContent: strPtr("B"), SortOrder: 1},
			{AnswerType: model.AnswerTypeRichText, AnswerContent: strPtr("C"), SortOrder: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Get(ctx, resp.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.StandardQuestion != "How to reset password?" {
		t.Errorf("StandardQuestion = %q", got.StandardQuestion)
	}
	if got.CategoryID != categoryID {
		t.Errorf("CategoryID = %d, want %d", got.CategoryID, categoryID)
	}
	// 重复问法去重，保留首次出现顺序
	wantSimilar := []string{"Forgot password", "Cannot login"}
	if len(got.SimilarQuestions) != len(wantSimilar) {
		t.Fatalf("SimilarQuestions = %v, want %v", got.SimilarQuestions, wantSimilar)
	}
	for i, q := range wantSimilar {
		if got.SimilarQuestions[i] != q {
			t.Errorf("SimilarQuestions[%d] = %q, want %q", i, got.SimilarQuestions[i], q)
		}
	}
	// 标签按集合语义去重
	if len(got.TagIDs) != 2 {
		t.Fatalf("TagIDs = %v, want two entries", got.TagIDs)
	}
	// 答案按 (sort_order, 插入顺序) 排列
	wantContents := []string{"B", "C", "A"}
	if len(got.Answers) != len(wantContents) {
		t.Fatalf("Answers count = %d, want %d", len(got.Answers), len(wantContents))
	}
	for i, want := range wantContents {
		if got.Answers[i].AnswerContent == nil || *got.Answers[i].AnswerContent != want {
			t.Errorf("Answers[%d].AnswerContent = %v, want %q", i, got.Answers[i].AnswerContent, want)
		}
	}
	if got.EffectiveStart.IsZero() {
		t.Error("EffectiveStart must default to creation time")
	}
}

func TestCreateAnswerDefaults(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, _, _ := seedCatalog(t, repos)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID:       categoryID,
		StandardQuestion: "Q",
		Answers: []AnswerInput{
			{AnswerType: model.AnswerTypeText, AnswerContent: strPtr("default active")},
			{AnswerType: model.AnswerTypeCard, CardID: func() *int64 { v := int64(77); return &v }(), IsActive: boolPtr(false)},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(resp.Answers) != 2 {
		t.Fatalf("Answers count = %d, want 2", len(resp.Answers))
	}
	if !resp.Answers[0].IsActive {
		t.Error("is_active must default to true when omitted")
	}
	if resp.Answers[1].IsActive {
		t.Error("explicit is_active=false must be preserved")
	}
	if resp.Answers[1].CardID == nil || *resp.Answers[1].CardID != 77 {
		t.Errorf("CardID = %v, want 77", resp.Answers[1].CardID)
	}
}

func TestCreateMissingCategoryRollsBack(t *testing.T) {
	svc, repos := newTestService(t)
	seedCatalog(t, repos)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID:       9999,
		StandardQuestion: "Q",
		SimilarQuestions: []string{"alt"},
	})
	if !errors.Is(err, types.ErrConflict) {
		t.Fatalf("Create() error = %v, want ErrConflict", err)
	}

	var faqCount, sqCount int64
	repos.DB.Model(&model.Faq{}).Count(&faqCount)
	repos.DB.Model(&model.SimilarQuestion{}).Count(&sqCount)
	if faqCount != 0 || sqCount != 0 {
		t.Errorf("rows persisted after rollback: faqs=%d similar=%d", faqCount, sqCount)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, _, _ := seedCatalog(t, repos)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *CreateFAQRequest
	}{
		{
			name: "empty question",
			req:  &CreateFAQRequest{CategoryID: categoryID, StandardQuestion: ""},
		},
		{
			name: "question too long",
			req:  &CreateFAQRequest{CategoryID: categoryID, StandardQuestion: strings.Repeat("q", 501)},
		},
		{
			name: "unknown answer type",
			req: &CreateFAQRequest{
				CategoryID:       categoryID,
				StandardQuestion: "Q",
				Answers:          []AnswerInput{{AnswerType: "markdown"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.req); !errors.Is(err, types.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateOmittedVsEmpty(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantSimilar  int
		wantTags     int
		wantAnswers  int
		wantQuestion string
	}{
		{
			name:         "scalar only leaves collections untouched",
			payload:      `{"standard_question":"Changed?"}`,
			wantSimilar:  2,
			wantTags:     1,
			wantAnswers:  1,
			wantQuestion: "Changed?",
		},
		{
			name:         "empty similar_questions clears only that collection",
			payload:      `{"similar_questions":[]}`,
			wantSimilar:  0,
			wantTags:     1,
			wantAnswers:  1,
			wantQuestion: "Base?",
		},
		{
			name:         "empty tag_ids clears only tags",
			payload:      `{"tag_ids":[]}`,
			wantSimilar:  2,
			wantTags:     0,
			wantAnswers:  1,
			wantQuestion: "Base?",
		},
		{
			name:         "empty answers clears only answers",
			payload:      `{"answers":[]}`,
			wantSimilar:  2,
			wantTags:     1,
			wantAnswers:  0,
			wantQuestion: "Base?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repos := newTestService(t)
			categoryID, tagBilling, _ := seedCatalog(t, repos)
			ctx := context.Background()

			base, err := svc.Create(ctx, &CreateFAQRequest{
				CategoryID:       categoryID,
				StandardQuestion: "Base?",
				SimilarQuestions: []string{"alt one", "alt two"},
				TagIDs:           []int64{tagBilling},
				Answers:          []AnswerInput{{AnswerType: model.AnswerTypeText, AnswerContent: strPtr("answer")}},
			})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			got, err := svc.Update(ctx, base.ID, updateRequest(t, tt.payload))
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			if got.StandardQuestion != tt.wantQuestion {
				t.Errorf("StandardQuestion = %q, want %q", got.StandardQuestion, tt.wantQuestion)
			}
			if len(got.SimilarQuestions) != tt.wantSimilar {
				t.Errorf("SimilarQuestions = %v, want %d entries", got.SimilarQuestions, tt.wantSimilar)
			}
			if len(got.TagIDs) != tt.wantTags {
				t.Errorf("TagIDs = %v, want %d entries", got.TagIDs, tt.wantTags)
			}
			if len(got.Answers) != tt.wantAnswers {
				t.Errorf("Answers = %d entries, want %d", len(got.Answers), tt.wantAnswers)
			}
		})
	}
}

func TestUpdateReplacesCollections(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, tagBilling, tagTechnical := seedCatalog(t, repos)
	ctx := context.Background()

	base, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID:       categoryID,
		StandardQuestion: "Base?",
		SimilarQuestions: []string{"old phrasing"},
		TagIDs:           []int64{tagBilling},
		Answers:          []AnswerInput{{AnswerType: model.AnswerTypeText, AnswerContent: strPtr("old")}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	oldAnswerID := base.Answers[0].ID

	got, err := svc.Update(ctx, base.ID, &UpdateFAQRequest{
		SimilarQuestions: types.Some([]string{"new phrasing", "new phrasing", "another"}),
		TagIDs:           types.Some([]int64{tagTechnical}),
		Answers:          types.Some([]AnswerInput{{AnswerType: model.AnswerTypeRichText, AnswerContent: strPtr("old")}}),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if len(got.SimilarQuestions) != 2 || got.SimilarQuestions[0] != "new phrasing" {
		t.Errorf("SimilarQuestions = %v", got.SimilarQuestions)
	}
	if len(got.TagIDs) != 1 || got.TagIDs[0] != tagTechnical {
		t.Errorf("TagIDs = %v, want [%d]", got.TagIDs, tagTechnical)
	}
	// 替换为全量重建，子行ID重新生成
	if len(got.Answers) != 1 || got.Answers[0].ID == oldAnswerID {
		t.Errorf("answer id %d not regenerated on replace", got.Answers[0].ID)
	}
	if got.Answers[0].AnswerType != model.AnswerTypeRichText {
		t.Errorf("AnswerType = %q", got.Answers[0].AnswerType)
	}
}

func TestUpdateEffectiveEndTriState(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, _, _ := seedCatalog(t, repos)
	ctx := context.Background()

	end := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	base, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID:       categoryID,
		StandardQuestion: "Q",
		EffectiveEnd:     &end,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if base.EffectiveEnd == nil {
		t.Fatal("EffectiveEnd not persisted")
	}

	// 未提交时保持不变
	got, err := svc.Update(ctx, base.ID, updateRequest(t, `{"standard_question":"Q2"}`))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.EffectiveEnd == nil {
		t.Fatal("omitted effective_end must stay unchanged")
	}

	// 显式 null 清除结束时间
	got, err = svc.Update(ctx, base.ID, updateRequest(t, `{"effective_end":null}`))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.EffectiveEnd != nil {
		t.Errorf("EffectiveEnd = %v, want nil after explicit null", got.EffectiveEnd)
	}
}

func TestUpdateAtomicity(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, tagBilling, _ := seedCatalog(t, repos)
	ctx := context.Background()

	base, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID:       categoryID,
		StandardQuestion: "Original?",
		TagIDs:           []int64{tagBilling},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 标量更新合法但标签引用不存在：整个事务必须回滚
	_, err = svc.Update(ctx, base.ID, updateRequest(t, `{"standard_question":"Changed?","tag_ids":[9999]}`))
	if !errors.Is(err, types.ErrConflict) {
		t.Fatalf("Update() error = %v, want ErrConflict", err)
	}

	got, err := svc.Get(ctx, base.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.StandardQuestion != "Original?" {
		t.Errorf("StandardQuestion = %q, scalar update leaked out of rolled-back transaction", got.StandardQuestion)
	}
	if len(got.TagIDs) != 1 || got.TagIDs[0] != tagBilling {
		t.Errorf("TagIDs = %v, want [%d]", got.TagIDs, tagBilling)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, _, _ := seedCatalog(t, repos)
	ctx := context.Background()

	if _, err := svc.Update(ctx, 42, updateRequest(t, `{"standard_question":"Q"}`)); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}

	base, err := svc.Create(ctx, &CreateFAQRequest{CategoryID: categoryID, StandardQuestion: "Q"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(ctx, base.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Update(ctx, base.ID, updateRequest(t, `{"standard_question":"Q"}`)); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Update() on soft-deleted error = %v, want ErrNotFound", err)
	}
}

func TestListFilters(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, tagBilling, tagTechnical := seedCatalog(t, repos)
	ctx := context.Background()

	other := &model.Category{Name: "Other"}
	if err := repos.Category.Create(ctx, other); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	billingFAQ, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID: categoryID, StandardQuestion: "How to pay invoice?", TagIDs: []int64{tagBilling},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	techFAQ, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID: categoryID, StandardQuestion: "How to change email?", TagIDs: []int64{tagTechnical},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// 无标签的FAQ永远不会命中 tag_id 过滤
	if _, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID: other.ID, StandardQuestion: "Untagged?",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	byTag, err := svc.List(ctx, &ListFAQsRequest{TagID: &tagBilling, Offset: 0, Limit: 20})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byTag) != 1 || byTag[0].ID != billingFAQ.ID {
		t.Errorf("tag filter returned %d results, want exactly the billing FAQ", len(byTag))
	}

	byCategory, err := svc.List(ctx, &ListFAQsRequest{CategoryID: &categoryID, Offset: 0, Limit: 20})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byCategory) != 2 {
		t.Fatalf("category filter returned %d results, want 2", len(byCategory))
	}
	// 按ID倒序
	if byCategory[0].ID != techFAQ.ID || byCategory[1].ID != billingFAQ.ID {
		t.Errorf("order = [%d %d], want [%d %d]", byCategory[0].ID, byCategory[1].ID, techFAQ.ID, billingFAQ.ID)
	}

	// 两个过滤条件取交集
	both, err := svc.List(ctx, &ListFAQsRequest{CategoryID: &categoryID, TagID: &tagTechnical, Offset: 0, Limit: 20})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(both) != 1 || both[0].ID != techFAQ.ID {
		t.Errorf("combined filter returned %d results, want exactly the technical FAQ", len(both))
	}
}

func TestListPaginationDeterminism(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, _, _ := seedCatalog(t, repos)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		resp, err := svc.Create(ctx, &CreateFAQRequest{
			CategoryID:       categoryID,
			StandardQuestion: "Q" + string(rune('A'+i)),
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, resp.ID)
	}

	var paged []int64
	for offset := 0; offset < 5; offset += 2 {
		page, err := svc.List(ctx, &ListFAQsRequest{Offset: offset, Limit: 2})
		if err != nil {
			t.Fatalf("List(offset=%d) error = %v", offset, err)
		}
		for _, item := range page {
			paged = append(paged, item.ID)
		}
	}

	if len(paged) != 5 {
		t.Fatalf("paged ids = %v, want all 5 without overlap or gap", paged)
	}
	for i, id := range paged {
		want := ids[len(ids)-1-i]
		if id != want {
			t.Errorf("paged[%d] = %d, want %d (descending id order)", i, id, want)
		}
	}
}

func TestListValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *ListFAQsRequest
	}{
		{name: "zero limit", req: &ListFAQsRequest{Limit: 0}},
		{name: "limit above cap", req: &ListFAQsRequest{Limit: 101}},
		{name: "negative offset", req: &ListFAQsRequest{Limit: 20, Offset: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.List(ctx, tt.req); !errors.Is(err, types.ErrValidation) {
				t.Errorf("List() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSoftDeleteVisibility(t *testing.T) {
	svc, repos := newTestService(t)
	categoryID, _, _ := seedCatalog(t, repos)
	ctx := context.Background()

	base, err := svc.Create(ctx, &CreateFAQRequest{
		CategoryID:       categoryID,
		StandardQuestion: "Q",
		SimilarQuestions: []string{"alt"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, base.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.Get(ctx, base.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	list, err := svc.List(ctx, &ListFAQsRequest{Offset: 0, Limit: 20})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() returned %d results after delete, want 0", len(list))
	}

	// 软删除不可逆，重复删除视为不存在
	if err := svc.Delete(ctx, base.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}

	// 子行保留，仅父级标记隐藏
	var sqCount int64
	repos.DB.Model(&model.SimilarQuestion{}).Where("faq_id = ?", base.ID).Count(&sqCount)
	if sqCount != 1 {
		t.Errorf("similar question rows = %d, soft delete must not touch children", sqCount)
	}
}
