package model

import "time"

// Faq FAQ条目
// 三个子集合（相似问题、标签关联、答案）始终作为一个聚合整体读写，
// 子行不在实体上持有引用，由仓库层按 faq_id 查询后组装
type Faq struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID       int64      `gorm:"not null;index" json:"category_id"`
	Category         *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
	StandardQuestion string     `gorm:"size:500;not null" json:"standard_question"`
	EffectiveStart   time.Time  `gorm:"not null" json:"effective_start"`
	EffectiveEnd     *time.Time `json:"effective_end"`
	IsDeleted        bool       `gorm:"not null;default:false;index" json:"-"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Faq) TableName() string {
	return "faqs"
}

// SimilarQuestion FAQ相似问法
type SimilarQuestion struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FaqID        int64     `gorm:"not null;index" json:"faq_id"`
	Faq          *Faq      `gorm:"foreignKey:FaqID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionText string    `gorm:"size:500;not null" json:"question_text"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedBy    string    `gorm:"size:100;not null;default:'manual'" json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (SimilarQuestion) TableName() string {
	return "similar_questions"
}

// CreatedByManual 相似问题的默认来源标记
const CreatedByManual = "manual"

// 答案类型常量
const (
	AnswerTypeText     = "text"      // 纯文本
	AnswerTypeRichText = "rich_text" // 富文本
	AnswerTypeCard     = "card"      // 卡片引用
)

// FaqAnswer FAQ答案
// card_id 是外部资源的不透明引用，本层不做外键约束
type FaqAnswer struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FaqID         int64     `gorm:"not null;index" json:"faq_id"`
	Faq           *Faq      `gorm:"foreignKey:FaqID;constraint:OnDelete:CASCADE" json:"-"`
	AnswerType    string    `gorm:"size:20;not null" json:"answer_type"`
	AnswerContent *string   `gorm:"type:text" json:"answer_content"`
	CardID        *int64    `json:"card_id"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (FaqAnswer) TableName() string {
	return "faq_answers"
}

// ValidAnswerType 校验答案类型枚举
func ValidAnswerType(t string) bool {
	switch t {
	case AnswerTypeText, AnswerTypeRichText, AnswerTypeCard:
		return true
	}
	return false
}
