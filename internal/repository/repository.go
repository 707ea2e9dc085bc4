package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
// DB 暴露给服务层开启跨仓库事务
type Repositories struct {
	DB              *gorm.DB
	Faq             *FaqRepository
	SimilarQuestion *SimilarQuestionRepository
	FaqTag          *FaqTagRepository
	FaqAnswer       *FaqAnswerRepository
	Tag             *TagRepository
	Category        *CategoryRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:              db,
		Faq:             NewFaqRepository(db),
		SimilarQuestion: NewSimilarQuestionRepository(db),
		FaqTag:          NewFaqTagRepository(db),
		FaqAnswer:       NewFaqAnswerRepository(db),
		Tag:             NewTagRepository(db),
		Category:        NewCategoryRepository(db),
	}
}
