package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-service/internal/model"
)

// FaqRepository FAQ数据访问
type FaqRepository struct {
	db *gorm.DB
}

// NewFaqRepository 创建FAQ仓库
func NewFaqRepository(db *gorm.DB) *FaqRepository {
	return &FaqRepository{db: db}
}

// ListFilter FAQ列表过滤条件，两个过滤条件同时给出时取交集
type ListFilter struct {
	CategoryID *int64
	TagID      *int64
	Offset     int
	Limit      int
}

// Create 在事务内插入FAQ，写回生成的ID
func (r *FaqRepository) Create(ctx context.Context, tx *gorm.DB, faq *model.Faq) error {
	return tx.WithContext(ctx).Create(faq).Error
}

// Get 获取未软删除的FAQ，不存在时返回 gorm.ErrRecordNotFound
func (r *FaqRepository) Get(ctx context.Context, id int64) (*model.Faq, error) {
	var faq model.Faq
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&faq).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// List 分页查询未软删除的FAQ，按ID倒序（最新创建在前）
// tag_id 过滤走关联表内连接；(faq_id, tag_id) 是复合主键，
// 单个 tag_id 每个FAQ至多匹配一行，DISTINCT 保证结果无重复
func (r *FaqRepository) List(ctx context.Context, filter ListFilter) ([]*model.Faq, error) {
	var faqs []*model.Faq

	query := r.db.WithContext(ctx).Model(&model.Faq{}).
		Where("faqs.is_deleted = ?", false)

	if filter.CategoryID != nil {
		query = query.Where("faqs.category_id = ?", *filter.CategoryID)
	}
	if filter.TagID != nil {
		query = query.Distinct("faqs.*").
			Joins("JOIN faq_tags ON faq_tags.faq_id = faqs.id").
			Where("faq_tags.tag_id = ?", *filter.TagID)
	}

	err := query.Order("faqs.id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&faqs).Error
	return faqs, err
}

// UpdateFields 字段级更新，只写入请求中出现的标量字段
func (r *FaqRepository) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Model(&model.Faq{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SoftDelete 软删除FAQ，子行不受影响
// 目标不存在或已软删除时返回 gorm.ErrRecordNotFound
func (r *FaqRepository) SoftDelete(ctx context.Context, tx *gorm.DB, id int64) error {
	res := tx.WithContext(ctx).Model(&model.Faq{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
