package model

import "time"

// Tag 标签，名称全局唯一，通过 FaqTag 与 FAQ 多对多关联
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// FaqTag FAQ-标签关联表，复合主键，无独立ID
type FaqTag struct {
	FaqID     int64     `gorm:"primaryKey;autoIncrement:false" json:"faq_id"`
	TagID     int64     `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	Faq       *Faq      `gorm:"foreignKey:FaqID;constraint:OnDelete:CASCADE" json:"-"`
	Tag       *Tag      `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (FaqTag) TableName() string {
	return "faq_tags"
}
