package model

import "time"

// Category 分类，通过 parent_id 形成树形结构
// 父子链接不做环检测，调用方需保证层级合理
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ParentID  *int64    `gorm:"index" json:"parent_id,omitempty"`
	Parent    *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
