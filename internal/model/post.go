package model

import (
	"time"

	"gorm.io/gorm"
)

// Post 帖子模型
// 帖子归属作者，仅作者可编辑和删除

type Post struct {
	ID        uint           `gorm:"primaryKey"`
	Title     string         `gorm:"type:varchar(150);not null;comment:标题"`
	Content   string         `gorm:"type:text;not null;comment:正文"`
	UserID    uint           `gorm:"not null;index;comment:作者ID"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string { return "post" }
