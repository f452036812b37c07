package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
// 索引与唯一约束：用户名唯一
// 说明：密码仅存储哈希（PasswordHash），不存储明文
// Photo/Wallpaper 保存上传文件名，由渲染层拼接访问路径

type User struct {
	ID           uint           `gorm:"primaryKey"`
	Username     string         `gorm:"type:varchar(80);not null;uniqueIndex;comment:用户名"`
	PasswordHash string         `gorm:"type:varchar(255);not null;comment:密码哈希"`
	Photo        string         `gorm:"type:varchar(100);comment:头像文件名"`
	Wallpaper    string         `gorm:"type:varchar(100);comment:壁纸文件名"`
	Bio          string         `gorm:"type:text;comment:个人简介"`
	CreatedAt    time.Time      `gorm:"comment:创建时间"`
	UpdatedAt    time.Time      `gorm:"comment:更新时间"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName 指定表名（因全局配置使用单数表名，这里与结构体名一致为 user）
func (User) TableName() string { return "user" }
