package db

import (
	"time"

	"gorm.io/gorm"
)

// Post 定义了文章模型
type Post struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Summary     string
	Content     string `gorm:"type:text"`
	IsPublished bool   `gorm:"default:false;index"`
	PublishedAt *time.Time
	CategoryID  *uint
	Category    *Category
}
