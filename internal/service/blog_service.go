package service

import (
	"github.com/sitecraft/internal/db"
	"gorm.io/gorm"
)

// BlogService 提供文章与分类的读取能力，供公开接口与站点地图交叉使用。
type BlogService struct {
	db *gorm.DB
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB) *BlogService {
	return &BlogService{db: gdb}
}

// ListPosts returns posts ordered by created time descending, optionally only
// published ones.
func (s *BlogService) ListPosts(onlyPublished bool) ([]db.Post, error) {
	query := s.db.Preload("Category").Order("created_at desc")
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}

	var posts []db.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListCategories returns all categories ordered by name.
func (s *BlogService) ListCategories() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
