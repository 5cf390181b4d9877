package service

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/sitecraft/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrPageTitleMissing = errors.New("page title is required")
	ErrSlugTaken        = errors.New("page slug is already taken")
)

// Invalidator 在内容变更后触发派生缓存的重新生成。
// 失效动作永远不会让触发它的写操作失败。
type Invalidator interface {
	ContentChanged()
}

// PageService wraps page related database operations.
type PageService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// PageInput represents fields accepted when creating or updating a page.
type PageInput struct {
	Title         string
	Slug          string
	Description   string
	Content       string
	IsAIGenerated bool
	Sections      []db.Section
	IsPublished   bool
	Meta          db.MetaTags
}

// PageSummary 是搜索接口返回的精简页面信息。
type PageSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB, invalidator Invalidator) *PageService {
	return &PageService{db: gdb, invalidator: invalidator}
}

// ResolvePublished fetches the published page for a slug. Unpublished pages
// are not resolvable and report not-found just like missing ones.
func (s *PageService) ResolvePublished(slug string) (*db.Page, error) {
	var page db.Page
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	db.SortSections(page.Sections)
	return &page, nil
}

// List returns pages ordered by created time descending.
// 目录规模假定较小，这里不做分页。
func (s *PageService) List(onlyPublished bool) ([]db.Page, error) {
	query := s.db.Order("created_at desc")
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}

	var pages []db.Page
	if err := query.Find(&pages).Error; err != nil {
		return nil, err
	}
	for i := range pages {
		db.SortSections(pages[i].Sections)
	}
	return pages, nil
}

// Get fetches a page by id, published or not.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	db.SortSections(page.Sections)
	return &page, nil
}

// Create persists a new page. A missing slug is derived from the title.
// Slug collisions are detected through the unique index at write time so that
// concurrent creates cannot race past a pre-check.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPageTitleMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = MakeSlug(title)
	}

	page := db.Page{
		Title:         title,
		Slug:          slug,
		Description:   strings.TrimSpace(input.Description),
		Content:       input.Content,
		IsAIGenerated: input.IsAIGenerated,
		Sections:      input.Sections,
		IsPublished:   input.IsPublished,
		Meta:          input.Meta,
	}
	if page.IsPublished {
		now := time.Now()
		page.PublishedAt = &now
	}

	if err := s.db.Create(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	s.contentChanged()
	return &page, nil
}

// Update applies updates to an existing page.
func (s *PageService) Update(id uint, input PageInput) (*db.Page, error) {
	var existing db.Page
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPageTitleMissing
	}

	existing.Title = title
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		existing.Slug = slug
	}
	existing.Description = strings.TrimSpace(input.Description)
	existing.Content = input.Content
	existing.IsAIGenerated = input.IsAIGenerated
	existing.Sections = input.Sections
	existing.Meta = input.Meta

	if input.IsPublished && !existing.IsPublished {
		now := time.Now()
		existing.PublishedAt = &now
	}
	existing.IsPublished = input.IsPublished

	if err := s.db.Save(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	s.contentChanged()
	return &existing, nil
}

// Delete removes a page together with its embedded sections.
func (s *PageService) Delete(id uint) error {
	result := s.db.Delete(&db.Page{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}

	s.contentChanged()
	return nil
}

// Search returns up to limit pages whose title contains the query,
// case-insensitively.
func (s *PageService) Search(query string, limit int) ([]PageSummary, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []PageSummary{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	var results []PageSummary
	err := s.db.Model(&db.Page{}).
		Select("id", "title", "slug").
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(trimmed)+"%").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *PageService) contentChanged() {
	if s.invalidator != nil {
		s.invalidator.ContentChanged()
	}
}

// MakeSlug derives a URL-safe slug from a title: lower-case, strip characters
// that are neither word characters nor whitespace, collapse whitespace runs to
// single hyphens. Deriving twice from the same title yields the same slug.
func MakeSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	if slug == "" {
		return "page"
	}
	return slug
}
