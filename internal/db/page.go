package db

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// Page 定义了页面模型，版面由有序的 Sections 组成
type Page struct {
	gorm.Model
	Title         string `gorm:"not null"`
	Slug          string `gorm:"uniqueIndex;not null"`
	Description   string
	Content       string    `gorm:"type:text"`
	IsAIGenerated bool      `gorm:"default:false"`
	Sections      []Section `gorm:"serializer:json"`
	IsPublished   bool      `gorm:"default:false;index"`
	PublishedAt   *time.Time
	Meta          MetaTags `gorm:"serializer:json"`
}

// MetaTags 保存页面的 SEO 元信息
type MetaTags struct {
	Keywords      string `json:"keywords,omitempty"`
	OGTitle       string `json:"ogTitle,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
	OGImage       string `json:"ogImage,omitempty"`
}

// Section is one ordered block of a page's composition. Every section carries
// the same superset of optional fields and is interpreted by its Type
// discriminator; missing fields render as nothing rather than failing.
type Section struct {
	Type            string        `json:"type"`
	Title           string        `json:"title,omitempty"`
	Subtitle        string        `json:"subtitle,omitempty"`
	Content         string        `json:"content,omitempty"`
	ImageURL        string        `json:"imageUrl,omitempty"`
	ButtonText      string        `json:"buttonText,omitempty"`
	ButtonLink      string        `json:"buttonLink,omitempty"`
	BackgroundColor string        `json:"backgroundColor"`
	TextColor       string        `json:"textColor"`
	Style           string        `json:"style"`
	Images          []string      `json:"images,omitempty"`
	Items           []SectionItem `json:"items,omitempty"`
	Order           int           `json:"order"`
}

// SectionItem 是多条目版块（卡片、特性、评价）中的单个子条目
type SectionItem struct {
	Title      string `json:"title,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	Content    string `json:"content,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Icon       string `json:"icon,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonLink string `json:"buttonLink,omitempty"`
	Order      int    `json:"order"`
}

const (
	DefaultSectionBackground = "#ffffff"
	DefaultSectionTextColor  = "#000000"
	DefaultSectionStyle      = "default"
)

// Normalize fills color and style defaults on a section.
func (s *Section) Normalize() {
	if s.BackgroundColor == "" {
		s.BackgroundColor = DefaultSectionBackground
	}
	if s.TextColor == "" {
		s.TextColor = DefaultSectionTextColor
	}
	if s.Style == "" {
		s.Style = DefaultSectionStyle
	}
}

// SortSections orders sections ascending by Order. The sort is stable so
// sections sharing an Order value keep their insertion order.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	for i := range sections {
		sort.SliceStable(sections[i].Items, func(a, b int) bool {
			return sections[i].Items[a].Order < sections[i].Items[b].Order
		})
	}
}

// BeforeSave 在写入前补全版块默认值并按 Order 排序
func (p *Page) BeforeSave(tx *gorm.DB) error {
	for i := range p.Sections {
		p.Sections[i].Normalize()
	}
	SortSections(p.Sections)
	return nil
}
