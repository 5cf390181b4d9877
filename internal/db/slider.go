package db

import (
	"sort"

	"gorm.io/gorm"
)

// Slider 定义了轮播图模型，图片列表按 Order 渲染
type Slider struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	Width       string        `gorm:"default:100%"`
	Height      string        `gorm:"default:400px"`
	Interval    int           `gorm:"default:5000"` // 切换间隔，毫秒
	Images      []SliderImage `gorm:"serializer:json"`
}

// SliderImage 是轮播图中的单帧
type SliderImage struct {
	ImageURL   string `json:"imageUrl"`
	Title      string `json:"title,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonLink string `json:"buttonLink,omitempty"`
	Order      int    `json:"order"`
}

const (
	DefaultSliderWidth    = "100%"
	DefaultSliderHeight   = "400px"
	DefaultSliderInterval = 5000
)

// BeforeSave 补全尺寸与间隔默认值，并按 Order 稳定排序图片
func (s *Slider) BeforeSave(tx *gorm.DB) error {
	if s.Width == "" {
		s.Width = DefaultSliderWidth
	}
	if s.Height == "" {
		s.Height = DefaultSliderHeight
	}
	if s.Interval <= 0 {
		s.Interval = DefaultSliderInterval
	}
	sort.SliceStable(s.Images, func(i, j int) bool {
		return s.Images[i].Order < s.Images[j].Order
	})
	return nil
}
