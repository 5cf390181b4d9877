package service

import (
	"errors"
	"strings"

	"github.com/sitecraft/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSliderNotFound        = errors.New("slider not found")
	ErrSliderNameMissing     = errors.New("slider name is required")
	ErrSliderImageURLMissing = errors.New("slider image url is required")
	ErrSliderIntervalInvalid = errors.New("slider interval must be positive")
)

// SliderService handles slider CRUD.
type SliderService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// SliderInput represents fields accepted when creating or updating a slider.
type SliderInput struct {
	Name        string
	Description string
	Width       string
	Height      string
	Interval    int
	Images      []db.SliderImage
}

// NewSliderService creates a SliderService instance.
func NewSliderService(gdb *gorm.DB, invalidator Invalidator) *SliderService {
	return &SliderService{db: gdb, invalidator: invalidator}
}

// List returns all sliders ordered by created time descending.
func (s *SliderService) List() ([]db.Slider, error) {
	var sliders []db.Slider
	if err := s.db.Order("created_at desc").Find(&sliders).Error; err != nil {
		return nil, err
	}
	return sliders, nil
}

// Get fetches a slider by id.
func (s *SliderService) Get(id uint) (*db.Slider, error) {
	var slider db.Slider
	if err := s.db.First(&slider, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSliderNotFound
		}
		return nil, err
	}
	return &slider, nil
}

// Create persists a slider after validating its images.
func (s *SliderService) Create(input SliderInput) (*db.Slider, error) {
	slider, err := buildSlider(input)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(slider).Error; err != nil {
		return nil, err
	}

	s.contentChanged()
	return slider, nil
}

// Update applies updates to an existing slider.
func (s *SliderService) Update(id uint, input SliderInput) (*db.Slider, error) {
	var existing db.Slider
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSliderNotFound
		}
		return nil, err
	}

	updated, err := buildSlider(input)
	if err != nil {
		return nil, err
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Width = updated.Width
	existing.Height = updated.Height
	existing.Interval = updated.Interval
	existing.Images = updated.Images

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}

	s.contentChanged()
	return &existing, nil
}

// Delete removes a slider and its image list.
func (s *SliderService) Delete(id uint) error {
	result := s.db.Delete(&db.Slider{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSliderNotFound
	}

	s.contentChanged()
	return nil
}

func (s *SliderService) contentChanged() {
	if s.invalidator != nil {
		s.invalidator.ContentChanged()
	}
}

func buildSlider(input SliderInput) (*db.Slider, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSliderNameMissing
	}
	if input.Interval < 0 {
		return nil, ErrSliderIntervalInvalid
	}

	images := make([]db.SliderImage, 0, len(input.Images))
	for _, img := range input.Images {
		if strings.TrimSpace(img.ImageURL) == "" {
			return nil, ErrSliderImageURLMissing
		}
		images = append(images, img)
	}

	return &db.Slider{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Width:       strings.TrimSpace(input.Width),
		Height:      strings.TrimSpace(input.Height),
		Interval:    input.Interval,
		Images:      images,
	}, nil
}
