package service

import (
	"errors"
	"testing"

	"github.com/sitecraft/internal/db"
)

func TestCreateSliderAppliesDefaults(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewSliderService(db.DB, nil)
	slider, err := svc.Create(SliderInput{
		Name:   "Homepage",
		Images: []db.SliderImage{{ImageURL: "https://example.com/a.jpg"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if slider.Width != db.DefaultSliderWidth {
		t.Fatalf("expected default width, got %q", slider.Width)
	}
	if slider.Height != db.DefaultSliderHeight {
		t.Fatalf("expected default height, got %q", slider.Height)
	}
	if slider.Interval != db.DefaultSliderInterval {
		t.Fatalf("expected default interval, got %d", slider.Interval)
	}
}

func TestCreateSliderValidation(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewSliderService(db.DB, nil)

	if _, err := svc.Create(SliderInput{Name: " "}); !errors.Is(err, ErrSliderNameMissing) {
		t.Fatalf("expected ErrSliderNameMissing, got %v", err)
	}

	_, err := svc.Create(SliderInput{
		Name:   "Broken",
		Images: []db.SliderImage{{Title: "no url"}},
	})
	if !errors.Is(err, ErrSliderImageURLMissing) {
		t.Fatalf("expected ErrSliderImageURLMissing, got %v", err)
	}

	if _, err := svc.Create(SliderInput{Name: "Negative", Interval: -1}); !errors.Is(err, ErrSliderIntervalInvalid) {
		t.Fatalf("expected ErrSliderIntervalInvalid, got %v", err)
	}
}

func TestSliderImagesSortedByOrder(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewSliderService(db.DB, nil)
	slider, err := svc.Create(SliderInput{
		Name: "Ordered",
		Images: []db.SliderImage{
			{ImageURL: "https://example.com/c.jpg", Order: 2},
			{ImageURL: "https://example.com/a.jpg", Order: 0},
			{ImageURL: "https://example.com/b.jpg", Order: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	reloaded, err := svc.Get(slider.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	for i, img := range reloaded.Images {
		if img.Order != i {
			t.Fatalf("expected image %d to have order %d, got %d", i, i, img.Order)
		}
	}
}

func TestUpdateAndDeleteSlider(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewSliderService(db.DB, nil)
	slider, err := svc.Create(SliderInput{Name: "Original"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(slider.ID, SliderInput{Name: "Renamed", Interval: 3000})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Renamed" || updated.Interval != 3000 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := svc.Delete(slider.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(slider.ID); !errors.Is(err, ErrSliderNotFound) {
		t.Fatalf("expected ErrSliderNotFound after delete, got %v", err)
	}
	if err := svc.Delete(slider.ID); !errors.Is(err, ErrSliderNotFound) {
		t.Fatalf("expected ErrSliderNotFound on second delete, got %v", err)
	}
}
