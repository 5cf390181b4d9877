package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/db"
	"github.com/sitecraft/internal/serialize"
	"github.com/sitecraft/internal/service"
)

type sliderPayload struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Width       string           `json:"width"`
	Height      string           `json:"height"`
	Interval    int              `json:"interval"`
	Images      []db.SliderImage `json:"images"`
}

func (p sliderPayload) toInput() service.SliderInput {
	return service.SliderInput{
		Name:        p.Name,
		Description: p.Description,
		Width:       p.Width,
		Height:      p.Height,
		Interval:    p.Interval,
		Images:      p.Images,
	}
}

func respondSliderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSliderNotFound):
		respondError(c, http.StatusNotFound, "slider not found")
	case errors.Is(err, service.ErrSliderNameMissing):
		respondError(c, http.StatusBadRequest, "slider name is required")
	case errors.Is(err, service.ErrSliderImageURLMissing):
		respondError(c, http.StatusBadRequest, "every slider image needs an image url")
	case errors.Is(err, service.ErrSliderIntervalInvalid):
		respondError(c, http.StatusBadRequest, "slider interval must be positive")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// ListSliders returns all sliders.
func (a *API) ListSliders(c *gin.Context) {
	sliders, err := a.sliders.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list sliders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sliders": serialize.Sliders(sliders)})
}

// GetSlider returns one slider by id.
func (a *API) GetSlider(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	slider, err := a.sliders.Get(id)
	if err != nil {
		respondSliderError(c, err, "failed to load slider")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slider": serialize.Slider(slider)})
}

// CreateSlider creates a slider.
func (a *API) CreateSlider(c *gin.Context) {
	var payload sliderPayload
	if !bindJSON(c, &payload, "invalid slider payload") {
		return
	}

	slider, err := a.sliders.Create(payload.toInput())
	if err != nil {
		respondSliderError(c, err, "failed to create slider")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slider": serialize.Slider(slider)})
}

// UpdateSlider applies updates to an existing slider.
func (a *API) UpdateSlider(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload sliderPayload
	if !bindJSON(c, &payload, "invalid slider payload") {
		return
	}

	slider, err := a.sliders.Update(id, payload.toInput())
	if err != nil {
		respondSliderError(c, err, "failed to update slider")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slider": serialize.Slider(slider)})
}

// DeleteSlider removes a slider.
func (a *API) DeleteSlider(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.sliders.Delete(id); err != nil {
		respondSliderError(c, err, "failed to delete slider")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slider deleted"})
}
