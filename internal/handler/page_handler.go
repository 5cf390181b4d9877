package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/db"
	"github.com/sitecraft/internal/serialize"
	"github.com/sitecraft/internal/service"
)

type pagePayload struct {
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	Content       string       `json:"content"`
	IsAIGenerated bool         `json:"isAIGenerated"`
	Sections      []db.Section `json:"sections"`
	IsPublished   bool         `json:"isPublished"`
	MetaTags      db.MetaTags  `json:"metaTags"`
}

func (p pagePayload) toInput() service.PageInput {
	return service.PageInput{
		Title:         p.Title,
		Slug:          p.Slug,
		Description:   p.Description,
		Content:       p.Content,
		IsAIGenerated: p.IsAIGenerated,
		Sections:      p.Sections,
		IsPublished:   p.IsPublished,
		Meta:          p.MetaTags,
	}
}

// ListPages returns pages, optionally only published ones.
func (a *API) ListPages(c *gin.Context) {
	onlyPublished := strings.EqualFold(c.Query("published"), "true")

	pages, err := a.pages.List(onlyPublished)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list pages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": serialize.Pages(pages)})
}

// GetPage returns a single page by id, published or not.
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := a.pages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": serialize.Page(page)})
}

// CreatePage creates a page, deriving the slug from the title when omitted.
func (a *API) CreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageTitleMissing):
			respondError(c, http.StatusBadRequest, "page title is required")
		case errors.Is(err, service.ErrSlugTaken):
			respondError(c, http.StatusConflict, "a page with this slug already exists")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create page")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": serialize.Page(page)})
}

// UpdatePage applies updates to an existing page.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload pagePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageNotFound):
			respondError(c, http.StatusNotFound, "page not found")
		case errors.Is(err, service.ErrPageTitleMissing):
			respondError(c, http.StatusBadRequest, "page title is required")
		case errors.Is(err, service.ErrSlugTaken):
			respondError(c, http.StatusConflict, "a page with this slug already exists")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update page")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": serialize.Page(page)})
}

// DeletePage removes a page and its sections.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.pages.Delete(id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete page")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "page deleted"})
}

// SearchPages performs a case-insensitive title substring search.
func (a *API) SearchPages(c *gin.Context) {
	results, err := a.pages.Search(c.Query("q"), 10)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
