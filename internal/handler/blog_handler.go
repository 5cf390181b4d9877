package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/serialize"
)

// ListPosts returns posts, optionally only published ones.
func (a *API) ListPosts(c *gin.Context) {
	onlyPublished := strings.EqualFold(c.Query("published"), "true")

	posts, err := a.blog.ListPosts(onlyPublished)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	out := make([]map[string]any, 0, len(posts))
	for _, post := range posts {
		entry := map[string]any{
			"id":          serialize.Identifier(post.ID),
			"title":       post.Title,
			"slug":        post.Slug,
			"summary":     post.Summary,
			"isPublished": post.IsPublished,
			"createdAt":   serialize.Timestamp(post.CreatedAt),
			"updatedAt":   serialize.Timestamp(post.UpdatedAt),
		}
		if post.PublishedAt != nil {
			entry["publishedAt"] = serialize.Timestamp(*post.PublishedAt)
		}
		if post.Category != nil {
			entry["category"] = map[string]any{
				"id":   serialize.Identifier(post.Category.ID),
				"name": post.Category.Name,
				"slug": post.Category.Slug,
			}
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// ListCategories returns all categories.
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.blog.ListCategories()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}

	out := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		out = append(out, map[string]any{
			"id":          serialize.Identifier(category.ID),
			"name":        category.Name,
			"slug":        category.Slug,
			"description": category.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}
