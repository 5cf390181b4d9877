package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/db"
)

func getJSON(t *testing.T, handler gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	handler(c)
	return w
}

func TestListPostsPublishedFilter(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	category := db.Category{Name: "Engineering", Slug: "engineering"}
	if err := api.DB().Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	now := time.Now()
	posts := []db.Post{
		{Title: "Published Post", Slug: "published-post", IsPublished: true, PublishedAt: &now, CategoryID: &category.ID},
		{Title: "Draft Post", Slug: "draft-post"},
	}
	for i := range posts {
		if err := api.DB().Create(&posts[i]).Error; err != nil {
			t.Fatalf("failed to create post: %v", err)
		}
	}

	w := getJSON(t, api.ListPosts, "/api/posts?published=true")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Posts []map[string]any `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Posts) != 1 {
		t.Fatalf("expected 1 published post, got %d", len(resp.Posts))
	}

	entry := resp.Posts[0]
	if entry["slug"] != "published-post" {
		t.Fatalf("unexpected slug %v", entry["slug"])
	}
	if _, ok := entry["id"].(string); !ok {
		t.Fatalf("expected string id, got %T", entry["id"])
	}
	cat, ok := entry["category"].(map[string]any)
	if !ok {
		t.Fatalf("expected category object, got %T", entry["category"])
	}
	if cat["slug"] != "engineering" {
		t.Fatalf("unexpected category slug %v", cat["slug"])
	}

	w = getJSON(t, api.ListPosts, "/api/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Posts) != 2 {
		t.Fatalf("expected 2 posts without filter, got %d", len(resp.Posts))
	}
}

func TestListCategoriesOrderedByName(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	for _, c := range []db.Category{
		{Name: "Zulu", Slug: "zulu"},
		{Name: "Alpha", Slug: "alpha"},
	} {
		cat := c
		if err := api.DB().Create(&cat).Error; err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	w := getJSON(t, api.ListCategories, "/api/categories")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Categories []map[string]any `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(resp.Categories))
	}
	if resp.Categories[0]["name"] != "Alpha" || resp.Categories[1]["name"] != "Zulu" {
		t.Fatalf("expected categories sorted by name, got %v", resp.Categories)
	}
}
