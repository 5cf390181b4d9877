package service

import (
	"errors"
	"testing"

	"github.com/sitecraft/internal/db"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "punctuation and whitespace runs", input: "Hello, World!  Foo", expected: "hello-world-foo"},
		{name: "already clean", input: "about-us", expected: "about-us"},
		{name: "mixed case", input: "Our Team", expected: "our-team"},
		{name: "leading and trailing space", input: "  Pricing  ", expected: "pricing"},
		{name: "only punctuation", input: "!!!", expected: "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeSlug(tt.input); got != tt.expected {
				t.Fatalf("MakeSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMakeSlugDeterministic(t *testing.T) {
	first := MakeSlug("Hello, World!  Foo")
	second := MakeSlug("Hello, World!  Foo")
	if first != second {
		t.Fatalf("expected deterministic slug, got %q then %q", first, second)
	}
}

func TestCreatePageDerivesSlug(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	page, err := svc.Create(PageInput{Title: "Hello, World!  Foo"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if page.Slug != "hello-world-foo" {
		t.Fatalf("expected derived slug 'hello-world-foo', got %q", page.Slug)
	}
}

func TestCreatePageRequiresTitle(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	if _, err := svc.Create(PageInput{Title: "   "}); !errors.Is(err, ErrPageTitleMissing) {
		t.Fatalf("expected ErrPageTitleMissing, got %v", err)
	}
}

func TestCreatePageDuplicateSlug(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	first, err := svc.Create(PageInput{Title: "First", Slug: "shared"})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := svc.Create(PageInput{Title: "Second", Slug: "shared"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// 第一条记录不受影响
	kept, err := svc.Get(first.ID)
	if err != nil {
		t.Fatalf("failed to reload first page: %v", err)
	}
	if kept.Title != "First" {
		t.Fatalf("expected first page untouched, got title %q", kept.Title)
	}
}

func TestResolvePublishedOnlyReturnsPublished(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	if _, err := svc.Create(PageInput{Title: "Visible", Slug: "visible", IsPublished: true}); err != nil {
		t.Fatalf("failed to create published page: %v", err)
	}
	if _, err := svc.Create(PageInput{Title: "Hidden", Slug: "hidden"}); err != nil {
		t.Fatalf("failed to create draft page: %v", err)
	}

	page, err := svc.ResolvePublished("visible")
	if err != nil {
		t.Fatalf("ResolvePublished returned error: %v", err)
	}
	if page.Title != "Visible" {
		t.Fatalf("unexpected page title %q", page.Title)
	}
	if page.PublishedAt == nil {
		t.Fatal("expected publishedAt to be set on publish")
	}

	if _, err := svc.ResolvePublished("hidden"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound for unpublished page, got %v", err)
	}
	if _, err := svc.ResolvePublished("missing"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound for missing page, got %v", err)
	}
}

func TestSectionOrderingIsStableAscending(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	page, err := svc.Create(PageInput{
		Title:       "Landing",
		IsPublished: true,
		Sections: []db.Section{
			{Type: "cta", Order: 2},
			{Type: "hero", Order: 0, Title: "first zero"},
			{Type: "features", Order: 1},
			{Type: "testimonials", Order: 0, Title: "second zero"},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resolved, err := svc.ResolvePublished(page.Slug)
	if err != nil {
		t.Fatalf("ResolvePublished returned error: %v", err)
	}

	orders := make([]int, len(resolved.Sections))
	for i, section := range resolved.Sections {
		orders[i] = section.Order
	}
	expected := []int{0, 0, 1, 2}
	for i := range expected {
		if orders[i] != expected[i] {
			t.Fatalf("expected orders %v, got %v", expected, orders)
		}
	}

	// 相同 Order 的版块保持插入顺序
	if resolved.Sections[0].Title != "first zero" || resolved.Sections[1].Title != "second zero" {
		t.Fatalf("expected stable ordering of equal keys, got %q then %q",
			resolved.Sections[0].Title, resolved.Sections[1].Title)
	}
}

func TestSectionDefaultsApplied(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	page, err := svc.Create(PageInput{
		Title:    "Defaults",
		Sections: []db.Section{{Type: "hero"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	section := page.Sections[0]
	if section.BackgroundColor != db.DefaultSectionBackground {
		t.Fatalf("expected default background, got %q", section.BackgroundColor)
	}
	if section.TextColor != db.DefaultSectionTextColor {
		t.Fatalf("expected default text color, got %q", section.TextColor)
	}
	if section.Style != db.DefaultSectionStyle {
		t.Fatalf("expected default style, got %q", section.Style)
	}
}

func TestSearchPagesLimitsAndMatchesCaseInsensitively(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	for i := 0; i < 12; i++ {
		input := PageInput{Title: "Guide Chapter", Slug: MakeSlug("Guide Chapter") + "-" + string(rune('a'+i))}
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("failed to seed page %d: %v", i, err)
		}
	}

	results, err := svc.Search("gUiDe", 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	if results[0].Slug == "" || results[0].Title == "" {
		t.Fatal("expected summary fields to be populated")
	}
}

func TestDeletePage(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageService(db.DB, nil)
	page, err := svc.Create(PageInput{Title: "Temporary"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(page.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(page.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound on second delete, got %v", err)
	}
}

type countingInvalidator struct {
	calls int
}

func (i *countingInvalidator) ContentChanged() { i.calls++ }

func TestMutationsTriggerInvalidation(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	inv := &countingInvalidator{}
	svc := NewPageService(db.DB, inv)

	page, err := svc.Create(PageInput{Title: "Tracked"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Update(page.ID, PageInput{Title: "Tracked v2"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := svc.Delete(page.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if inv.calls != 3 {
		t.Fatalf("expected 3 invalidation calls, got %d", inv.calls)
	}
}
