package service

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/sitecraft/internal/db"
	"gorm.io/gorm"
)

// SitemapEntry 是站点地图中的一条 URL 记录，按需派生，从不落库。
type SitemapEntry struct {
	URL          string
	LastModified time.Time
	Priority     float64
}

// SitemapCounts 汇总可发布实体的数量，用于强制刷新时的诊断交叉检查。
type SitemapCounts struct {
	Pages      int64 `json:"pages"`
	Posts      int64 `json:"posts"`
	Categories int64 `json:"categories"`
}

// SitemapService derives the sitemap from the page, post and category
// collections on demand.
type SitemapService struct {
	db      *gorm.DB
	baseURL string
	now     func() time.Time
}

// NewSitemapService creates a SitemapService rooted at baseURL.
func NewSitemapService(gdb *gorm.DB, baseURL string) *SitemapService {
	return &SitemapService{db: gdb, baseURL: baseURL, now: time.Now}
}

// resolveBaseURL 优先使用后台设置中的站点地址，未设置时回退到配置值。
func (s *SitemapService) resolveBaseURL() string {
	var setting db.BlogSetting
	err := s.db.Where("key = ?", db.SettingKeySiteBaseURL).First(&setting).Error
	if err == nil {
		if value := strings.TrimRight(strings.TrimSpace(setting.Value), "/"); value != "" {
			return value
		}
	}
	return s.baseURL
}

// staticRoutes 是始终出现在站点地图中的固定路由。
var staticRoutes = []struct {
	path     string
	priority float64
}{
	{"/", 1.0},
	{"/blog", 0.8},
	{"/contact", 0.5},
}

// Entries 聚合静态路由、已发布页面、分类与已发布文章。
func (s *SitemapService) Entries() ([]SitemapEntry, error) {
	now := s.now()
	base := s.resolveBaseURL()

	entries := make([]SitemapEntry, 0, len(staticRoutes))
	for _, route := range staticRoutes {
		entries = append(entries, SitemapEntry{
			URL:          base + route.path,
			LastModified: now,
			Priority:     route.priority,
		})
	}

	var pages []db.Page
	if err := s.db.Where("is_published = ?", true).Find(&pages).Error; err != nil {
		return nil, err
	}
	for _, page := range pages {
		entries = append(entries, SitemapEntry{
			URL:          base + "/" + page.Slug,
			LastModified: page.UpdatedAt,
			Priority:     0.8,
		})
	}

	var categories []db.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	for _, category := range categories {
		entries = append(entries, SitemapEntry{
			URL:          base + "/blog/category/" + category.Slug,
			LastModified: category.UpdatedAt,
			Priority:     0.6,
		})
	}

	var posts []db.Post
	if err := s.db.Where("is_published = ?", true).Find(&posts).Error; err != nil {
		return nil, err
	}
	for _, post := range posts {
		entries = append(entries, SitemapEntry{
			URL:          base + "/blog/" + post.Slug,
			LastModified: post.UpdatedAt,
			Priority:     0.7,
		})
	}

	return entries, nil
}

// Counts 统计可发布实体数量。
func (s *SitemapService) Counts() (SitemapCounts, error) {
	var counts SitemapCounts
	if err := s.db.Model(&db.Page{}).Where("is_published = ?", true).Count(&counts.Pages).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&db.Post{}).Where("is_published = ?", true).Count(&counts.Posts).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&db.Category{}).Count(&counts.Categories).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod"`
	Priority string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// XML 渲染完整的 sitemap 文档。
func (s *SitemapService) XML() ([]byte, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return renderSitemap(entries)
}

// FallbackXML 渲染仅含站点根的最小地图，用于聚合失败时的降级输出。
func (s *SitemapService) FallbackXML() []byte {
	body, err := renderSitemap([]SitemapEntry{
		{URL: s.resolveBaseURL() + "/", LastModified: s.now(), Priority: 1.0},
	})
	if err != nil {
		// 单条静态记录的序列化不会失败
		return []byte(xml.Header)
	}
	return body
}

func renderSitemap(entries []SitemapEntry) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(entries))}
	for _, entry := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      entry.URL,
			LastMod:  entry.LastModified.UTC().Format("2006-01-02"),
			Priority: formatPriority(entry.Priority),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
