package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sitecraft/internal/db"
	"github.com/sitecraft/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const htmlContentType = "text/html; charset=utf-8"

// pageView 是公开页面模板的数据。头部元信息在此一次性计算，
// 渲染后不再被任何写入方修改。
type pageView struct {
	Title         string
	Description   string
	Keywords      string
	OGTitle       string
	OGDescription string
	OGImage       string
	Content       template.HTML
	Sections      []sectionView
}

type sectionView struct {
	Type            string
	Title           string
	Subtitle        string
	Content         string
	ImageURL        string
	ButtonText      string
	ButtonLink      string
	BackgroundColor string
	TextColor       string
	Style           string
	Images          []string
	Items           []db.SectionItem
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{if .Description}}<meta name="description" content="{{.Description}}">{{end}}
{{if .Keywords}}<meta name="keywords" content="{{.Keywords}}">{{end}}
{{if .OGTitle}}<meta property="og:title" content="{{.OGTitle}}">{{end}}
{{if .OGDescription}}<meta property="og:description" content="{{.OGDescription}}">{{end}}
{{if .OGImage}}<meta property="og:image" content="{{.OGImage}}">{{end}}
</head>
<body>
<main>
{{range .Sections}}<section class="section section-{{.Type}} style-{{.Style}}" style="background-color:{{.BackgroundColor}};color:{{.TextColor}}">
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
{{if .Subtitle}}<h3>{{.Subtitle}}</h3>{{end}}
{{if .Content}}<p>{{.Content}}</p>{{end}}
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
{{range .Images}}<img src="{{.}}" alt="">
{{end}}{{if .Items}}<div class="items">
{{range .Items}}<article class="item">
{{if .Icon}}<span class="icon">{{.Icon}}</span>{{end}}
{{if .Title}}<h4>{{.Title}}</h4>{{end}}
{{if .Subtitle}}<h5>{{.Subtitle}}</h5>{{end}}
{{if .Content}}<p>{{.Content}}</p>{{end}}
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
{{if .ButtonText}}<a href="{{.ButtonLink}}">{{.ButtonText}}</a>{{end}}
</article>
{{end}}</div>
{{end}}{{if .ButtonText}}<a class="button" href="{{.ButtonLink}}">{{.ButtonText}}</a>{{end}}
</section>
{{end}}{{if .Content}}<article class="page-content">{{.Content}}</article>{{end}}
</main>
</body>
</html>
`))

var notFoundTemplate = template.Must(template.New("404").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Page Not Found</title></head>
<body><main><h1>404</h1><p>The page you are looking for does not exist.</p></main></body>
</html>
`))

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<main>
<h1>{{.Title}}</h1>
<ul>
{{range .Pages}}<li><a href="/{{.Slug}}">{{.Title}}</a></li>
{{end}}</ul>
</main>
</body>
</html>
`))

// ShowPage renders a published page by slug. Unpublished or missing slugs
// both render the 404 page.
func (a *API) ShowPage(c *gin.Context) {
	slug := c.Param("slug")

	page, err := a.pages.ResolvePublished(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c)
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}

	body, err := renderPage(page)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, htmlContentType, body)
}

// ShowHome renders the site root: the published page with slug "home" when
// one exists, otherwise an index of published pages. Output is cached until
// the next content mutation.
func (a *API) ShowHome(c *gin.Context) {
	if cached, ok := a.cache.Get("/"); ok {
		c.Data(http.StatusOK, cached.ContentType, cached.Body)
		return
	}

	if page, err := a.pages.ResolvePublished("home"); err == nil {
		body, renderErr := renderPage(page)
		if renderErr == nil {
			a.cache.Set("/", body, htmlContentType)
			c.Data(http.StatusOK, htmlContentType, body)
			return
		}
	}

	pages, err := a.pages.List(true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load pages")
		return
	}

	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, gin.H{"Title": "Home", "Pages": pages}); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render home")
		return
	}

	a.cache.Set("/", buf.Bytes(), htmlContentType)
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func (a *API) renderNotFound(c *gin.Context) {
	var buf bytes.Buffer
	notFoundTemplate.Execute(&buf, nil)
	c.Data(http.StatusNotFound, htmlContentType, buf.Bytes())
}

func renderPage(page *db.Page) ([]byte, error) {
	view := pageView{
		Title:         page.Title,
		Description:   page.Description,
		Keywords:      page.Meta.Keywords,
		OGTitle:       page.Meta.OGTitle,
		OGDescription: page.Meta.OGDescription,
		OGImage:       page.Meta.OGImage,
		Content:       renderMarkdown(page.Content),
	}
	if view.OGTitle == "" {
		view.OGTitle = page.Title
	}
	if view.OGDescription == "" {
		view.OGDescription = page.Description
	}

	for _, section := range page.Sections {
		view.Sections = append(view.Sections, sectionView{
			Type:            section.Type,
			Title:           section.Title,
			Subtitle:        section.Subtitle,
			Content:         section.Content,
			ImageURL:        section.ImageURL,
			ButtonText:      section.ButtonText,
			ButtonLink:      section.ButtonLink,
			BackgroundColor: section.BackgroundColor,
			TextColor:       section.TextColor,
			Style:           section.Style,
			Images:          section.Images,
			Items:           section.Items,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderMarkdown(source string) template.HTML {
	if source == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
