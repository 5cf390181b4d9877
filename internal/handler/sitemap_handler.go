package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sitemapContentType = "application/xml; charset=utf-8"

// Sitemap serves /sitemap.xml. The rendered document is cached until the
// invalidation coordinator drops it; aggregation failures degrade to a
// single-root document instead of failing the route.
func (a *API) Sitemap(c *gin.Context) {
	if cached, ok := a.cache.Get("/sitemap.xml"); ok {
		c.Data(http.StatusOK, cached.ContentType, cached.Body)
		return
	}

	body, err := a.sitemap.XML()
	if err != nil {
		log.Printf("sitemap generation failed, serving fallback: %v", err)
		c.Data(http.StatusOK, sitemapContentType, a.sitemap.FallbackXML())
		return
	}

	a.cache.Set("/sitemap.xml", body, sitemapContentType)
	c.Data(http.StatusOK, sitemapContentType, body)
}

// ForceSitemapUpdate recomputes publishable entity counts as a diagnostic
// cross-check and drops the cached sitemap.
func (a *API) ForceSitemapUpdate(c *gin.Context) {
	a.cache.Drop("/sitemap.xml")

	counts, err := a.sitemap.Counts()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to count entities")
		return
	}

	c.JSON(http.StatusOK, counts)
}
