package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/config"
	"github.com/sitecraft/internal/db"
	"github.com/sitecraft/internal/handler"
)

// Setup 配置 Gin 引擎和路由
func Setup(cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("sitecraft_session", store))

	api := handler.NewAPI(db.DB, cfg)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 公开路由
	r.GET("/", api.ShowHome)
	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/:slug", api.ShowPage)

	// 公开 API
	r.GET("/api/pages", api.ListPages)
	r.GET("/api/pages/search", api.SearchPages)
	r.GET("/api/posts", api.ListPosts)
	r.GET("/api/categories", api.ListCategories)
	r.GET("/api/sitemap/force-update", api.ForceSitemapUpdate)
	r.POST("/api/contact", api.SubmitContact)

	// 后台账号
	r.GET("/api/admin/check", api.CheckAdmin)
	r.POST("/api/admin/setup", api.SetupAdmin)
	r.POST("/api/admin/login", api.Login)
	r.POST("/api/admin/logout", api.Logout)

	// 需要管理员权限的写路由
	admin := r.Group("/api")
	admin.Use(handler.AuthRequired(), handler.AdminRequired())
	{
		admin.GET("/pages/:id", api.GetPage)
		admin.POST("/pages", api.CreatePage)
		admin.PUT("/pages/:id", api.UpdatePage)
		admin.DELETE("/pages/:id", api.DeletePage)

		admin.GET("/sliders", api.ListSliders)
		admin.POST("/sliders", api.CreateSlider)
		admin.GET("/sliders/:id", api.GetSlider)
		admin.PUT("/sliders/:id", api.UpdateSlider)
		admin.DELETE("/sliders/:id", api.DeleteSlider)
	}

	return r
}
