package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/config"
	"github.com/sitecraft/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*API, func()) {
	return setupTestDBWithConfig(t, config.AppConfig{SessionSecret: "test-secret"})
}

func setupTestDBWithConfig(t *testing.T, cfg config.AppConfig) (*API, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.User{},
		&db.Page{},
		&db.Post{},
		&db.Category{},
		&db.Slider{},
		&db.ContactMessage{},
		&db.BlogSetting{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	api := NewAPI(gdb, cfg)
	// 测试中不等待缓存重建落定
	api.Invalidator().SetSettleDelay(0)

	return api, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
