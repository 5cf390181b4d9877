package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

var (
	initMu   sync.Mutex
	initDone bool
)

// Init 初始化数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 sitecraft.db。
// 并发冷启动时只会建立一个连接，重复调用是幂等的。
func Init(databasePath string) error {
	initMu.Lock()
	defer initMu.Unlock()

	if initDone {
		return nil
	}

	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "sitecraft.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// 唯一索引冲突需要翻译成 gorm.ErrDuplicatedKey，供 slug 去重使用
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// 自动迁移模式，为核心模型创建表
	if err := gdb.AutoMigrate(
		&User{},
		&Page{},
		&Post{},
		&Category{},
		&Slider{},
		&ContactMessage{},
		&BlogSetting{},
	); err != nil {
		return err
	}

	DB = gdb
	initDone = true
	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
