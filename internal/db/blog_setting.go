package db

import "gorm.io/gorm"

// BlogSetting 存储后台可配置的站点级键值对。
type BlogSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (BlogSetting) TableName() string {
	return "blog_settings"
}

const (
	// SettingKeySiteName 表示站点名称。
	SettingKeySiteName = "site_name"
	// SettingKeySiteDescription 表示站点描述。
	SettingKeySiteDescription = "site_description"
	// SettingKeySiteBaseURL 表示站点对外的基础地址。
	SettingKeySiteBaseURL = "site_base_url"
)
