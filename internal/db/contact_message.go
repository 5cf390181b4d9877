package db

import "gorm.io/gorm"

// ContactMessage 保存联系表单提交的留言，邮件发送失败时仍有落库记录可查
type ContactMessage struct {
	gorm.Model
	Reference string `gorm:"size:36;uniqueIndex;not null"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:255;not null"`
	Message   string `gorm:"type:text;not null"`
	Delivered bool   `gorm:"default:false"`
}
