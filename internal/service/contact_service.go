package service

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/sitecraft/internal/db"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

var (
	ErrMailNotConfigured = errors.New("mail delivery is not configured")
	ErrMailDelivery      = errors.New("mail delivery failed")
)

// MailSender 抽象 SMTP 投递，gomail.Dialer 实现了它。
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailConfig 描述投递联系表单所需的 SMTP 配置。
type MailConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	Recipient string
}

// Complete 判断配置是否齐全。
func (c MailConfig) Complete() bool {
	return c.Host != "" && c.Port > 0 && c.User != "" &&
		c.Password != "" && c.Recipient != ""
}

// ContactInput 是联系表单的提交内容。
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate 校验所有字段均已填写且邮箱格式合法。
func (i ContactInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required),
		validation.Field(&i.Email, validation.Required, is.Email),
		validation.Field(&i.Subject, validation.Required),
		validation.Field(&i.Message, validation.Required),
	)
}

// ContactService 落库并投递联系表单留言。
type ContactService struct {
	db     *gorm.DB
	mail   MailConfig
	sender MailSender
}

// NewContactService creates a ContactService. When mail is configured a
// gomail dialer is installed; tests may swap it via SetSender.
func NewContactService(gdb *gorm.DB, mail MailConfig) *ContactService {
	svc := &ContactService{db: gdb, mail: mail}
	if mail.Complete() {
		svc.sender = gomail.NewDialer(mail.Host, mail.Port, mail.User, mail.Password)
	}
	return svc
}

// SetSender 替换投递实现，便于测试。
func (s *ContactService) SetSender(sender MailSender) {
	s.sender = sender
}

// Submit validates the input, records the message and delivers it over SMTP.
// The stored record keeps a reference id so undelivered messages remain
// traceable.
func (s *ContactService) Submit(input ContactInput) (*db.ContactMessage, error) {
	trimmed := ContactInput{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if err := trimmed.Validate(); err != nil {
		return nil, err
	}

	if !s.mail.Complete() || s.sender == nil {
		return nil, ErrMailNotConfigured
	}

	record := db.ContactMessage{
		Reference: uuid.NewString(),
		Name:      trimmed.Name,
		Email:     trimmed.Email,
		Subject:   trimmed.Subject,
		Message:   trimmed.Message,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.mail.User)
	msg.SetHeader("To", s.mail.Recipient)
	msg.SetHeader("Reply-To", trimmed.Email)
	msg.SetHeader("Subject", fmt.Sprintf("[contact] %s", trimmed.Subject))
	msg.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\nRef: %s\n\n%s",
		trimmed.Name, trimmed.Email, record.Reference, trimmed.Message))

	if err := s.sender.DialAndSend(msg); err != nil {
		return &record, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	record.Delivered = true
	if err := s.db.Save(&record).Error; err != nil {
		return &record, err
	}

	return &record, nil
}
