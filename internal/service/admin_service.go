package service

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sitecraft/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminExists        = errors.New("an admin account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AdminSetupInput 是首个管理员的初始化信息。
type AdminSetupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate 校验姓名、邮箱与密码强度。
func (i AdminSetupInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(3, 100)),
		validation.Field(&i.Email, validation.Required, is.Email),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 0)),
	)
}

// AdminService 管理后台账号的初始化与登录。
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates an AdminService instance.
func NewAdminService(gdb *gorm.DB) *AdminService {
	return &AdminService{db: gdb}
}

// HasAdmin reports whether any admin account exists.
func (s *AdminService) HasAdmin() (bool, error) {
	var count int64
	err := s.db.Model(&db.User{}).Where("role = ?", db.RoleAdmin).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Setup bootstraps the first admin account. It fails once an admin exists.
func (s *AdminService) Setup(input AdminSetupInput) (*db.User, error) {
	trimmed := AdminSetupInput{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	}
	if err := trimmed.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.HasAdmin()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmed.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Name:     trimmed.Name,
		Email:    trimmed.Email,
		Password: string(hashed),
		Role:     db.RoleAdmin,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login 按邮箱查找用户并校验密码。
func (s *AdminService) Login(email, password string) (*db.User, error) {
	var user db.User
	err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
