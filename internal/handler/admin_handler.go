package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/db"
	"github.com/sitecraft/internal/service"
)

// 会话键
const (
	sessionKeyUserID = "user_id"
	sessionKeyRole   = "role"
	sessionKeyEmail  = "email"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 处理后台登录请求并建立会话
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "invalid login payload") {
		return
	}

	user, err := a.admins.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyRole, user.Role)
	session.Set(sessionKeyEmail, user.Email)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "logged in",
		"user":    gin.H{"name": user.Name, "email": user.Email, "role": user.Role},
	})
}

// Logout 清空会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CheckAdmin reports whether an admin account has been bootstrapped.
func (a *API) CheckAdmin(c *gin.Context) {
	exists, err := a.admins.HasAdmin()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to check admin state")
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasAdmin": exists})
}

// SetupAdmin bootstraps the first admin account.
func (a *API) SetupAdmin(c *gin.Context) {
	var payload service.AdminSetupInput
	if !bindJSON(c, &payload, "invalid setup payload") {
		return
	}

	user, err := a.admins.Setup(payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminExists):
			respondError(c, http.StatusBadRequest, "an admin account already exists")
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to create admin")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "admin created",
		"user":    gin.H{"name": user.Name, "email": user.Email, "role": user.Role},
	})
}

// AuthRequired rejects requests that carry no authenticated session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionKeyUserID) == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired rejects authenticated sessions whose role is not admin.
// 每次请求都重新判定，不缓存授权结果。
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		role, _ := session.Get(sessionKeyRole).(string)
		if role != db.RoleAdmin {
			respondError(c, http.StatusForbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
