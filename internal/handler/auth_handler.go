package handler

import (
	"net/http"

	"github.com/blues/afs/internal/config"
	"github.com/blues/afs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 注册认证处理器
type AuthHandler struct {
	authLogic *logic.AuthLogic
}

// NewAuthHandler 创建注册认证处理器
func NewAuthHandler(db *gorm.DB, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authLogic: logic.NewAuthLogic(db, cfg),
	}
}

// AuthLogic 暴露给路由装配认证中间件
func (h *AuthHandler) AuthLogic() *logic.AuthLogic {
	return h.authLogic
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Role     string `json:"role" binding:"required,oneof=farmer investor"`
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}

	user, token, err := h.authLogic.Register(logic.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		FailResponse(c, err, "Registration failed")
		return
	}

	SuccessResponse(c, http.StatusCreated, "Registration successful", AuthPayload{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: h.authLogic.TokenTTLMinutes(),
	})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}

	user, token, err := h.authLogic.Login(req.Email, req.Password)
	if err != nil {
		FailResponse(c, err, "Login failed")
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", AuthPayload{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: h.authLogic.TokenTTLMinutes(),
	})
}

// Logout 登出，只撤销当前令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	token := CurrentToken(c)
	if token == nil {
		abortUnauthenticated(c)
		return
	}

	if err := h.authLogic.Logout(token); err != nil {
		FailResponse(c, err, "Logout failed")
		return
	}

	SuccessResponse(c, http.StatusOK, "Logged out successfully", gin.H{
		"info": "Your session has been terminated.",
	})
}

// Me 当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "User profile retrieved", CurrentUser(c))
}
