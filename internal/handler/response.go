package handler

import (
	"errors"
	"net/http"

	"github.com/blues/afs/internal/logger"
	"github.com/blues/afs/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应 {message, data}
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"data":    data,
	})
}

// ErrorResponse 错误响应 {message, error}
func ErrorResponse(c *gin.Context, statusCode int, message string, detail interface{}) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"error":   detail,
	})
}

// FailResponse 业务错误走自身状态码，其余一律兜底500
// 意外错误的细节只进日志，不回给调用方。
func FailResponse(c *gin.Context, err error, fallbackMessage string) {
	var appErr *logic.Error
	if errors.As(err, &appErr) {
		ErrorResponse(c, appErr.Status, appErr.Message, appErr.Detail)
		return
	}

	logger.Error("%s: %v", fallbackMessage, err)
	ErrorResponse(c, http.StatusInternalServerError, fallbackMessage, "Unexpected server error. Please try again.")
}
