package logic

import (
	"fmt"
	"net/http"
)

// Error 业务错误，携带HTTP状态码
// handler 层据此生成统一的 {message, error} 响应，其他错误一律按500处理。
type Error struct {
	Status  int
	Message string      // 概要
	Detail  interface{} // 具体原因（字段校验信息等）
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Detail)
}

// NewError 创建业务错误
func NewError(status int, message string, detail interface{}) *Error {
	return &Error{Status: status, Message: message, Detail: detail}
}

// ErrValidation 参数校验失败
func ErrValidation(detail interface{}) *Error {
	return NewError(http.StatusUnprocessableEntity, "Validation failed", detail)
}

// ErrInvalidCredentials 凭证错误
func ErrInvalidCredentials() *Error {
	return NewError(http.StatusUnauthorized, "Invalid credentials", "The provided credentials are incorrect.")
}

// ErrForbidden 角色不符
func ErrForbidden(detail string) *Error {
	return NewError(http.StatusForbidden, "Unauthorized", detail)
}

// ErrNotFound 记录不存在
func ErrNotFound(message, detail string) *Error {
	return NewError(http.StatusNotFound, message, detail)
}

// ErrInvalidOperation 非法状态转换或操作窗口已关闭
func ErrInvalidOperation(status int, detail string) *Error {
	return NewError(status, "Invalid operation", detail)
}
