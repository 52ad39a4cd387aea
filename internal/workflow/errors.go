package workflow

import "errors"

// ErrorKind 审核流错误分类
// 边界层按分类映射 HTTP 状态码,引擎内部不关心 HTTP
type ErrorKind int

const (
	ErrNotFound   ErrorKind = iota + 1 // 记录不存在
	ErrForbidden                       // 角色或归属校验失败
	ErrConflict                        // 在非待审核状态上尝试流转
	ErrValidation                      // 缺少必填字段
	ErrDependency                      // 持久化或通知依赖不可用
)

// Error 带分类的审核流错误
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound 记录不存在
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Forbidden 角色或归属校验失败
func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Conflict 记录已完结,流转被拒绝
func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Invalid 请求缺少必填字段
func Invalid(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// Dependency 依赖不可用,调用方可安全重试
func Dependency(message string, err error) *Error {
	return &Error{Kind: ErrDependency, Message: message, Err: err}
}

// KindOf 提取错误分类,非审核流错误返回 0
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound 判断是否为记录不存在错误
func IsNotFound(err error) bool { return KindOf(err) == ErrNotFound }

// IsForbidden 判断是否为权限错误
func IsForbidden(err error) bool { return KindOf(err) == ErrForbidden }

// IsConflict 判断是否为状态冲突错误
func IsConflict(err error) bool { return KindOf(err) == ErrConflict }

// IsValidation 判断是否为参数校验错误
func IsValidation(err error) bool { return KindOf(err) == ErrValidation }

// IsDependency 判断是否为依赖不可用错误
func IsDependency(err error) bool { return KindOf(err) == ErrDependency }
