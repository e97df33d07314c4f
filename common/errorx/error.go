package errorx

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/grpc/status"
)

// BizError 业务错误，实现 error 接口
type BizError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e *BizError) Error() string {
	return fmt.Sprintf("BizError: code=%d, message=%s", e.Code, e.Message)
}

// GetCode 获取错误码
func (e *BizError) GetCode() int {
	return e.Code
}

// GetMessage 获取错误消息
func (e *BizError) GetMessage() string {
	return e.Message
}

// New 创建业务错误（使用默认消息）
func New(code int) *BizError {
	return &BizError{
		Code:    code,
		Message: GetMessage(code),
	}
}

// NewWithMessage 创建业务错误（自定义消息）
func NewWithMessage(code int, message string) *BizError {
	return &BizError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误，添加上下文信息
func Wrap(code int, err error) *BizError {
	if err == nil {
		return New(code)
	}
	return &BizError{
		Code:    code,
		Message: fmt.Sprintf("%s: %v", GetMessage(code), err),
	}
}

// Is 判断是否为特定错误码
func Is(err error, code int) bool {
	if err == nil {
		return false
	}
	if bizErr, ok := err.(*BizError); ok {
		return bizErr.Code == code
	}
	return false
}

// FromError 从 error 转换为 BizError
// 支持以下错误类型：
//  1. *BizError：直接返回
//  2. gRPC Status：从 RPC 返回的错误，解析 message 中的业务错误
//  3. 其他错误：返回内部错误（隐藏细节）
func FromError(err error) *BizError {
	if err == nil {
		return nil
	}

	// 获取原始错误（支持 errors.Wrap 包装的错误）
	causeErr := errors.Cause(err)

	// 1. 检查是否是本地 BizError
	if bizErr, ok := causeErr.(*BizError); ok {
		return bizErr
	}

	// 2. 检查是否是 gRPC Status（从 RPC 返回的错误）
	if gstatus, ok := status.FromError(causeErr); ok {
		message := gstatus.Message()
		grpcCode := int(gstatus.Code())

		// 尝试从 message 中解析业务错误码
		// 格式可能是 "BizError: code=5001, message=不支持的搜索类型"
		// 或者直接是业务消息
		var bizCode int

		n, _ := fmt.Sscanf(message, "BizError: code=%d, message=", &bizCode)
		if n == 1 && IsValidCode(bizCode) {
			prefix := fmt.Sprintf("BizError: code=%d, message=", bizCode)
			bizMsg := GetMessage(bizCode)
			if len(message) > len(prefix) {
				bizMsg = message[len(prefix):]
			}
			return &BizError{
				Code:    bizCode,
				Message: bizMsg,
			}
		}

		// 如果 gRPC code 本身是业务错误码
		if IsValidCode(grpcCode) {
			return &BizError{
				Code:    grpcCode,
				Message: message,
			}
		}
	}

	// 3. 其他错误：返回内部错误，不暴露细节
	return &BizError{
		Code:    CodeInternalError,
		Message: "内部服务器错误",
	}
}

// ============ 常用错误快捷方法 ============

// ErrInternalError 内部错误
func ErrInternalError() *BizError {
	return New(CodeInternalError)
}

// ErrInvalidParams 参数错误
func ErrInvalidParams(msg string) *BizError {
	if msg == "" {
		return New(CodeInvalidParams)
	}
	return NewWithMessage(CodeInvalidParams, msg)
}

// ErrUnauthorized 未授权
func ErrUnauthorized() *BizError {
	return New(CodeUnauthorized)
}

// ErrInvalidToken Token无效
func ErrInvalidToken() *BizError {
	return New(CodeTokenInvalid)
}

// ErrForbidden 禁止访问
func ErrForbidden() *BizError {
	return New(CodeForbidden)
}

// ErrNotFound 资源不存在
func ErrNotFound() *BizError {
	return New(CodeNotFound)
}

// ErrTooManyRequests 请求过于频繁
func ErrTooManyRequests() *BizError {
	return New(CodeTooManyRequests)
}

// ErrDBError 数据库错误
func ErrDBError(err error) *BizError {
	return Wrap(CodeDBError, err)
}

// ErrCacheError 缓存错误
func ErrCacheError(err error) *BizError {
	return Wrap(CodeCacheError, err)
}

// ============ 搜索服务相关错误 ============

// ErrSearchTypeInvalid 未知的搜索实体类型
func ErrSearchTypeInvalid(t string) *BizError {
	if t == "" {
		return New(CodeSearchTypeInvalid)
	}
	return NewWithMessage(CodeSearchTypeInvalid, fmt.Sprintf("不支持的搜索类型: %s", t))
}

// ErrSearchQueryTooShort 搜索关键词过短
func ErrSearchQueryTooShort() *BizError {
	return New(CodeSearchQueryTooShort)
}

// ErrSearchTimeout 搜索执行超时
func ErrSearchTimeout() *BizError {
	return New(CodeSearchTimeout)
}

// ErrHistoryNotFound 搜索历史不存在
func ErrHistoryNotFound() *BizError {
	return New(CodeHistoryNotFound)
}
