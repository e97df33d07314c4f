/**
 * @projectName: community-platform
 * @package: errorx
 * @className: codes
 * @description: 统一错误码定义
 * @version: 1.0
 */

package errorx

// 错误码规范：
// 0       - 成功
// 1xxx    - 通用错误
// 2xxx    - 用户认证错误
// 5xxx    - 搜索服务错误

const (
	CodeSuccess            = 0    // 成功
	CodeInternalError      = 1000 // 内部服务器错误
	CodeInvalidParams      = 1001 // 参数校验失败
	CodeUnauthorized       = 1002 // 未授权访问
	CodeForbidden          = 1003 // 禁止访问
	CodeNotFound           = 1004 // 资源不存在
	CodeTooManyRequests    = 1005 // 请求过于频繁
	CodeServiceUnavailable = 1006 // 服务暂不可用
	CodeTimeout            = 1007 // 请求超时
	CodeDBError            = 1008 // 数据库错误
	CodeCacheError         = 1009 // 缓存错误

	// 认证 2001-2010
	CodeLoginRequired = 2001 // 需要登录
	CodeTokenInvalid  = 2002 // Token无效
	CodeTokenExpired  = 2003 // Token已过期

	// 搜索服务 5001-5020
	CodeSearchTypeInvalid   = 5001 // 未知的搜索实体类型
	CodeSearchQueryTooShort = 5002 // 搜索关键词过短
	CodeSearchTimeout       = 5003 // 搜索执行超时
	CodeSearchPartialFail   = 5004 // 部分类型搜索失败
	CodeHistoryNotFound     = 5005 // 搜索历史不存在
)

// codeMessages 错误码对应的默认消息
var codeMessages = map[int]string{
	CodeSuccess:             "success",
	CodeInternalError:       "内部服务器错误",
	CodeInvalidParams:       "参数校验失败",
	CodeUnauthorized:        "未授权访问",
	CodeForbidden:           "禁止访问",
	CodeNotFound:            "资源不存在",
	CodeTooManyRequests:     "请求过于频繁，请稍后再试",
	CodeServiceUnavailable:  "服务暂不可用",
	CodeTimeout:             "请求超时",
	CodeDBError:             "数据库错误",
	CodeCacheError:          "缓存错误",
	CodeLoginRequired:       "请先登录",
	CodeTokenInvalid:        "登录状态无效",
	CodeTokenExpired:        "登录已过期",
	CodeSearchTypeInvalid:   "不支持的搜索类型",
	CodeSearchQueryTooShort: "搜索关键词过短",
	CodeSearchTimeout:       "搜索超时，请稍后重试",
	CodeSearchPartialFail:   "部分搜索类型暂不可用",
	CodeHistoryNotFound:     "搜索历史不存在",
}

// GetMessage 根据错误码获取默认消息
func GetMessage(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsValidCode 判断是否为有效的业务错误码
// 用于区分业务错误码和 gRPC 系统错误码
// 业务错误码应该返回给前端，系统错误码（如 Unknown=2）应该隐藏
func IsValidCode(code int) bool {
	_, exists := codeMessages[code]
	return exists
}
