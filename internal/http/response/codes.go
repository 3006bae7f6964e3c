package response

// 业务状态码，HTTP 状态码统一为 200
const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodeNotFound           = 404
	CodeTooManyRequests    = 429
	CodeInternal           = 500
	CodeUpstream           = 502 // Shopify 调用失败
	CodeServiceUnavailable = 503 // 未配置 Shopify 或队列
)
