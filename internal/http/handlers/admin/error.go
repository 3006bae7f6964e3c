package admin

import (
	"errors"

	handlershared "github.com/Markwebsolutions/abandoncart/internal/http/handlers/shared"
	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/queue"
	"github.com/Markwebsolutions/abandoncart/internal/service"
	"github.com/Markwebsolutions/abandoncart/internal/shopify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	target error
	code   int
	key    string
}

// 业务错误到响应码与文案 key 的映射，按顺序匹配
var serviceErrorMappings = []errorMapping{
	{service.ErrCartNotFound, response.CodeNotFound, "error.cart_not_found"},
	{service.ErrRemarkNotFound, response.CodeNotFound, "error.remark_not_found"},
	{service.ErrTemplateNotFound, response.CodeNotFound, "error.template_not_found"},
	{service.ErrInvalidCartField, response.CodeBadRequest, "error.cart_field_invalid"},
	{service.ErrInvalidCartStatus, response.CodeBadRequest, "error.cart_status_invalid"},
	{service.ErrInvalidCartPriority, response.CodeBadRequest, "error.cart_priority_invalid"},
	{service.ErrInvalidRemarkType, response.CodeBadRequest, "error.remark_type_invalid"},
	{service.ErrRemarkMessageRequired, response.CodeBadRequest, "error.remark_message_missing"},
	{service.ErrResponseRequired, response.CodeBadRequest, "error.response_missing"},
	{service.ErrTemplateInvalid, response.CodeBadRequest, "error.template_invalid"},
	{service.ErrInvalidDateRange, response.CodeBadRequest, "error.date_range_invalid"},
	{service.ErrPhoneMissing, response.CodeBadRequest, "error.phone_missing"},
	{service.ErrShopifyNotConfigured, response.CodeServiceUnavailable, "error.shopify_not_configured"},
	{shopify.ErrNotConfigured, response.CodeServiceUnavailable, "error.shopify_not_configured"},
	{service.ErrQueueUnavailable, response.CodeServiceUnavailable, "error.queue_unavailable"},
	{queue.ErrQueueDisabled, response.CodeServiceUnavailable, "error.queue_unavailable"},
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// respondServiceError 按业务错误类型输出响应；未识别的错误按 fallbackKey 返回 500
func respondServiceError(c *gin.Context, err error, fallbackKey string) {
	var upstream *shopify.UpstreamError
	if errors.As(err, &upstream) {
		handlershared.RespondErrorWithData(c, response.CodeUpstream, "error.shopify_upstream", err, gin.H{
			"upstream_status": upstream.StatusCode,
			"upstream_body":   upstream.Body,
		})
		return
	}
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			respondError(c, mapping.code, mapping.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackKey, err)
}
