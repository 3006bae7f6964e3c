package shared

import (
	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/i18n"
	"github.com/Markwebsolutions/abandoncart/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	appErr := response.WrapError(code, key, i18n.T(locale, key), err)
	logHandlerError(c, appErr)
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorWithData 带数据的国际化错误响应。
func RespondErrorWithData(c *gin.Context, code int, key string, err error, data interface{}) {
	locale := i18n.ResolveLocale(c)
	appErr := response.WrapError(code, key, i18n.T(locale, key), err)
	logHandlerError(c, appErr)
	response.ErrorWithData(c, appErr.Code, appErr.Message, data)
}

func logHandlerError(c *gin.Context, appErr *response.AppError) {
	if appErr.Err == nil {
		return
	}
	log := RequestLog(c)
	if appErr.Code >= response.CodeInternal {
		log.Errorw("handler_error", "code", appErr.Code, "key", appErr.Key, "error", appErr.Err)
		return
	}
	log.Warnw("handler_error", "code", appErr.Code, "key", appErr.Key, "error", appErr.Err)
}
