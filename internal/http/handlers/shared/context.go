package shared

import (
	"strconv"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/http/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// ParseUintParam 读取路径中的 uint 参数，非法时直接写错误响应。
func ParseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(value), true
}

// ParseStringParam 读取非空路径参数。
func ParseStringParam(c *gin.Context, name, invalidKey string) (string, bool) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return "", false
	}
	return value, true
}

// ParseTimeQuery 解析 RFC3339 或 YYYY-MM-DD 查询参数，空值返回 nil。
func ParseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
