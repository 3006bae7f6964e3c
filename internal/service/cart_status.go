package service

import (
	"strings"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"
)

// EffectiveStatus 有效状态：最近一条带状态的跟进记录，其次基线状态，默认 pending。
// 每次读取都重新计算，不做缓存。
func EffectiveStatus(baseline string, remarks []models.CartRemark) string {
	var latest *models.CartRemark
	for i := range remarks {
		remark := &remarks[i]
		if !remark.HasStatus() || strings.TrimSpace(*remark.Status) == "" {
			continue
		}
		if latest == nil || remarkAfter(*remark, *latest) {
			latest = remark
		}
	}
	if latest != nil {
		return strings.TrimSpace(*latest.Status)
	}
	if v := strings.TrimSpace(baseline); v != "" {
		return v
	}
	return constants.CartStatusPending
}

// 创建时间相同按自增 id 判断先后
func remarkAfter(a, b models.CartRemark) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
