package service

import (
	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"

	"github.com/shopspring/decimal"
)

const (
	defaultUrgentHours = 24
)

var defaultRecoveryRate = decimal.RequireFromString("0.3")

// MetricsOptions 指标计算参数
type MetricsOptions struct {
	UrgentHours  int
	RecoveryRate decimal.Decimal // 潜在挽回估算比例
}

// DefaultMetricsOptions 默认参数：24 小时内为紧急，挽回比例 30%
func DefaultMetricsOptions() MetricsOptions {
	return MetricsOptions{UrgentHours: defaultUrgentHours, RecoveryRate: defaultRecoveryRate}
}

// NewMetricsOptions 从配置值构建参数，非法值回退默认
func NewMetricsOptions(urgentHours int, recoveryRate string) MetricsOptions {
	opts := DefaultMetricsOptions()
	if urgentHours > 0 {
		opts.UrgentHours = urgentHours
	}
	if rate, err := decimal.NewFromString(recoveryRate); err == nil && rate.IsPositive() {
		opts.RecoveryRate = rate
	}
	return opts
}

// CartMetrics 弃单看板指标
type CartMetrics struct {
	Total             int          `json:"total"`
	Pending           int          `json:"pending"`
	InProgress        int          `json:"in_progress"`
	Completed         int          `json:"completed"`
	Failed            int          `json:"failed"`
	ConversionRate    string       `json:"conversion_rate"`
	TotalValue        models.Money `json:"total_value"`
	RecoveredValue    models.Money `json:"recovered_value"`
	PotentialRecovery models.Money `json:"potential_recovery"`
	Urgent            int          `json:"urgent"`
	AwaitingFollowUp  int          `json:"pending_remarks"`
	TotalRemarks      int          `json:"total_remarks"`
	RespondedRemarks  int          `json:"responded_remarks"`
	ResponseRate      string       `json:"response_rate"`
}

// ComputeMetrics 基于有效状态计算指标，纯函数
func ComputeMetrics(carts []Cart, opts MetricsOptions) CartMetrics {
	if opts.UrgentHours <= 0 {
		opts.UrgentHours = defaultUrgentHours
	}
	if !opts.RecoveryRate.IsPositive() {
		opts.RecoveryRate = defaultRecoveryRate
	}

	var m CartMetrics
	total := decimal.Zero
	recovered := decimal.Zero
	open := decimal.Zero

	for _, cart := range carts {
		status := cart.EffectiveStatus
		if status == "" {
			status = EffectiveStatus(cart.Status, cart.Remarks)
		}
		value := cart.CartValue.Decimal
		total = total.Add(value)

		switch status {
		case constants.CartStatusPending:
			m.Pending++
			open = open.Add(value)
			if len(cart.Remarks) == 0 {
				m.AwaitingFollowUp++
			}
		case constants.CartStatusInProgress:
			m.InProgress++
			open = open.Add(value)
			if n := len(cart.Remarks); n > 0 && !cart.Remarks[n-1].HasResponse() {
				m.AwaitingFollowUp++
			}
		case constants.CartStatusCompleted:
			m.Completed++
			recovered = recovered.Add(value)
		case constants.CartStatusFailed:
			m.Failed++
		}

		if cart.HoursSinceAbandoned < opts.UrgentHours && status != constants.CartStatusCompleted {
			m.Urgent++
		}
		for _, remark := range cart.Remarks {
			m.TotalRemarks++
			if remark.HasResponse() {
				m.RespondedRemarks++
			}
		}
	}

	m.Total = len(carts)
	m.ConversionRate = percentage(m.Completed, m.Total)
	m.ResponseRate = percentage(m.RespondedRemarks, m.TotalRemarks)
	m.TotalValue = models.NewMoneyFromDecimal(total)
	m.RecoveredValue = models.NewMoneyFromDecimal(recovered)
	m.PotentialRecovery = models.NewMoneyFromDecimal(open.Mul(opts.RecoveryRate))
	return m
}

// percentage 一位小数百分比，分母为 0 时返回 "0"
func percentage(part, whole int) string {
	if whole <= 0 {
		return "0"
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		StringFixed(1)
}
