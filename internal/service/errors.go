package service

import "errors"

var (
	// ErrCartNotFound 弃单不存在
	ErrCartNotFound = errors.New("cart not found")
	// ErrRemarkNotFound 跟进记录不存在
	ErrRemarkNotFound = errors.New("remark not found")
	// ErrTemplateNotFound 模板不存在
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidCartField 只允许修改 status/priority
	ErrInvalidCartField = errors.New("invalid cart field")
	// ErrInvalidCartStatus 非法状态
	ErrInvalidCartStatus = errors.New("invalid cart status")
	// ErrInvalidCartPriority 非法优先级
	ErrInvalidCartPriority = errors.New("invalid cart priority")
	// ErrInvalidRemarkType 非法记录类型
	ErrInvalidRemarkType = errors.New("invalid remark type")
	// ErrRemarkMessageRequired 记录内容为空
	ErrRemarkMessageRequired = errors.New("remark message required")
	// ErrResponseRequired 客户回复内容为空
	ErrResponseRequired = errors.New("response text required")
	// ErrTemplateInvalid 模板字段缺失
	ErrTemplateInvalid = errors.New("template invalid")
	// ErrInvalidDateRange 时间窗口非法
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrShopifyNotConfigured 未配置 Shopify
	ErrShopifyNotConfigured = errors.New("shopify not configured")
	// ErrQueueUnavailable 异步队列不可用
	ErrQueueUnavailable = errors.New("queue unavailable")
	// ErrPhoneMissing 客户没有手机号
	ErrPhoneMissing = errors.New("customer phone missing")
)
