package constants

// 弃单跟进状态
const (
	CartStatusPending    = "pending"
	CartStatusInProgress = "in-progress"
	CartStatusCompleted  = "completed"
	CartStatusFailed     = "failed"
)

// 弃单优先级
const (
	CartPriorityLow    = "low"
	CartPriorityMedium = "medium"
	CartPriorityHigh   = "high"
)

// 可直接修改的弃单字段
const (
	CartFieldStatus   = "status"
	CartFieldPriority = "priority"
)

// 跟进记录类型
const (
	RemarkTypeEmail        = "email"
	RemarkTypeSMS          = "sms"
	RemarkTypeWhatsApp     = "whatsapp"
	RemarkTypePhone        = "phone"
	RemarkTypeResponse     = "response"
	RemarkTypeStatusChange = "status-change"
	RemarkTypeSystem       = "system"
)

// 操作人
const (
	RemarkAgentSystem  = "System"
	RemarkAgentDefault = "Agent"
)

// 数据来源
const (
	CartSourceLive   = "live"
	CartSourceStored = "stored"
)

// 模板渠道
const (
	TemplateTypeWhatsApp = "whatsapp"
	TemplateTypeEmail    = "email"
	TemplateTypeSMS      = "sms"
)

// 默认值
const (
	UnknownCustomerName = "Unknown"
	UnnamedItemName     = "Unnamed Item"
	StatusFilterAll     = "all"
)

// CartStatuses 全部跟进状态
func CartStatuses() []string {
	return []string{CartStatusPending, CartStatusInProgress, CartStatusCompleted, CartStatusFailed}
}

// IsCartStatus 是否为合法状态
func IsCartStatus(value string) bool {
	for _, s := range CartStatuses() {
		if s == value {
			return true
		}
	}
	return false
}

// IsCartPriority 是否为合法优先级
func IsCartPriority(value string) bool {
	switch value {
	case CartPriorityLow, CartPriorityMedium, CartPriorityHigh:
		return true
	}
	return false
}

// IsRemarkType 是否为合法记录类型
func IsRemarkType(value string) bool {
	switch value {
	case RemarkTypeEmail, RemarkTypeSMS, RemarkTypeWhatsApp, RemarkTypePhone,
		RemarkTypeResponse, RemarkTypeStatusChange, RemarkTypeSystem:
		return true
	}
	return false
}

// IsContactMedium 客户回复渠道
func IsContactMedium(value string) bool {
	switch value {
	case RemarkTypeEmail, RemarkTypeSMS, RemarkTypeWhatsApp, RemarkTypePhone:
		return true
	}
	return false
}

// 队列
const (
	QueueDefault     = "default"
	TaskCheckoutSync = "checkout:sync"
)
