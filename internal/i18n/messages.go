package i18n

var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.not_found":              "资源不存在",
		"error.internal_error":         "服务器内部错误",
		"error.too_many_requests":      "请求过于频繁，请稍后再试",
		"error.cart_not_found":         "弃单不存在",
		"error.cart_id_invalid":        "弃单 ID 无效",
		"error.cart_field_invalid":     "只允许修改 status 或 priority",
		"error.cart_status_invalid":    "无效的跟进状态",
		"error.cart_priority_invalid":  "无效的优先级",
		"error.date_range_invalid":     "日期范围无效",
		"error.remark_not_found":       "跟进记录不存在",
		"error.remark_id_invalid":      "跟进记录 ID 无效",
		"error.remark_type_invalid":    "无效的记录类型",
		"error.remark_message_missing": "记录内容不能为空",
		"error.response_missing":       "回复内容不能为空",
		"error.template_not_found":     "模板不存在",
		"error.template_id_invalid":    "模板 ID 无效",
		"error.template_invalid":       "模板类型、名称、内容、分类均为必填",
		"error.phone_missing":          "客户没有可用的手机号",
		"error.shopify_not_configured": "未配置 Shopify 店铺或访问令牌",
		"error.shopify_upstream":       "Shopify 接口请求失败",
		"error.queue_unavailable":      "任务队列未启用",
		"error.sync_failed":            "同步失败",
		"message.sync_enqueued":        "同步任务已提交",
	},
	LocaleTW: {
		"error.bad_request":            "請求參數錯誤",
		"error.not_found":              "資源不存在",
		"error.internal_error":         "伺服器內部錯誤",
		"error.too_many_requests":      "請求過於頻繁，請稍後再試",
		"error.cart_not_found":         "棄單不存在",
		"error.cart_id_invalid":        "棄單 ID 無效",
		"error.cart_field_invalid":     "只允許修改 status 或 priority",
		"error.cart_status_invalid":    "無效的跟進狀態",
		"error.cart_priority_invalid":  "無效的優先級",
		"error.date_range_invalid":     "日期範圍無效",
		"error.remark_not_found":       "跟進記錄不存在",
		"error.remark_id_invalid":      "跟進記錄 ID 無效",
		"error.remark_type_invalid":    "無效的記錄類型",
		"error.remark_message_missing": "記錄內容不能為空",
		"error.response_missing":       "回覆內容不能為空",
		"error.template_not_found":     "範本不存在",
		"error.template_id_invalid":    "範本 ID 無效",
		"error.template_invalid":       "範本類型、名稱、內容、分類皆為必填",
		"error.phone_missing":          "客戶沒有可用的手機號碼",
		"error.shopify_not_configured": "未設定 Shopify 商店或存取權杖",
		"error.shopify_upstream":       "Shopify 介面請求失敗",
		"error.queue_unavailable":      "任務佇列未啟用",
		"error.sync_failed":            "同步失敗",
		"message.sync_enqueued":        "同步任務已提交",
	},
	LocaleEN: {
		"error.bad_request":            "Invalid request parameters",
		"error.not_found":              "Resource not found",
		"error.internal_error":         "Internal server error",
		"error.too_many_requests":      "Too many requests, please try again later",
		"error.cart_not_found":         "Cart not found",
		"error.cart_id_invalid":        "Invalid cart id",
		"error.cart_field_invalid":     "Only status or priority can be updated",
		"error.cart_status_invalid":    "Invalid cart status",
		"error.cart_priority_invalid":  "Invalid cart priority",
		"error.date_range_invalid":     "Invalid date range",
		"error.remark_not_found":       "Remark not found",
		"error.remark_id_invalid":      "Invalid remark id",
		"error.remark_type_invalid":    "Invalid remark type",
		"error.remark_message_missing": "Remark message is required",
		"error.response_missing":       "Response text is required",
		"error.template_not_found":     "Template not found",
		"error.template_id_invalid":    "Invalid template id",
		"error.template_invalid":       "Template type, name, text and category are required",
		"error.phone_missing":          "Customer has no usable phone number",
		"error.shopify_not_configured": "Shopify shop or access token is not configured",
		"error.shopify_upstream":       "Shopify request failed",
		"error.queue_unavailable":      "Task queue is not enabled",
		"error.sync_failed":            "Sync failed",
		"message.sync_enqueued":        "Sync task enqueued",
	},
}
