package admin

import (
	"strconv"
	"strings"

	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/i18n"
	"github.com/Markwebsolutions/abandoncart/internal/queue"
	"github.com/Markwebsolutions/abandoncart/internal/service"

	"github.com/gin-gonic/gin"
)

// SyncCarts 同步弃单：默认同步后返回库内列表，async=1 时提交异步任务
func (h *Handler) SyncCarts(c *gin.Context) {
	if async, _ := strconv.ParseBool(strings.TrimSpace(c.Query("async"))); async {
		h.enqueueSync(c)
		return
	}
	query, ok := h.parseCartQuery(c)
	if !ok {
		return
	}
	result, err := h.CartService.SyncAndList(c.Request.Context(), query, service.SyncTriggerManual)
	if err != nil {
		respondServiceError(c, err, "error.sync_failed")
		return
	}
	response.Success(c, result)
}

func (h *Handler) enqueueSync(c *gin.Context) {
	if h.ShopifyClient == nil {
		respondServiceError(c, service.ErrShopifyNotConfigured, "error.sync_failed")
		return
	}
	if !h.QueueClient.Enabled() {
		respondServiceError(c, service.ErrQueueUnavailable, "error.sync_failed")
		return
	}
	requestID, _ := c.Get("request_id")
	id, _ := requestID.(string)
	info, err := h.QueueClient.EnqueueCheckoutSync(queue.CheckoutSyncPayload{
		Trigger:   service.SyncTriggerQueue,
		RequestID: id,
	})
	duplicate := queue.IsDuplicateTask(err)
	if err != nil && !duplicate {
		respondServiceError(c, err, "error.sync_failed")
		return
	}
	data := gin.H{"queued": true, "duplicate": duplicate}
	if info != nil {
		data["task_id"] = info.ID
	}
	requestLog(c).Infow("admin_checkout_sync_enqueued", "duplicate", duplicate)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.sync_enqueued"), data)
}

// GetSyncStatus 最近一次同步状态与当前水位线
func (h *Handler) GetSyncStatus(c *gin.Context) {
	status, err := h.CheckoutSyncService.LastStatus(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	watermark, err := h.CheckoutSyncService.Watermark()
	if err != nil {
		respondServiceError(c, err, "error.internal_error")
		return
	}
	response.Success(c, gin.H{
		"configured": h.ShopifyClient != nil,
		"watermark":  watermark,
		"last":       status,
	})
}
