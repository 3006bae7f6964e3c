package queue

import (
	"encoding/json"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCheckoutSync 弃单同步任务
	TaskCheckoutSync = constants.TaskCheckoutSync
)

// CheckoutSyncPayload 弃单同步任务载荷
type CheckoutSyncPayload struct {
	Trigger     string    `json:"trigger"`
	RequestID   string    `json:"request_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewCheckoutSyncTask 创建弃单同步任务
func NewCheckoutSyncTask(payload CheckoutSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutSync, body), nil
}

// ParseCheckoutSyncPayload 解析弃单同步任务载荷
func ParseCheckoutSyncPayload(task *asynq.Task) (CheckoutSyncPayload, error) {
	var payload CheckoutSyncPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
