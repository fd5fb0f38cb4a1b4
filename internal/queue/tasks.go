package queue

import (
	"encoding/json"

	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPaidEmail 订单支付回执邮件
	TaskOrderPaidEmail = constants.TaskOrderPaidEmail
	// TaskRefundRequestedEmail 退款申请确认邮件
	TaskRefundRequestedEmail = constants.TaskRefundRequestedEmail
)

// OrderPaidEmailPayload 支付回执任务载荷
type OrderPaidEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Locale  string `json:"locale"`
}

// RefundRequestedEmailPayload 退款确认任务载荷
type RefundRequestedEmailPayload struct {
	RefundID uint   `json:"refund_id"`
	Locale   string `json:"locale"`
}

// NewOrderPaidEmailTask 创建支付回执任务
func NewOrderPaidEmailTask(payload OrderPaidEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPaidEmail, body), nil
}

// NewRefundRequestedEmailTask 创建退款确认任务
func NewRefundRequestedEmailTask(payload RefundRequestedEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRefundRequestedEmail, body), nil
}
