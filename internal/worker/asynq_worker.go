package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPaidEmail, c.handleOrderPaidEmail)
	mux.HandleFunc(queue.TaskRefundRequestedEmail, c.handleRefundRequestedEmail)
}

func (c *Consumer) handleOrderPaidEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_paid_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPaidEmailPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_paid_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_paid_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_paid_email_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.NotificationService.SendOrderPaid(ctx, payload.OrderID, payload.Locale); err != nil {
		logger.Warnw("worker_order_paid_email_send_failed",
			"order_id", payload.OrderID,
			"retry_count", retryCount(ctx),
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleRefundRequestedEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_refund_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RefundRequestedEmailPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_refund_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.RefundID == 0 {
		logger.Debugw("worker_refund_email_skip_invalid_payload", "refund_id", payload.RefundID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_refund_email_skip_service_nil", "refund_id", payload.RefundID)
		return nil
	}
	if err := c.NotificationService.SendRefundRequested(ctx, payload.RefundID, payload.Locale); err != nil {
		logger.Warnw("worker_refund_email_send_failed",
			"refund_id", payload.RefundID,
			"retry_count", retryCount(ctx),
			"error", err,
		)
		return err
	}
	return nil
}

// decodePayload 载荷损坏时重试无意义，直接标记 SkipRetry
func decodePayload(task *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return nil
}

func retryCount(ctx context.Context) int {
	n, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return 0
	}
	return n
}
