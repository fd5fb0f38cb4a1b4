package worker

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	cache.UseClient(nil, "")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), models.GormConfig())
	require.NoError(t, err)
	require.NoError(t, models.MigrateWith(db))

	cfg := config.Defaults()
	queueClient, err := queue.NewClient(&cfg.Queue)
	require.NoError(t, err)
	return NewConsumer(provider.NewContainerWithDB(cfg, db, queueClient)), db
}

func TestRegisterRoutesBothEmailTasks(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	for _, taskType := range []string{queue.TaskOrderPaidEmail, queue.TaskRefundRequestedEmail} {
		_, pattern := mux.Handler(asynq.NewTask(taskType, nil))
		assert.Equal(t, taskType, pattern)
	}
}

func TestHandleOrderPaidEmailCorruptPayloadSkipsRetry(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	err := consumer.handleOrderPaidEmail(context.Background(), asynq.NewTask(queue.TaskOrderPaidEmail, []byte("{not json")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = consumer.handleRefundRequestedEmail(context.Background(), asynq.NewTask(queue.TaskRefundRequestedEmail, []byte("[]")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleEmailTasksSkipMissingRecords(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task, err := queue.NewOrderPaidEmailTask(queue.OrderPaidEmailPayload{OrderID: 404, Locale: "en-US"})
	require.NoError(t, err)
	assert.NoError(t, consumer.handleOrderPaidEmail(context.Background(), task))

	task, err = queue.NewRefundRequestedEmailTask(queue.RefundRequestedEmailPayload{RefundID: 404})
	require.NoError(t, err)
	assert.NoError(t, consumer.handleRefundRequestedEmail(context.Background(), task))

	task, err = queue.NewOrderPaidEmailTask(queue.OrderPaidEmailPayload{})
	require.NoError(t, err)
	assert.NoError(t, consumer.handleOrderPaidEmail(context.Background(), task))
}

func TestHandleOrderPaidEmailWithMailDisabled(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	user := &models.User{Email: "paid@example.com", PasswordHash: "x", Status: "active", Locale: "en-US"}
	require.NoError(t, db.Create(user).Error)
	refCode := "abcdefghij0123456789"
	now := time.Now()
	order := &models.Order{UserID: user.ID, Ordered: true, OrderedAt: &now, RefCode: &refCode}
	require.NoError(t, db.Create(order).Error)

	task, err := queue.NewOrderPaidEmailTask(queue.OrderPaidEmailPayload{OrderID: order.ID})
	require.NoError(t, err)
	assert.NoError(t, consumer.handleOrderPaidEmail(context.Background(), task), "disabled mail is skipped, not retried")
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	_, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{})
	assert.Error(t, err)

	_, err = NewService(&config.QueueConfig{Enabled: true}, nil)
	assert.Error(t, err)
}
