package queue

import (
	"encoding/json"
	"testing"

	"github.com/dujiao-next/storefront/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderPaidEmail(OrderPaidEmailPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestRefundTaskPayload(t *testing.T) {
	task, err := NewRefundRequestedEmailTask(RefundRequestedEmailPayload{RefundID: 9, Locale: "en-US"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskRefundRequestedEmail {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	var payload RefundRequestedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil || payload.RefundID != 9 {
		t.Fatalf("unexpected payload %+v err=%v", payload, err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Port: 6380, DB: 2})
	if opt.Addr != "127.0.0.1:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt %+v", opt)
	}
	if cfg.Concurrency != 10 || cfg.Queues[CriticalQueue] != 2 {
		t.Fatalf("unexpected server config %+v", cfg)
	}
}
