package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationSendsReceiptAndRefundAck(t *testing.T) {
	f := setupStorefrontTest(t)
	refCode := f.paidOrderRefCode(t, "notify@example.com")
	order, err := f.orders.GetByRefCode(refCode)
	require.NoError(t, err)

	var sent []capturedMail
	svc := NewNotificationService(f.orders, f.refunds, f.users, newTestEmailService(true, &sent, nil))
	ctx := context.Background()

	require.NoError(t, svc.SendOrderPaid(ctx, order.ID, i18n.LocaleEnUS))
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"notify@example.com"}, sent[0].to)
	assert.Contains(t, sent[0].msg, refCode)
	assert.Contains(t, sent[0].msg, "25.00")

	refunds := NewRefundService(f.orders, f.refunds, NewCaptchaService(config.CaptchaConfig{}), f.queueClient)
	refund, err := refunds.Request(ctx, RefundInput{RefCode: refCode, Message: "Broken", Email: "other@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.SendRefundRequested(ctx, refund.ID, i18n.LocaleEnUS))
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"other@example.com"}, sent[1].to)
}

func TestNotificationSkipsWhenEmailDisabled(t *testing.T) {
	f := setupStorefrontTest(t)
	refCode := f.paidOrderRefCode(t, "quiet@example.com")
	order, err := f.orders.GetByRefCode(refCode)
	require.NoError(t, err)

	var sent []capturedMail
	svc := NewNotificationService(f.orders, f.refunds, f.users, newTestEmailService(false, &sent, nil))
	assert.NoError(t, svc.SendOrderPaid(context.Background(), order.ID, ""))
	assert.Empty(t, sent)

	failing := NewNotificationService(f.orders, f.refunds, f.users, newTestEmailService(true, nil, errors.New("connection reset")))
	assert.Error(t, failing.SendOrderPaid(context.Background(), order.ID, ""), "transient smtp failures are retried by the queue")
}
