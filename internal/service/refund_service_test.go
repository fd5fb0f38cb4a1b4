package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *storefrontFixture) paidOrderRefCode(t *testing.T, email string) string {
	t.Helper()
	stub := &stripeStub{status: http.StatusOK, body: `{"id":"ch_` + email + `","status":"succeeded","paid":true,"amount":2500,"currency":"usd"}`}
	f.useStripe(t, stub)
	user := f.prepareSave5Order(t, email)
	result, err := f.paymentService().Pay(context.Background(), PayInput{UserID: user.ID, Option: "S", Token: "tok_visa"})
	require.NoError(t, err)
	return result.RefCode
}

func TestRefundRequestAndAccept(t *testing.T) {
	f := setupStorefrontTest(t)
	refCode := f.paidOrderRefCode(t, "refund@example.com")
	svc := NewRefundService(f.orders, f.refunds, NewCaptchaService(config.CaptchaConfig{}), f.queueClient)
	ctx := context.Background()

	refund, err := svc.Request(ctx, RefundInput{RefCode: refCode, Message: "Wrong size", Email: "Refund@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "refund@example.com", refund.Email)

	order, err := f.orders.GetByRefCode(refCode)
	require.NoError(t, err)
	assert.True(t, order.RefundRequested)
	assert.False(t, order.RefundGranted)

	_, err = svc.Request(ctx, RefundInput{RefCode: refCode, Message: "Still waiting", Email: "refund@example.com"})
	require.NoError(t, err, "repeat requests are recorded")

	accepted, err := svc.Accept(ctx, refund.ID)
	require.NoError(t, err)
	assert.True(t, accepted.Accepted)
	order, err = f.orders.GetByRefCode(refCode)
	require.NoError(t, err)
	assert.False(t, order.RefundRequested)
	assert.True(t, order.RefundGranted)

	_, err = svc.Accept(ctx, refund.ID)
	assert.ErrorIs(t, err, ErrRefundAlreadyAccepted)
	_, err = svc.Accept(ctx, 9999)
	assert.ErrorIs(t, err, ErrRefundNotFound)

	pending := false
	refunds, total, err := svc.List(repository.RefundListFilter{Page: 1, PageSize: 20, Accepted: &pending})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, refunds, 1)
	assert.Equal(t, "Still waiting", refunds[0].Reason)
}

func TestRefundRequestValidation(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := NewRefundService(f.orders, f.refunds, NewCaptchaService(config.CaptchaConfig{}), f.queueClient)
	ctx := context.Background()

	_, err := svc.Request(ctx, RefundInput{RefCode: "", Message: "m", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrRefundFormInvalid)
	_, err = svc.Request(ctx, RefundInput{RefCode: "abcdefghijklmnopqrstu", Message: "m", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrRefundFormInvalid)
	_, err = svc.Request(ctx, RefundInput{RefCode: "abc", Message: " ", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrRefundFormInvalid)
	_, err = svc.Request(ctx, RefundInput{RefCode: "abc", Message: "m", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = svc.Request(ctx, RefundInput{RefCode: "abc", Message: "m", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrRefundOrderNotFound)
}

func TestRefundUnknownRefCodeLeavesStoreUntouched(t *testing.T) {
	f := setupStorefrontTest(t)
	refCode := f.paidOrderRefCode(t, "kept@example.com")
	svc := NewRefundService(f.orders, f.refunds, NewCaptchaService(config.CaptchaConfig{}), f.queueClient)

	unknown := strings.Repeat("z", len(refCode))
	if unknown == refCode {
		unknown = strings.Repeat("0", len(refCode))
	}
	_, err := svc.Request(context.Background(), RefundInput{RefCode: unknown, Message: "never arrived", Email: "kept@example.com"})
	assert.ErrorIs(t, err, ErrRefundOrderNotFound)

	var refunds int64
	require.NoError(t, f.db.Model(&models.Refund{}).Count(&refunds).Error)
	assert.Zero(t, refunds)

	order, err := f.orders.GetByRefCode(refCode)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, order.Ordered)
	assert.False(t, order.RefundRequested)
	assert.False(t, order.RefundGranted)
}

func TestRefundRequestCaptcha(t *testing.T) {
	f := setupStorefrontTest(t)
	captcha := NewCaptchaService(config.CaptchaConfig{RefundRequest: true})
	svc := NewRefundService(f.orders, f.refunds, captcha, f.queueClient)
	assert.True(t, svc.CaptchaRequired())

	_, err := svc.Request(context.Background(), RefundInput{RefCode: "abc", Message: "m", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrCaptchaRequired)
}
