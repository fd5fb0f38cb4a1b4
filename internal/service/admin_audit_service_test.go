package service

import (
	"context"
	"testing"

	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuditRecordAndList(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := NewAdminAuditService(repository.NewAdminAuditLogRepository(f.db))
	ctx := context.Background()

	svc.Record(ctx, AdminAuditInput{OperatorAdminID: 0, Action: AuditActionCouponCreate})
	svc.Record(ctx, AdminAuditInput{OperatorAdminID: 1, Action: " "})
	svc.Record(ctx, AdminAuditInput{
		OperatorAdminID:  1,
		OperatorUsername: "admin",
		Action:           AuditActionRefundAccept,
		TargetType:       "refund",
		TargetID:         "7",
		Detail:           map[string]interface{}{"order_id": 3},
	})
	svc.Record(ctx, AdminAuditInput{OperatorAdminID: 2, Action: AuditActionCouponCreate, TargetType: "coupon", TargetID: "SAVE5"})

	logs, total, err := svc.List(repository.AdminAuditLogListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)
	assert.Equal(t, AuditActionCouponCreate, logs[0].Action)

	logs, total, err = svc.List(repository.AdminAuditLogListFilter{Action: AuditActionRefundAccept})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.JSONEq(t, `{"order_id":3}`, logs[0].Detail)
}
