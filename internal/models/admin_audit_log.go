package models

import "time"

// AdminAuditLog 后台操作审计日志
// 说明：记录员工对订单、退款、商品与员工账号的变更，支持按操作人与动作检索。
type AdminAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"type:varchar(64);index;not null;default:''" json:"operator_username"`
	Action           string    `gorm:"type:varchar(64);index;not null" json:"action"`
	TargetType       string    `gorm:"type:varchar(32);index;not null;default:''" json:"target_type"`
	TargetID         string    `gorm:"type:varchar(100);index;not null;default:''" json:"target_id"`
	RequestID        string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	Detail           string    `gorm:"type:text" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
