package repository

// ItemListFilter 商品列表过滤条件
type ItemListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	OnlyActive bool
}

// OrderListFilter 订单列表过滤条件
type OrderListFilter struct {
	Page            int
	PageSize        int
	UserID          uint
	OnlyOrdered     bool
	RefundRequested *bool
}

// RefundListFilter 退款申请列表过滤条件
type RefundListFilter struct {
	Page     int
	PageSize int
	Accepted *bool
}

// CouponListFilter 优惠券列表过滤条件
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
}

// AdminAuditLogListFilter 后台审计日志过滤条件
type AdminAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	Action          string
}
