package service

import (
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
)

// OrderService 订单查询服务
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单查询服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListOrdersByUser 用户已支付订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]OrderView, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrInvalidRequest
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, err
	}
	return buildOrderViews(orders), total, nil
}

// ListOrdersForAdmin 后台订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]OrderView, int64, error) {
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, err
	}
	return buildOrderViews(orders), total, nil
}

// GetOrderForAdmin 后台订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*OrderView, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return BuildOrderView(order), nil
}

func buildOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *BuildOrderView(&orders[i]))
	}
	return views
}
