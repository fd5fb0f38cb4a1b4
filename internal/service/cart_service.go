package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"gorm.io/gorm"
)

// CartResult 购物车变更结果
type CartResult struct {
	Outcome  string `json:"outcome"`
	OrderID  uint   `json:"order_id"`
	ItemSlug string `json:"item_slug"`
}

// CartService 购物车服务。购物车即用户唯一的未支付订单
type CartService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	itemRepo      repository.ItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(orderRepo repository.OrderRepository, orderItemRepo repository.OrderItemRepository, itemRepo repository.ItemRepository) *CartService {
	return &CartService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		itemRepo:      itemRepo,
	}
}

// Add 加入购物车：已有该商品则数量 +1，否则新建订单行
func (s *CartService) Add(ctx context.Context, userID uint, slug string) (*CartResult, error) {
	item, err := s.loadItem(slug)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrItemNotFound
	}
	order, created, err := s.orderRepo.GetOrCreateOpen(userID)
	if err != nil {
		return nil, err
	}

	lineKey := models.CartLineKey(order.ID, item.ID)
	outcome := constants.CartOutcomeAdded
	if !created {
		bumped, err := s.orderItemRepo.IncrementLine(lineKey)
		if err != nil {
			return nil, err
		}
		if bumped {
			outcome = constants.CartOutcomeQuantityUpdated
		}
	}
	if outcome == constants.CartOutcomeAdded {
		key := lineKey
		line := &models.OrderItem{
			OrderID:  order.ID,
			UserID:   userID,
			ItemID:   item.ID,
			Quantity: 1,
			LineKey:  &key,
		}
		if err := s.orderItemRepo.CreateLine(line); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}
			// 并发请求先建了行，退化为数量 +1
			if _, err := s.orderItemRepo.IncrementLine(lineKey); err != nil {
				return nil, err
			}
			outcome = constants.CartOutcomeQuantityUpdated
		}
	}

	s.invalidateChargeKey(ctx, order.ID)
	logger.Ctx(ctx).Infow("cart_item_added",
		"user_id", userID,
		"order_id", order.ID,
		"item_slug", item.Slug,
		"outcome", outcome,
	)
	return &CartResult{Outcome: outcome, OrderID: order.ID, ItemSlug: item.Slug}, nil
}

// Remove 从购物车移除整行
func (s *CartService) Remove(ctx context.Context, userID uint, slug string) (*CartResult, error) {
	item, order, err := s.loadItemAndOrder(userID, slug)
	if err != nil {
		return nil, err
	}
	removed, err := s.orderItemRepo.RemoveLine(models.CartLineKey(order.ID, item.ID), time.Now())
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrItemNotInCart
	}
	s.invalidateChargeKey(ctx, order.ID)
	logger.Ctx(ctx).Infow("cart_item_removed", "user_id", userID, "order_id", order.ID, "item_slug", item.Slug)
	return &CartResult{Outcome: constants.CartOutcomeRemoved, OrderID: order.ID, ItemSlug: item.Slug}, nil
}

// Decrement 数量 -1，数量为 1 时移除该行
func (s *CartService) Decrement(ctx context.Context, userID uint, slug string) (*CartResult, error) {
	item, order, err := s.loadItemAndOrder(userID, slug)
	if err != nil {
		return nil, err
	}
	lineKey := models.CartLineKey(order.ID, item.ID)
	outcome := constants.CartOutcomeQuantityUpdated
	decremented, err := s.orderItemRepo.DecrementLine(lineKey)
	if err != nil {
		return nil, err
	}
	if !decremented {
		removed, err := s.orderItemRepo.RemoveLine(lineKey, time.Now())
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, ErrItemNotInCart
		}
		outcome = constants.CartOutcomeRemoved
	}
	s.invalidateChargeKey(ctx, order.ID)
	logger.Ctx(ctx).Infow("cart_item_decremented",
		"user_id", userID,
		"order_id", order.ID,
		"item_slug", item.Slug,
		"outcome", outcome,
	)
	return &CartResult{Outcome: outcome, OrderID: order.ID, ItemSlug: item.Slug}, nil
}

// Summary 当前购物车订单
func (s *CartService) Summary(userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}
	return order, nil
}

func (s *CartService) loadItem(slug string) (*models.Item, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrItemNotFound
	}
	item, err := s.itemRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *CartService) loadItemAndOrder(userID uint, slug string) (*models.Item, *models.Order, error) {
	item, err := s.loadItem(slug)
	if err != nil {
		return nil, nil, err
	}
	order, err := s.orderRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return item, nil, ErrNoActiveOrder
	}
	return item, order, nil
}

// invalidateChargeKey 购物车变化后金额可能变化，旧的幂等键不能复用
func (s *CartService) invalidateChargeKey(ctx context.Context, orderID uint) {
	if err := s.orderRepo.ClearChargeKey(orderID); err != nil {
		logger.Ctx(ctx).Warnw("cart_charge_key_clear_failed", "order_id", orderID, "error", err)
	}
}
