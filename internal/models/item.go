package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item 商品
type Item struct {
	ID            uint      `gorm:"primarykey" json:"id"`                            // 主键
	Title         string    `gorm:"size:100;not null" json:"title"`                  // 标题
	Slug          string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`       // URL 标识
	Price         Money     `gorm:"type:decimal(20,2);not null" json:"price"`        // 原价
	DiscountPrice *Money    `gorm:"type:decimal(20,2)" json:"discount_price"`        // 折扣价（为空表示无折扣）
	CategoryID    *uint     `gorm:"index" json:"category_id"`                        // 分类ID
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类
	Label         string    `gorm:"size:16" json:"label"`                            // 角标（new/sale 等）
	Description   string    `gorm:"type:text" json:"description"`                    // 描述
	Image         string    `gorm:"size:512" json:"image"`                           // 图片地址
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`    // 是否上架
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}

// HasDiscount 是否设置了折扣价
func (i *Item) HasDiscount() bool {
	return i != nil && i.DiscountPrice != nil
}

// EffectivePrice 实际单价：有折扣价取折扣价
func (i *Item) EffectivePrice() decimal.Decimal {
	if i == nil {
		return decimal.Zero
	}
	if i.DiscountPrice != nil {
		return i.DiscountPrice.Decimal
	}
	return i.Price.Decimal
}
