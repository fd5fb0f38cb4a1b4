package main

import (
	"os"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"

	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"
)

type itemSeed struct {
	Title        string
	Slug         string
	Price        string
	Discount     string
	CategorySlug string
	Label        string
	Description  string
}

var categorySeeds = []models.Category{
	{Title: "Shirts", Slug: "shirts", Description: "Casual and formal shirts", IsActive: true},
	{Title: "Sport wear", Slug: "sport-wear", Description: "Training and running gear", IsActive: true},
	{Title: "Outwear", Slug: "outwear", Description: "Jackets and coats", IsActive: true},
}

var itemSeeds = []itemSeed{
	{Title: "Oxford Shirt", Slug: "oxford-shirt", Price: "30.00", Discount: "20.00", CategorySlug: "shirts", Label: "primary", Description: "Cotton oxford button-down."},
	{Title: "Linen Shirt", Slug: "linen-shirt", Price: "45.00", CategorySlug: "shirts", Label: "secondary", Description: "Breathable summer linen."},
	{Title: "Running Tee", Slug: "running-tee", Price: "25.00", CategorySlug: "sport-wear", Label: "primary", Description: "Quick-dry running tee."},
	{Title: "Track Pants", Slug: "track-pants", Price: "40.00", Discount: "32.50", CategorySlug: "sport-wear", Label: "danger", Description: "Tapered track pants."},
	{Title: "Rain Jacket", Slug: "rain-jacket", Price: "120.00", CategorySlug: "outwear", Label: "secondary", Description: "Packable waterproof shell."},
	{Title: "Wool Coat", Slug: "wool-coat", Price: "220.00", Discount: "180.00", CategorySlug: "outwear", Label: "danger", Description: "Double-faced wool coat."},
}

var couponSeeds = []models.Coupon{
	{Code: "SAVE5", Amount: models.MustMoney("5.00")},
	{Code: "WELCOME10", Amount: models.MustMoney("10.00")},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	var rows [][]string
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		categoryIDs := map[string]uint{}
		for _, seed := range categorySeeds {
			category := seed
			if err := tx.Where("slug = ?", seed.Slug).FirstOrCreate(&category).Error; err != nil {
				return err
			}
			categoryIDs[category.Slug] = category.ID
			rows = append(rows, []string{"category", category.Slug, category.Title, ""})
		}

		for _, seed := range itemSeeds {
			item := models.Item{
				Title:       seed.Title,
				Slug:        seed.Slug,
				Price:       models.MustMoney(seed.Price),
				Label:       seed.Label,
				Description: seed.Description,
				IsActive:    true,
			}
			if id, ok := categoryIDs[seed.CategorySlug]; ok {
				item.CategoryID = &id
			}
			if seed.Discount != "" {
				discount := models.MustMoney(seed.Discount)
				item.DiscountPrice = &discount
			}
			if err := tx.Where("slug = ?", seed.Slug).FirstOrCreate(&item).Error; err != nil {
				return err
			}
			price := item.Price.String()
			if item.DiscountPrice != nil {
				price = item.DiscountPrice.String() + " (was " + price + ")"
			}
			rows = append(rows, []string{"item", item.Slug, item.Title, price})
		}

		for _, seed := range couponSeeds {
			coupon := seed
			if err := tx.Where("code = ?", seed.Code).FirstOrCreate(&coupon).Error; err != nil {
				return err
			}
			rows = append(rows, []string{"coupon", coupon.Code, "", "-" + coupon.Amount.String()})
		}
		return nil
	})
	if err != nil {
		stdLog.Fatalf("Failed to seed data: %v", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Kind", "Key", "Title", "Amount")
	if err := table.Bulk(rows); err != nil {
		stdLog.Fatalf("Failed to render seed table: %v", err)
	}
	if err := table.Render(); err != nil {
		stdLog.Fatalf("Failed to render seed table: %v", err)
	}
	logger.Infow("seed_completed", "rows", len(rows))
}
