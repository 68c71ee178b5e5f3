package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/logger"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
)

func Connect(dsn string, log *zap.Logger, logLevel string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.GormLevel(logLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&models.Service{}, &models.Order{}, &models.Profile{})
}

// DefaultServices is the starter catalog inserted into an empty services table.
func DefaultServices() []models.Service {
	return []models.Service{
		{Name: "Desain Logo", Description: "Logo profesional untuk brand Anda, termasuk 3 konsep awal dan file master.", PriceFrom: 150000, Category: "Desain", IconName: "Palette", IsActive: true},
		{Name: "Website Landing Page", Description: "Landing page responsif siap online untuk promosi produk atau jasa.", PriceFrom: 750000, Category: "Pengembangan Web", IconName: "Globe", IsActive: true},
		{Name: "Bot Telegram", Description: "Bot Telegram custom untuk otomatisasi layanan pelanggan.", PriceFrom: 500000, Category: "Pemrograman", IconName: "Bot", IsActive: true},
		{Name: "Penulisan Artikel SEO", Description: "Artikel 800+ kata yang dioptimasi untuk mesin pencari.", PriceFrom: 50000, Category: "Konten", IconName: "PenTool", IsActive: true},
		{Name: "Editing Video", Description: "Editing video pendek untuk Reels, TikTok, atau YouTube Shorts.", PriceFrom: 100000, Category: "Multimedia", IconName: "Video", IsActive: true},
	}
}

// Seed inserts the default catalog when no services exist yet.
func Seed(gdb *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := gdb.Model(&models.Service{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if count > 0 {
		return nil
	}

	services := DefaultServices()
	for i := range services {
		// created_at menentukan urutan katalog
		services[i].CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
	}
	if err := gdb.Create(&services).Error; err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	log.Info("default catalog seeded", zap.Int("services", len(services)))
	return nil
}
