// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&models.Service{}, &models.Order{}, &models.Profile{}))
	return gdb
}

// CreateService inserts a service whose created_at is offset by the given seconds.
func CreateService(t *testing.T, gdb *gorm.DB, name string, price int64, active bool, offsetSec int) models.Service {
	t.Helper()

	s := models.Service{
		Name:      name,
		PriceFrom: price,
		Category:  "Desain",
		IconName:  "Palette",
		IsActive:  active,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, offsetSec, 0, time.UTC),
	}
	require.NoError(t, gdb.Create(&s).Error)
	if !active {
		// default:true swallows a false zero value on insert
		require.NoError(t, gdb.Model(&s).Update("is_active", false).Error)
	}
	return s
}
