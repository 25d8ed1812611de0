package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/totok22/quicksales-backend/models"
)

// newTestStore opens a fresh in-memory database with the full schema.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory
	// database.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return New(db)
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

func testCustomer(id, name, phone, plate string) models.Customer {
	now := time.Now()
	return models.Customer{
		ID:           id,
		Name:         name,
		Phone:        phone,
		LicensePlate: plate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testOrder(id, customerID, date string) models.Order {
	now := time.Now()
	return models.Order{
		ID:          id,
		OrderNumber: "NO." + id,
		Date:        date,
		CustomerID:  customerID,
		TotalAmount: 100,
		Status:      "draft",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
