// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"mcacrm/internal/models"
	"mcacrm/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database. A single connection
// keeps every query on the same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// Dec parses a decimal literal, panicking on bad input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr is Dec returning a pointer.
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// Date is midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedMerchant inserts a lead merchant.
func SeedMerchant(t *testing.T, db *gorm.DB, name string) *models.Merchant {
	t.Helper()
	m := &models.Merchant{CompanyName: name, State: "NY", Status: models.MerchantStatusLead}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed merchant: %v", err)
	}
	return m
}

// SeedSelectedOffer inserts a selected offer with consistent derived terms.
func SeedSelectedOffer(t *testing.T, db *gorm.DB, merchantID uint, advance, factor, fees string, periods int) *models.Offer {
	t.Helper()
	adv, fac := Dec(advance), Dec(factor)
	rtr := adv.Mul(fac).Round(2)
	now := time.Now().UTC()
	o := &models.Offer{
		MerchantID:       merchantID,
		Advance:          adv,
		Factor:           fac,
		UpfrontFees:      Dec(fees),
		PaymentFrequency: models.FrequencyDaily,
		TermBasis:        models.TermBasisPeriods,
		RTR:              rtr,
		NetFunds:         adv.Sub(Dec(fees)),
		PaymentAmount:    rtr.Div(decimal.NewFromInt(int64(periods))).Round(2),
		NumberOfPeriods:  periods,
		Status:           models.OfferStatusSelected,
		SelectedAt:       &now,
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("failed to seed offer: %v", err)
	}
	return o
}
