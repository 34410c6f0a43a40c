package infra

import (
	"fmt"

	"pharmapos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs
// AutoMigrate for all tables, then applies the idempotent SQL patches
// GORM cannot express (the invoice sequence).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique violations as gorm.ErrDuplicatedKey so services
		// can map them to conflict responses.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration
// tests against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Medicine{},
		&model.PurchaseRecord{},
		&model.Supplier{},
		&model.SupplierOrder{},
		&model.SupplierOrderItem{},
		&model.Sale{},
		&model.SaleItem{},
		&model.User{},
		&model.RestockPrediction{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Invoice numbers are drawn from a real Postgres sequence so
		// concurrent sales never collide.
		`CREATE SEQUENCE IF NOT EXISTS invoice_seq START 1`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch %q: %w", sql, err)
		}
	}
	return nil
}
