package db

import (
	"fmt"
	"log"
	"os"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/invoice-admin/internal/models"
)

// Connect opens the database selected by the DSN: a sqlite file for
// "sqlite:" DSNs, postgres otherwise, with a short retry loop to let the
// server come up.
func Connect(dsn string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if path, ok := SQLitePath(dsn); ok {
		db, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		return db, nil
	}

	normalized := NormalizeDSN(dsn)
	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(postgres.Open(normalized), cfg)
		if err == nil {
			break
		}
		log.Printf("db connect attempt %d/5 failed, retrying...", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return db, nil
}

// Migrate applies the schema with gorm AutoMigrate. Production deployments
// run SQL migrations via MigrateSQL instead (MIGRATIONS=1).
func Migrate(db *gorm.DB) error {
	for _, m := range []any{
		&models.User{},
		&models.Client{},
		&models.Product{},
		&models.Document{},
		&models.DocumentItem{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// MigrateSQL executes migrations in ./migrations using the golang-migrate
// file source. Postgres only; sqlite deployments use AutoMigrate.
func MigrateSQL(dsn string) error {
	m, err := migrate.New("file://migrations", NormalizeDSN(dsn))
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Seed inserts a small demo catalog and client book when the tables are empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		products := []models.Product{
			{Name: "Consulting (hour)", Price: 400},
			{Name: "Website design", Price: 7500},
			{Name: "Maintenance (month)", Price: 1200},
		}
		if err := db.Create(&products).Error; err != nil {
			return err
		}
	}
	if err := db.Model(&models.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		clients := []models.Client{
			{Name: "Atlas Trading", Email: "contact@atlas-trading.ma", Address: "12 Bd Zerktouni, Casablanca", Company: "Atlas Trading SARL"},
			{Name: "Medina Crafts", Email: "hello@medinacrafts.ma", Address: "3 Rue des Consuls, Rabat", Company: "Medina Crafts"},
		}
		if err := db.Create(&clients).Error; err != nil {
			return err
		}
	}
	return nil
}
