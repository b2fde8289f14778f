// Package db opens the configured database and runs the automigrations
package db

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"revas/exchange-api/internal/model"
)

func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch viper.GetString("database.driver") {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			viper.GetString("database.host"),
			viper.GetString("database.user"),
			viper.GetString("database.password"),
			viper.GetString("database.name"),
			viper.GetInt("database.port"),
		)

		dial = postgres.Open(dsn)
	case "sqlite":
		dial = sqlite.Open(viper.GetString("database.path"))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", viper.GetString("database.driver"))
	}

	// TranslateError so unique constraint violations surface as
	// gorm.ErrDuplicatedKey regardless of the driver
	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Product{},
		&model.CatalogProduct{},
		&model.WaitlistEntry{},
		&model.Country{},
		&model.State{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
