package config

import (
	"github.com/onandoff/onandoff-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database and migrates the schema. Postgres is used when
// DB_URL is set; otherwise a local sqlite file keeps development simple.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DBURL != "" {
		dialector = postgres.Open(cfg.DBURL)
	} else {
		dialector = sqlite.Open("onandoff.db")
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Note{}, &models.Quiz{}); err != nil {
		return nil, err
	}

	return db, nil
}
