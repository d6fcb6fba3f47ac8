package postgres

import (
	"os"
	"path/filepath"
	"time"
	"ustory/cmd/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init connects using DATABASE_URL (postgres) when set, falling back to
// a local sqlite file for development, and migrates the schema.
func Init() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		log.Warn("DATABASE_URL not set, using local sqlite database")
		dbPath := filepath.Join(".", "ustory.db")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Diary{},
		&entity.DiaryUser{},
		&entity.Page{},
		&entity.Comment{},
		&entity.Friend{},
		&entity.Notice{},
	)
}
