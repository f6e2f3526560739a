package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/habithub/habithub-api/internal/config"
	"github.com/habithub/habithub-api/internal/models"
	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the configured database. Unique-constraint violations are
// translated to gorm.ErrDuplicatedKey on every dialect.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			log.Default().StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(cfg.DatabaseDriver) {
	case "sqlite", "sqlite3", "":
		db, err = gorm.Open(sqlite.Open(cfg.DatabasePath), gcfg)
	case "postgres", "postgresql":
		var sqlDB *sql.DB
		sqlDB, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		configurePool(sqlDB)
		db, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
	case "mysql":
		var dsn *mysqldriver.Config
		dsn, err = mysqldriver.ParseDSN(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql DATABASE_URL: %w", err)
		}
		dsn.ParseTime = true
		db, err = gorm.Open(mysql.Open(dsn.FormatDSN()), gcfg)
		if err == nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				configurePool(sqlDB)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a sqlite database with error translation and migrates it.
// ":memory:" databases are pinned to a single connection, otherwise each
// pooled connection would see its own empty database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.APIKey{},
		&models.Category{},
		&models.Habit{},
		&models.Completion{},
		&models.UserProfile{},
		&models.UserAchievement{},
		&models.JournalEntry{},
		&models.Milestone{},
		&models.Reminder{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}
