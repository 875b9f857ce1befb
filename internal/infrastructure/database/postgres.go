package database

import (
	"fmt"
	"log"
	"time"

	migrate "github.com/rubenv/sql-migrate"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// NewPostgresDB opens the meetings database with GORM
func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.Server.Environment == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MinConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connected successfully")
	return db, nil
}

func migrationSource(dir string) *migrate.FileMigrationSource {
	if dir == "" {
		dir = "migrations"
	}
	return &migrate.FileMigrationSource{Dir: dir}
}

// Migrate applies pending migrations up, or rolls back `steps` migrations when down is true.
// A zero step count means all of them.
func Migrate(db *gorm.DB, dir string, down bool, steps int) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate, error: %v", err)
	}

	direction := migrate.Up
	if down {
		direction = migrate.Down
	}
	log.Printf("🔄 Applying migrations from %s using sql-migrate...", migrationSource(dir).Dir)

	n, err := migrate.ExecMax(sqlDB, "postgres", migrationSource(dir), direction, steps)
	if err != nil {
		return n, fmt.Errorf("failed to apply migration, error: %v", err)
	}
	log.Printf("✅ Applied %d migrations!\n", n)
	return n, nil
}

// AutoMigrate runs every pending up migration
func AutoMigrate(db *gorm.DB, dir string) error {
	_, err := Migrate(db, dir, false, 0)
	return err
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("✅ Database connection closed")
	return nil
}
