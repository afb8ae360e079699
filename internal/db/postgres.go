package db

import (
  "errors"
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/cafeoi/cafeoi-backend/internal/logger"
  "github.com/cafeoi/cafeoi-backend/internal/types"
  "github.com/cafeoi/cafeoi-backend/internal/utils"
)

// ErrNotConfigured is returned when either Supabase setting is missing.
// Callers treat it as "run without persistence", not as a startup failure.
var ErrNotConfigured = errors.New("supabase connection is not configured")

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewPostgresService opens the shared connection handle from the two
// Supabase environment values. The handle lives for the whole process.
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  dbURL := utils.GetEnv("SUPABASE_DB_URL", "", log)
  serviceRoleKey := utils.GetEnv("SUPABASE_SERVICE_ROLE_KEY", "", log)
  if dbURL == "" || serviceRoleKey == "" {
    return nil, ErrNotConfigured
  }

  dsn := fmt.Sprintf("postgres://postgres:%s@%s/postgres?sslmode=require", serviceRoleKey, dbURL)

  serviceLog.Info("Connecting to Postgres...")
  gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.Profile{},
    &types.Idea{},
    &types.AIPlan{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
