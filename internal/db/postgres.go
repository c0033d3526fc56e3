package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/types"
  "github.com/yungbote/goalpath-backend/internal/utils"
)

type DatabaseService struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewDatabaseService connects to Postgres when POSTGRES_HOST is set and
// falls back to a local sqlite file otherwise (development mode).
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
  serviceLog := log.With("service", "DatabaseService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "", log)
  if postgresHost == "" {
    sqlitePath := utils.GetEnv("SQLITE_PATH", "goalpath.db", log)
    serviceLog.Info("POSTGRES_HOST not set, using sqlite", "path", sqlitePath)
    gdb, err := gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
    if err != nil {
      return nil, fmt.Errorf("failed to open sqlite database: %w", err)
    }
    return &DatabaseService{db: gdb, log: serviceLog}, nil
  }

  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "goalpath", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  serviceLog.Info("Connecting to Postgres...")
  gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
  }

  return &DatabaseService{db: gdb, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.Goal{},
    &types.Roadmap{},
    &types.Phase{},
    &types.Task{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *DatabaseService) DB() *gorm.DB {
  return s.db
}
