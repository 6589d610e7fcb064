package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/db/migrations"
	"github.com/sebuszqo/FinanceTracker/internal/logging"
)

const pingTimeout = 5 * time.Second

// DBService represents a service that interacts with a database.
type DBService struct {
	DB     *sql.DB
	logger *slog.Logger
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewDBService opens the connection pool described by cfg, checks that the
// database is reachable and applies the embedded schema migrations.
func NewDBService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DBService, error) {
	if cfg.DBConnectionString == "" {
		return nil, fmt.Errorf("missing DB_CONNECTION_STRING in configuration")
	}

	db, err := sql.Open("pgx", cfg.DBConnectionString)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not connect to the database: %w", err)
	}

	s := &DBService{DB: db, logger: logging.Component(logger, logging.ComponentStorage)}
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return s, nil
}

// RunMigrations applies the embedded goose migrations.
func (s *DBService) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, s.DB, "."); err != nil {
		return err
	}
	s.logger.Info("Database migrations applied")
	return nil
}

// Health pings the database and reports its status for the readiness endpoint.
func (s *DBService) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.DB.PingContext(pingCtx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	dbStats := s.DB.Stats()
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)
	return stats
}

// Close closes the database connection.
func (s *DBService) Close() error {
	s.logger.Info("Closing database connection")
	return s.DB.Close()
}
