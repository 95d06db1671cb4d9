package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/topi314/gomigrate"
	"github.com/topi314/gomigrate/drivers/postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

func New(cfg Config, ttl time.Duration) (*Database, error) {
	dbx, err := sqlx.Connect("pgx", cfg.DataSourceName())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = gomigrate.Migrate(ctx, dbx, postgres.New, migrations); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db := &Database{
		db:   dbx,
		ttl:  ttl,
		done: make(chan struct{}),
	}

	go db.cleanupCache()

	return db, nil
}

type Database struct {
	db   *sqlx.DB
	ttl  time.Duration
	done chan struct{}
}

func (d *Database) Close() error {
	close(d.done)
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

func (d *Database) cleanupCache() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			d.doCleanupCache()
		}
	}
}

func (d *Database) doCleanupCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rows, err := d.DeleteExpiredCacheGroups(ctx)
	if err != nil {
		slog.Error("failed to cleanup expired cache groups", slog.Any("err", err))
		return
	}
	if rows > 0 {
		slog.Debug("Cleaned up expired cache groups", slog.Int64("rows", rows))
	}
}
