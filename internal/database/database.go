package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ysugihara/inventory-scraper/internal/models"
)

// DB archives completed runs so price history survives past the sheet's
// single latest-value column.
type DB struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		pool:   pool,
		logger: slog.Default().With("component", "database"),
	}
	if err := db.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ,
		url_count INT NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS results (
		id BIGSERIAL PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES runs(id),
		source_url TEXT NOT NULL,
		price INT NOT NULL,
		stock_status TEXT NOT NULL,
		scraped_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_source_url ON results(source_url);
	CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
	`
	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// BeginRun records the start of a scrape pass and returns its run ID.
func (d *DB) BeginRun(ctx context.Context, urlCount int) (uuid.UUID, error) {
	runID := uuid.New()
	_, err := d.pool.Exec(ctx,
		`INSERT INTO runs (id, started_at, url_count) VALUES ($1, $2, $3)`,
		runID, time.Now(), urlCount,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// FinishRun stamps the run's completion time.
func (d *DB) FinishRun(ctx context.Context, runID uuid.UUID) error {
	_, err := d.pool.Exec(ctx,
		`UPDATE runs SET finished_at = $1 WHERE id = $2`,
		time.Now(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// SaveResults archives one row per scraped URL under the given run.
func (d *DB) SaveResults(ctx context.Context, runID uuid.UUID, rows []models.Row) error {
	for _, row := range rows {
		_, err := d.pool.Exec(ctx,
			`INSERT INTO results (run_id, source_url, price, stock_status, scraped_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			runID, row.SourceURL, row.Price, row.Stock.String(), row.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", row.SourceURL, err)
		}
	}
	d.logger.Info("archived results", "run", runID, "rows", len(rows))
	return nil
}

func (d *DB) Close() {
	d.pool.Close()
}
