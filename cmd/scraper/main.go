package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ysugihara/inventory-scraper/internal/browser"
	"github.com/ysugihara/inventory-scraper/internal/config"
	"github.com/ysugihara/inventory-scraper/internal/database"
	"github.com/ysugihara/inventory-scraper/internal/extract"
	"github.com/ysugihara/inventory-scraper/internal/metrics"
	"github.com/ysugihara/inventory-scraper/internal/models"
	"github.com/ysugihara/inventory-scraper/internal/publisher"
	"github.com/ysugihara/inventory-scraper/internal/ratelimit"
	"github.com/ysugihara/inventory-scraper/internal/scraper"
	"github.com/ysugihara/inventory-scraper/internal/server"
	"github.com/ysugihara/inventory-scraper/internal/sheet"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
	"github.com/ysugihara/inventory-scraper/internal/updater"
	"github.com/ysugihara/inventory-scraper/pkg/logger"
)

func main() {
	headless := flag.Bool("headless", true, "run the browser without a window")
	debug := flag.Bool("debug", false, "dump page diagnostics when no price is found")
	output := flag.String("output", "", "result CSV path (overrides OUTPUT_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.OutputPath = *output
	}
	if *debug {
		cfg.Debug = true
	}
	// The flag only overrides the HEADLESS env setting when explicitly passed.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cfg.Headless = *headless
		}
	})

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("starting inventory scraper")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
	log.Info("run complete")
}

func run(ctx context.Context, cfg *config.Config) error {
	m := metrics.New()

	if cfg.MetricsAddr != "" {
		srv := server.New(cfg.MetricsAddr, m)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	sheets := sheet.NewClient()

	urls, err := sheets.FetchSupplierURLs(ctx, cfg.SpreadsheetID, cfg.SheetGID)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		slog.Info("no supplier URLs to scrape")
		return nil
	}
	slog.Info("fetched supplier URLs", "count", len(urls))

	registry := buildRegistry(ctx, cfg, sheets, m)

	opts := browser.DefaultOptions()
	opts.Headless = cfg.Headless
	opts.Timeout = cfg.NavTimeout
	b, err := browser.New(opts)
	if err != nil {
		return err
	}
	defer b.Close()

	engine := extract.NewEngine(extract.DefaultThresholds())
	if cfg.Debug {
		engine.SetDebugReporter(extract.NewLogReporter())
	}

	s := scraper.NewSiteScraper(b, registry, engine, m)
	s.SetDelays(
		ratelimit.NewJitterDelay(cfg.MinDelay, cfg.MaxDelay),
		ratelimit.NewJitterDelay(cfg.AuctionMinDelay, cfg.AuctionMaxDelay),
	)

	var db *database.DB
	if cfg.DatabaseURL != "" {
		db, err = database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Warn("run archive unavailable, continuing without it", "error", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	rows := s.ScrapeBatch(ctx, urls)

	if err := sheet.WriteFile(cfg.OutputPath, rows); err != nil {
		slog.Error("failed to write result file", "error", err)
	} else {
		slog.Info("wrote result file", "path", cfg.OutputPath, "rows", len(rows))
	}

	if cfg.GASWebAppURL != "" {
		csvContent, err := sheet.Render(rows)
		if err != nil {
			slog.Error("failed to render result CSV", "error", err)
		} else if err := updater.New(cfg.GASWebAppURL, m).Send(ctx, csvContent); err != nil {
			slog.Error("failed to deliver results to sheet", "error", err)
		}
	}

	if db != nil {
		archiveResults(ctx, db, urls, rows)
	}

	if cfg.RedisAddr != "" {
		publishResults(ctx, cfg, rows)
	}

	return ctx.Err()
}

// buildRegistry starts from the static site table and overlays the remote
// configuration sheet when one is configured and parseable. Remote failures
// degrade to the static table rather than aborting the run.
func buildRegistry(ctx context.Context, cfg *config.Config, sheets *sheet.Client, m *metrics.Metrics) *siteconfig.Registry {
	registry := siteconfig.NewRegistry(siteconfig.FallbackConfigs(), siteconfig.DefaultConfig())

	if cfg.SupplierSheetGID == "" {
		slog.Info("no configuration sheet set, using static site table", "sites", registry.Len())
		m.ObserveConfigLoad("static")
		return registry
	}

	body, err := sheets.FetchCSV(ctx, cfg.SpreadsheetID, cfg.SupplierSheetGID)
	if err != nil {
		slog.Warn("configuration sheet unavailable, using static site table", "error", err)
		m.ObserveConfigLoad("static")
		return registry
	}

	remote, err := siteconfig.LoadCSV(bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, siteconfig.ErrNotSupplierSheet) {
			slog.Warn("configuration sheet has unexpected columns, using static site table")
		} else {
			slog.Warn("failed to parse configuration sheet, using static site table", "error", err)
		}
		m.ObserveConfigLoad("static")
		return registry
	}

	registry.Merge(remote, nil)
	slog.Info("loaded remote site configuration", "sites", registry.Len())
	m.ObserveConfigLoad("remote")
	return registry
}

func archiveResults(ctx context.Context, db *database.DB, urls []string, rows []models.Row) {
	runID, err := db.BeginRun(ctx, len(urls))
	if err != nil {
		slog.Warn("failed to record run", "error", err)
		return
	}
	if err := db.SaveResults(ctx, runID, rows); err != nil {
		slog.Warn("failed to archive results", "error", err)
		return
	}
	if err := db.FinishRun(ctx, runID); err != nil {
		slog.Warn("failed to close run record", "error", err)
	}
}

func publishResults(ctx context.Context, cfg *config.Config, rows []models.Row) {
	pub, err := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisChannel)
	if err != nil {
		slog.Warn("result publisher unavailable", "error", err)
		return
	}
	defer pub.Close()
	if err := pub.Publish(ctx, rows); err != nil {
		slog.Warn("failed to publish results", "error", err)
	}
}
