package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"feedhaven/reader/internal/articles"
	"feedhaven/reader/internal/config"
	"feedhaven/reader/internal/database"
	"feedhaven/reader/internal/feeds"
	"feedhaven/reader/internal/fetch"
	importfeeds "feedhaven/reader/internal/import"
	"feedhaven/reader/internal/server"
	"feedhaven/reader/internal/storage"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	cfg := config.DefaultConfig()

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importCmd.StringVar(&cfg.CSVPath, "csv", config.GetEnvString("READER_CSV_PATH", config.DefaultCSVPath),
		"Path to the subscriptions CSV file (env: READER_CSV_PATH)")
	importCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("READER_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: READER_DB_PATH)")

	var importLogLevelStr string
	importCmd.StringVar(&importLogLevelStr, "log-level", config.GetEnvString("READER_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: READER_LOG_LEVEL)")

	refreshCmd := flag.NewFlagSet("refresh", flag.ExitOnError)
	refreshCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("READER_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: READER_DB_PATH)")

	var refreshLogLevelStr string
	refreshCmd.StringVar(&refreshLogLevelStr, "log-level", config.GetEnvString("READER_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: READER_LOG_LEVEL)")

	refreshCmd.DurationVar(&cfg.Interval, "interval", config.GetEnvDuration("READER_INTERVAL", 0),
		"Interval between refresh cycles, 0 for one-shot mode (env: READER_INTERVAL)")

	serverCmd := flag.NewFlagSet("server", flag.ExitOnError)
	serverCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("READER_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: READER_DB_PATH)")

	serverCmd.StringVar(&cfg.ServerHost, "host", config.GetEnvString("READER_HOST", config.DefaultServerHost),
		"Host to bind the server to (env: READER_HOST)")

	serverCmd.IntVar(&cfg.ServerPort, "port", config.GetEnvInt("READER_PORT", config.DefaultServerPort),
		"Port to listen on (env: READER_PORT)")

	var serverLogLevelStr string
	serverCmd.StringVar(&serverLogLevelStr, "log-level", config.GetEnvString("READER_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: READER_LOG_LEVEL)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "import":
		importCmd.Parse(os.Args[2:])
		applyLogLevel(cfg, importLogLevelStr)

		if err := runImport(cfg); err != nil {
			log.Error().Err(err).Msg("Import failed")
			os.Exit(1)
		}

	case "refresh":
		refreshCmd.Parse(os.Args[2:])
		applyLogLevel(cfg, refreshLogLevelStr)

		if err := runRefresh(cfg); err != nil {
			log.Error().Err(err).Msg("Refresh failed")
			os.Exit(1)
		}

	case "server":
		serverCmd.Parse(os.Args[2:])
		applyLogLevel(cfg, serverLogLevelStr)

		if err := runServer(cfg); err != nil {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()
		os.Exit(0)

	default:
		log.Error().Str("command", os.Args[1]).Msg("Unknown command")
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: reader [command] [options]")
	fmt.Println("Commands: import, refresh, server")
	fmt.Println("\nFor command-specific options, use: reader [command] -h")
}

func applyLogLevel(cfg *config.Config, levelStr string) {
	if level, err := zerolog.ParseLevel(levelStr); err == nil {
		cfg.LogLevel = level
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
}

// openReader builds the full stack over the database at cfg.DBPath and
// hydrates both stores from their persisted records.
func openReader(ctx context.Context, cfg *config.Config) (*feeds.Registry, *articles.Repository, *database.DB, error) {
	dbCfg := database.NewConfig(cfg.DBPath)
	db, err := database.NewDB(dbCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	records := storage.NewRecords(storage.NewSQLiteStore(db))
	repo := articles.NewRepository(records)
	registry := feeds.NewRegistry(fetch.NewHTTPFetcher(cfg.FetchTimeout), repo, records)

	// Hydration failures are survivable: the session starts empty and
	// the next successful persist overwrites the bad record.
	if err := registry.Load(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to load persisted feeds")
	}
	if err := repo.Load(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to load persisted articles")
	}

	return registry, repo, db, nil
}

// runImport subscribes feeds listed in a CSV file.
func runImport(cfg *config.Config) error {
	ctx := context.Background()
	registry, _, db, err := openReader(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	importer := importfeeds.NewImporter(registry)
	return importer.ImportFeeds(ctx, cfg.CSVPath)
}

// runRefresh refreshes all feeds once or periodically based on configuration.
func runRefresh(cfg *config.Config) error {
	if cfg.Interval <= 0 {
		log.Info().Msg("Running in one-shot mode")
	} else {
		log.Info().Dur("interval", cfg.Interval).Msg("Running in periodic mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry, _, db, err := openReader(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()

	runCycle := func() {
		startTime := time.Now()
		registry.RefreshAllFeeds(ctx)
		failed := 0
		for _, f := range registry.Feeds() {
			if f.ErrorMessage != "" {
				failed++
			}
		}
		log.Info().
			Dur("duration", time.Since(startTime)).
			Int("feeds", len(registry.Feeds())).
			Int("failed", failed).
			Msg("Refresh cycle finished")
	}

	runCycle()
	if errors.Is(ctx.Err(), context.Canceled) {
		log.Info().Msg("Refresh cycle canceled by shutdown signal")
		return nil
	}

	if cfg.Interval <= 0 {
		log.Info().Msg("One-shot refresh completed, exiting")
		return nil
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info().
		Dur("interval", cfg.Interval).
		Time("next_run", time.Now().Add(cfg.Interval)).
		Msg("Waiting for next refresh cycle")

	for {
		select {
		case <-ticker.C:
			log.Info().Msg("Starting scheduled refresh cycle")
			runCycle()
			log.Info().
				Time("next_run", time.Now().Add(cfg.Interval)).
				Msg("Waiting for next refresh cycle")

		case <-ctx.Done():
			log.Info().Msg("Shutting down periodic refresh")
			return nil
		}
	}
}

// runServer starts the HTTP API server with the provided configuration.
func runServer(cfg *config.Config) error {
	registry, repo, db, err := openReader(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return server.RunServer(registry, repo, cfg.ListenAddr(), log.Logger, cfg.APIKey)
}
