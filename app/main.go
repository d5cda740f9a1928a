package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/umedrahimoff/techstan/app/api"
	"github.com/umedrahimoff/techstan/app/cfg"
	"github.com/umedrahimoff/techstan/app/database"
	"github.com/umedrahimoff/techstan/app/moderation"
	"github.com/umedrahimoff/techstan/app/news"
	"github.com/umedrahimoff/techstan/app/publish"
	"github.com/umedrahimoff/techstan/app/scrape"
	"github.com/umedrahimoff/techstan/app/tasks"
	"github.com/umedrahimoff/techstan/app/telegram"
)

func main() {
	// .env is optional; real deployments configure via environment
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Techstan news bot", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	sources := news.NewSourceCache(appCfg.SourcesDir)
	if err := sources.Run(); err != nil {
		slog.Error("Failed to load source configurations", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Source configurations loaded", "count", len(sources.GetSources()), "enabled", len(sources.GetEnabledSources()))

	lexicon, err := news.LoadLexicon(appCfg.KeywordsFile)
	if err != nil {
		slog.Error("Failed to load keyword lexicon", "file", appCfg.KeywordsFile, "error", err)
		os.Exit(1)
	}
	classifier := news.NewClassifier(lexicon)

	bot, err := telegram.NewBot()
	if err != nil {
		slog.Error("Failed to initialize Telegram bot", "error", err)
		os.Exit(1)
	}

	store := database.NewStateRepository(db)
	publisher := publish.NewPublisher(bot, appCfg.ChannelID, appCfg.UTMCampaign, appCfg.UTMContent)
	queue := moderation.NewQueue(store, classifier, publisher, bot, appCfg.RepublishOnFailure)

	httpClient := &http.Client{Timeout: 60 * time.Second}
	fetcher := scrape.NewFetcher(httpClient, appCfg.UserAgent)

	scheduler := tasks.NewScheduler(sources, fetcher, queue, bot)
	scheduler.Start()
	defer scheduler.Stop()

	botCtx, botCancel := context.WithCancel(context.Background())
	defer botCancel()
	go bot.Run(botCtx, queue)

	apiHandler := api.NewHandler(queue, sources, fetcher, scheduler)
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(apiHandler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Techstan news bot started", "check_interval_minutes", appCfg.CheckInterval, "channel", appCfg.ChannelID)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	botCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
