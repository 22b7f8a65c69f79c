package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/api"
	"github.com/Vinodk-17/NewsExplorer/pkg/db"
	"github.com/Vinodk-17/NewsExplorer/pkg/enrich"
	"github.com/Vinodk-17/NewsExplorer/pkg/feeds"
	"github.com/Vinodk-17/NewsExplorer/pkg/ingest"
	"github.com/Vinodk-17/NewsExplorer/pkg/scrape"

	_ "github.com/mattn/go-sqlite3"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	switch os.Getenv("LOG_LEVEL") {
	case "DEBUG":
		log.SetLevel(logrus.DebugLevel)
	case "WARN":
		log.SetLevel(logrus.WarnLevel)
	case "ERROR":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	log.SetOutput(os.Stdout)
	return log
}

func main() {
	settings := feeds.LoadSettings()

	dbFlag := flag.String("db", settings.DBPath, "Path to SQLite database")
	configFlag := flag.String("config", settings.ConfigPath, "Path to YAML feed configuration (built-in defaults when empty)")
	outFlag := flag.String("out", settings.OutputDir, "Directory for CSV/JSON exports")
	addrFlag := flag.String("addr", settings.ListenAddr, "HTTP listen address")
	intervalFlag := flag.Duration("interval", settings.ScrapeInterval, "Interval between scheduled full runs")
	onceFlag := flag.Bool("once", false, "Run one full collection and exit")
	feedFlag := flag.String("feed", "", "Run a single ad hoc feed URL and exit")
	countryFlag := flag.String("country", "", "Country label for -feed")
	agencyFlag := flag.String("agency", "", "Agency label for -feed")
	flag.Parse()

	log := newLogger()

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := feeds.Load(*configFlag)
	if err != nil {
		log.WithError(err).Fatal("failed to load feed configuration")
	}

	conn, err := sql.Open("sqlite3", *dbFlag)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer conn.Close()
	if err := db.InitDB(conn); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	log.WithField("path", *dbFlag).Info("database initialized")

	store := db.NewStore(conn, log)

	// Classifiers are built once; detection stays deterministic for the
	// lifetime of the process.
	fetcher := scrape.NewFetcher(enrich.NewLinguaDetector(), enrich.NewVaderScorer(), log)
	orch := &ingest.Orchestrator{
		Fetcher: fetcher,
		Scraper: fetcher,
		Workers: settings.Workers,
		Log:     log,
	}

	exporter, err := ingest.NewExporter(*outFlag)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare output directory")
	}

	pipeline := ingest.NewPipeline(cfg, orch, store, exporter, log)

	if *feedFlag != "" {
		batch, err := pipeline.RunFeed(*feedFlag, *countryFlag, *agencyFlag)
		if err != nil {
			log.WithError(err).Fatal("single-feed run failed")
		}
		log.WithField("articles", len(batch)).Info("single-feed run completed")
		return
	}

	// Initial full run; failures are reflected in the job state and retried
	// on the next tick.
	_ = pipeline.Run(ctx)
	if *onceFlag {
		if pipeline.State() == ingest.StateFailed {
			os.Exit(1)
		}
		return
	}

	go func() {
		ticker := time.NewTicker(*intervalFlag)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = pipeline.Run(ctx)
			}
		}
	}()

	server := api.NewServer(store, pipeline, log)
	httpServer := &http.Server{Addr: *addrFlag, Handler: server.Router()}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", *addrFlag).Info("serving news API")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("http server failed")
	}
}
