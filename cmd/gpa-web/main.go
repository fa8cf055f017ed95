package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"gpa-tracker/internal/config"
	"gpa-tracker/internal/coursestore"
	"gpa-tracker/internal/templating"
	"gpa-tracker/internal/tracker"
)

// application holds the application-wide dependencies for the web server.
type application struct {
	logger  *slog.Logger
	engine  *templating.Engine
	tracker *tracker.Tracker
	// The course store is single-threaded; handlers take mu around every use.
	mu sync.Mutex
}

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: ./gpa.yaml if present)")
	addr := flag.String("addr", "", "Listen address (overrides web.addr)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	if *addr != "" {
		cfg.Web.Addr = *addr
	}

	backend, err := cfg.OpenBackend()
	if err != nil {
		logger.Error("Failed to initialize storage", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	logger.Info("Using storage", "backend", cfg.Backend, "data_dir", cfg.DataDir, "key", cfg.StorageKey)

	store, err := coursestore.Open(backend, logger, coursestore.WithKey(cfg.StorageKey))
	if err != nil {
		logger.Error("Failed to load courses", "error", err)
		os.Exit(1)
	}

	engine, err := templating.NewEngine()
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}
	logger.Info("Templates parsed successfully")

	app := &application{
		logger:  logger,
		engine:  engine,
		tracker: tracker.New(store, logger),
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("Starting web server", "address", fmt.Sprintf("http://%s", cfg.Web.Addr))

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Web server stopped", "error", err)
		os.Exit(1)
	}
}
