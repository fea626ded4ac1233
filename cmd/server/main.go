package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/stratfolio/stratfolio/internal/advisor"
	"github.com/stratfolio/stratfolio/internal/api"
	"github.com/stratfolio/stratfolio/internal/auth"
	"github.com/stratfolio/stratfolio/internal/config"
	"github.com/stratfolio/stratfolio/internal/database"
	"github.com/stratfolio/stratfolio/internal/inference"
	"github.com/stratfolio/stratfolio/internal/knowledge"
	"github.com/stratfolio/stratfolio/internal/logging"
	"github.com/stratfolio/stratfolio/internal/marketdata"
	"github.com/stratfolio/stratfolio/internal/metrics"
	"github.com/stratfolio/stratfolio/internal/server"
	"log/slog"
)

const knowledgePath = "data/investment_knowledge.txt"

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting stratfolio")

	// Connect to database when configured; otherwise recommendations stay
	// in memory and inference logging is disabled.
	var db *sql.DB
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		dbCfg := database.DefaultConfig()
		dbCfg.URL = dbURL

		db, err = database.Connect(context.Background(), dbCfg)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("database connected")

		if err := database.RunMigrations(db, "./migrations", logger); err != nil {
			logger.Warn("failed to run migrations, continuing anyway", "error", err)
		}
	} else {
		logger.Info("DATABASE_URL not set, using in-memory recommendation store")
	}

	var repo api.RecommendationRepository
	var inferenceLogger *inference.Logger
	if db != nil {
		repo = database.NewRecommendationRepository(db)
		inferenceLogger = inference.NewLogger(database.NewInferenceLogRepository(db), logger)
	} else {
		repo = database.NewMemoryRecommendationRepository()
	}

	// Market data: Alpaca when credentials are present, simulated otherwise.
	var market marketdata.Provider
	if os.Getenv("APCA_API_KEY_ID") != "" {
		market = marketdata.NewAlpacaProvider()
		logger.Info("using Alpaca market data")
	} else {
		market = marketdata.NewSimulatedProvider()
		logger.Info("APCA_API_KEY_ID not set, using simulated market data")
	}

	kb, err := knowledge.Load(knowledgePath)
	if err != nil {
		logger.Error("failed to load knowledge base", "error", err)
		os.Exit(1)
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// Engine: LLM-backed when a provider key is configured, rule-based
	// mock otherwise so the service stays usable in development.
	var engine advisor.Engine
	if cfg.LLM.APIKey != "" {
		completer, err := advisor.NewCompleter(cfg.LLM, inferenceLogger)
		if err != nil {
			logger.Error("failed to init completer", "error", err)
			os.Exit(1)
		}
		engine = advisor.NewLLMEngine(completer, market, kb, collector, logger)
		logger.Info("using LLM engine", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	} else {
		engine = advisor.NewMockEngine(logger)
		logger.Warn("no LLM API key configured, using mock engine")
	}

	authConfig := auth.LoadConfigFromEnv()
	logger.Info("auth configured", "jwt_secret_set", authConfig.JWTSecret != "change-this-secret")

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", collector.Handler())

	api.SetupRoutes(mux, engine, repo, db, authConfig, logger)

	// Serve the web UI for everything the API does not claim.
	handler := server.SPAMiddleware(collector.InstrumentHandler(mux), "./web/dist", "./web/dist/index.html")

	srv := server.New(cfg.Server, logger, handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("stratfolio stopped")
}
