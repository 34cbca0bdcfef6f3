// @title           Document Summarizer API
// @version         1.0
// @description     Summarizes uploaded legal documents per file or across files, and searches them for a phrase.
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DocSummarizer/internal/auth"
	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/data/store"
	"github.com/akolanti/DocSummarizer/internal/handlers"
	"github.com/akolanti/DocSummarizer/internal/mcpserver"
	"github.com/akolanti/DocSummarizer/internal/middleware"
	"github.com/akolanti/DocSummarizer/internal/server"
	"github.com/akolanti/DocSummarizer/internal/summary/extract"
	"github.com/akolanti/DocSummarizer/internal/summary/llm"
	"github.com/akolanti/DocSummarizer/internal/summary/llm/gemini"
	"github.com/akolanti/DocSummarizer/internal/summary/llm/openaiLLM"
	"github.com/akolanti/DocSummarizer/internal/summary/pipeline"
	"github.com/akolanti/DocSummarizer/internal/worker"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

func main() {
	var configPath, listenAddr string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to a yaml config file")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address, overrides config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	logger_i.Init(cfg.Log)
	var logger = logger_i.NewLogger("main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	provider, err := newProvider(serviceContext, cfg.Summarizer)
	if err != nil {
		logger.Error("Summarizer provider failed to initialize. Shutting down.", "provider", cfg.Summarizer.Provider, "error", err)
		return
	}
	logger.Info("Summarizer ready", "provider", cfg.Summarizer.Provider, "model", cfg.Summarizer.Model)

	summaryService := pipeline.NewService(
		extract.NewFileExtractor(cfg.Pipeline),
		llm.NewClient(provider, cfg.Summarizer),
		cfg,
	)

	//init worker pool
	pool := worker.NewPool(cfg.Worker, worker.NewPipelineExecutor(summaryService))
	pool.Start()

	//accounts, redis first with in memory fallback
	accounts := auth.NewService(
		store.NewUserStore(serviceContext, cfg.Redis),
		store.NewSessionStore(serviceContext, cfg.Redis),
		cfg.Redis.SessionTTL,
	)

	router := server.NewRouter(
		handlers.NewHandler(pool, accounts, cfg.Pipeline),
		middleware.New(accounts, cfg),
		mcpserver.Handler(summaryService),
	)
	srv := server.CreateServer(cfg.Server, router)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		Workers:          pool,
		CloseServices:    closeExternalServices,
	}
	go srv.ShutDownHandler(shutdownParams)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			gracefulShutdown <- syscall.SIGTERM
		}
	}()

	<-stopExecution
	logger.Info("Server stopped")
}

func newProvider(ctx context.Context, cfg config.SummarizerConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewProvider(ctx, cfg)
	default:
		return openaiLLM.NewProvider(cfg)
	}
}
