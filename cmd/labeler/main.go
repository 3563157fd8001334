package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clintrovert/dday-labeler/internal/api/rest"
	"github.com/clintrovert/dday-labeler/internal/github"
	"github.com/clintrovert/dday-labeler/internal/labeler"
	"github.com/clintrovert/dday-labeler/internal/leader"
	"github.com/clintrovert/dday-labeler/internal/notion"
	"github.com/clintrovert/dday-labeler/pkg/types"
)

const defaultDateProperty = "타임라인"

func main() {
	// Optional .env for local runs; in CI everything comes from the workflow.
	godotenv.Load()

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	// Get configuration from environment
	runMode := getEnv("RUN_MODE", "action")
	eventName := getEnv("GITHUB_EVENT_NAME", "")
	githubToken := getEnv("GITHUB_TOKEN", "")
	repository := getEnv("GITHUB_REPOSITORY", "")
	prNumberStr := getEnv("PR_NUMBER", "")
	notionToken := getEnv("NOTION_TOKEN", "")
	dateProperty := getEnv("NOTION_DATE_PROPERTY", defaultDateProperty)
	restPort := getEnv("REST_PORT", "8080")

	if githubToken == "" || repository == "" || notionToken == "" {
		logger.Fatal("missing one or more required environment variables: GITHUB_TOKEN, GITHUB_REPOSITORY, NOTION_TOKEN")
	}

	// Create GitHub client
	githubClient, err := github.NewClient(githubToken, repository, logger)
	if err != nil {
		logger.Fatal("failed to create github client", zap.Error(err))
	}

	// Create Notion client
	notionClient := notion.NewClient(notionToken, dateProperty, logger)

	// Create reconciler and orchestrator
	reconciler := labeler.NewReconciler(githubClient, logger)
	orchestrator := leader.NewOrchestrator(notionClient, githubClient, reconciler, logger)

	switch runMode {
	case "action":
		runAction(orchestrator, eventName, repository, prNumberStr, logger)
	case "serve":
		runServer(orchestrator, repository, restPort, logger)
	default:
		logger.Fatal("unknown run mode", zap.String("run_mode", runMode))
	}
}

// runAction does one labeler run from GitHub Actions environment variables
// and exits.
func runAction(orchestrator *leader.Orchestrator, eventName, repository, prNumberStr string, logger *zap.Logger) {
	if eventName == "" {
		logger.Fatal("missing required environment variable: GITHUB_EVENT_NAME")
	}

	trigger := types.TriggerContext{
		Event:      eventName,
		Repository: repository,
	}

	if eventName == types.EventPullRequest {
		if prNumberStr == "" {
			logger.Fatal("missing required environment variable: PR_NUMBER")
		}
		prNumber, err := strconv.Atoi(prNumberStr)
		if err != nil {
			logger.Fatal("invalid PR_NUMBER", zap.String("pr_number", prNumberStr), zap.Error(err))
		}
		trigger.PRNumber = prNumber
	}

	if err := orchestrator.Run(context.Background(), trigger); err != nil {
		logger.Fatal("labeler run failed", zap.Error(err))
	}
}

// runServer exposes the labeler over HTTP and blocks until interrupted.
func runServer(orchestrator *leader.Orchestrator, repository, restPort string, logger *zap.Logger) {
	restHandler := rest.NewHandler(orchestrator, repository, logger)

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		restHandler.RegisterRoutes(r)
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	restAddr := fmt.Sprintf(":%s", restPort)
	restServer := &http.Server{
		Addr:    restAddr,
		Handler: router,
	}

	go func() {
		logger.Info("starting REST API server", zap.String("address", restAddr))
		if err := restServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start REST server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	restServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
