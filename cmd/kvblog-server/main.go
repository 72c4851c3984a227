package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dfryer1193/kvblog/blog/application"
	"github.com/dfryer1193/kvblog/internal/middleware"
	"github.com/dfryer1193/kvblog/internal/rest"
	"github.com/dfryer1193/kvblog/shared/config"
	gh "github.com/dfryer1193/kvblog/shared/github"
	"github.com/dfryer1193/kvblog/shared/kv"
	webhook "github.com/dfryer1193/kvblog/webhook/http"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v75/github"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := pflag.String("config", "kvblog.toml", "path to the TOML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	store, err := kv.OpenBadger(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open store")
	}
	defer store.Close()

	syncService := application.NewSyncService(store)
	queryService := application.NewQueryService(store)
	markdownRenderer := application.NewMarkdownRenderer(cfg.BaseURL)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CorsMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))

	rest.NewApi(router, queryService, syncService, markdownRenderer, cfg.DefaultLanguage)

	if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		ghClient := github.NewClient(nil)
		sourceRepo := gh.NewGithubSourceRepository(ghClient, cfg.GitHub.Owner, cfg.GitHub.Repo)

		mainBranchName, err := sourceRepo.GetDefaultBranchName(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get default branch name")
		}

		githubSync := application.NewGitHubSyncService(sourceRepo, syncService, cfg.GitHub.ContentPrefix, mainBranchName)
		defer func() {
			if err := githubSync.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to gracefully close github sync service")
			}
		}()

		webhook.NewWebhookHandler(githubSync).RegisterRoutes(router)
		log.Info().Str("repo", sourceRepo.GetRepoFullName()).Msg("Webhook sync enabled")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Info().Msg("Starting server on port :" + fmt.Sprint(cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
