// @title Propdeck API
// @version 1.0
// @description Commercial proposal deck rendering API

// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	v1 "github.com/luminapower/propdeck/internal/api/v1"
	"github.com/luminapower/propdeck/internal/config"
	"github.com/luminapower/propdeck/internal/domain/deck"
	"github.com/luminapower/propdeck/internal/logger"
	"github.com/luminapower/propdeck/internal/pptx"
	"github.com/luminapower/propdeck/internal/rest"
	"github.com/luminapower/propdeck/internal/service"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			newOpener,
			newServiceParams,
			service.NewProposalService,
			v1.NewProposalHandler,
			v1.NewHealthHandler,
			newHandlers,
			rest.NewRouter,
		),
		fx.Invoke(initSentry),
		fx.Invoke(startServer),
	)
	app.Run()
}

func newOpener() deck.Opener {
	return pptx.NewOpener()
}

func newServiceParams(cfg *config.Configuration, log *logger.Logger) service.ServiceParams {
	return service.ServiceParams{
		Config: cfg,
		Logger: log,
	}
}

func newHandlers(proposal *v1.ProposalHandler, health *v1.HealthHandler) rest.Handlers {
	return rest.Handlers{
		Proposal: proposal,
		Health:   health,
	}
}

func initSentry(cfg *config.Configuration, log *logger.Logger) {
	if !cfg.Sentry.Enabled || cfg.Sentry.DSN == "" {
		log.Info("sentry is disabled")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		log.Errorw("failed to initialize sentry", "error", err)
	}
}

func startServer(lc fx.Lifecycle, cfg *config.Configuration, router *gin.Engine, log *logger.Logger) {
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			sentry.Flush(2 * time.Second)
			return server.Shutdown(ctx)
		},
	})
}
