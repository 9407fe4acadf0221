package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handoff/cmd"
	pgadapter "handoff/internal/adapters/out/postgres"
	"handoff/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = pgadapter.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	metrics.Register()

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close application", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	if err = app.CreateHTTPServer().Register(e, app.CreateIdentityResolver()); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.CreateDispatchConsumer().Run(ctx)
	})
	g.Go(func() error {
		return startWebServer(e, configs.HTTPPort)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("Service stopped", "error", err)
		return
	}
	logger.Info("Service stopped")
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file loaded, using the process environment")
	}
	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func startWebServer(e *echo.Echo, port string) error {
	err := e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
