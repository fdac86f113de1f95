package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrodash/plot-api/internal/config"
	"github.com/agrodash/plot-api/internal/constants"
	"github.com/agrodash/plot-api/internal/database"
	"github.com/agrodash/plot-api/internal/handlers"
	"github.com/agrodash/plot-api/internal/logging"
	"github.com/agrodash/plot-api/internal/repository"
	"github.com/agrodash/plot-api/internal/sensors"
	"github.com/agrodash/plot-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "plot-api",
		Short:         "Farm plot management API",
		SilenceUsage:  true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate, seed and start the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply schema migrations and exit",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert reference data and the optional admin account",
			RunE:  runSeed,
		},
	)

	return root
}

// app is the state shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.GinMode)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err), zap.String("driver", cfg.DBDriver))
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
	_ = a.logger.Sync()
}

func (a *app) seedAdmin() database.SeedAdmin {
	return database.SeedAdmin{
		Name:     a.cfg.AdminName,
		Email:    a.cfg.AdminEmail,
		Password: a.cfg.AdminPassword,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if err := database.Migrate(a.db); err != nil {
		a.logger.Error("migration failed", zap.Error(err))
		return err
	}
	a.logger.Info("migrations applied", zap.String("driver", a.cfg.DBDriver))
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if err := database.Seed(a.db, a.seedAdmin()); err != nil {
		a.logger.Error("seeding failed", zap.Error(err))
		return err
	}
	a.logger.Info("reference data seeded", zap.Bool("admin", a.cfg.AdminPassword != ""))
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	gin.SetMode(a.cfg.GinMode)
	if a.cfg.UsingDevSecret() {
		a.logger.Warn("JWT_SECRET not set, using the development secret")
	}

	if err := database.Migrate(a.db); err != nil {
		a.logger.Error("migration failed", zap.Error(err))
		return err
	}
	if err := database.Seed(a.db, a.seedAdmin()); err != nil {
		a.logger.Error("seeding failed", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	deps := handlers.RouterDeps{
		DB:     a.db,
		Tokens: services.NewTokenService(a.cfg.JWTSecret, a.cfg.JWTExpiresIn),
		Public: handlers.PublicConfig{
			APIBaseURL: a.cfg.APIBaseURL,
			TilesURL:   a.cfg.TilesURL,
		},
		Logger: a.logger,
	}

	if a.cfg.SensorAPIURL != "" {
		catalog, err := repository.NewSensorRepository(a.db).List()
		if err != nil {
			a.logger.Error("failed to load sensor catalogue", zap.Error(err))
			return err
		}
		client := sensors.NewClient(a.cfg.SensorAPIURL, &http.Client{Timeout: constants.DefaultSensorFetchTimeout})
		poller := sensors.NewPoller(client, catalog, a.cfg.SensorPollInterval, a.logger.Named("sensors"))
		deps.Live = poller

		g.Go(func() error {
			poller.Run(ctx)
			return nil
		})
		a.logger.Info("sensor poller started",
			zap.String("url", a.cfg.SensorAPIURL),
			zap.Duration("interval", a.cfg.SensorPollInterval),
		)
	} else {
		a.logger.Info("SENSOR_API_URL empty, live sensor feed disabled")
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		a.logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("mode", a.cfg.GinMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
