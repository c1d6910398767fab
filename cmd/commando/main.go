package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bradykim7/commando/internal/bot"
	"github.com/bradykim7/commando/internal/storage"
	"github.com/bradykim7/commando/pkg/commando"
	"github.com/bradykim7/commando/pkg/config"
	"github.com/bradykim7/commando/pkg/localize"
	"github.com/bradykim7/commando/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New("commando", logger.Options{
		Dir:         cfg.LogDir,
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Create context that will be canceled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Bot error", zap.Error(err))
	}
	log.Info("Discord bot shut down successfully")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := storage.NewMongoDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			log.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()

	bundle, err := localize.NewBundle(cfg.DefaultLocale)
	if err != nil {
		return err
	}
	if cfg.LocalesDir != "" {
		if err := localize.LoadDir(bundle, cfg.LocalesDir); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := commando.NewMetrics(reg)
	if err != nil {
		return err
	}

	discordBot, err := bot.New(cfg, log, bot.Deps{
		Prefixes:  storage.NewGuildSettingsRepository(db.Collection(storage.GuildSettingsCollection), log),
		Localizer: localize.New(bundle, cfg.DefaultLocale),
		Metrics:   metrics,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return discordBot.Start(ctx)
	})

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info("Serving metrics", zap.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	log.Info("Starting bot", zap.String("environment", cfg.Environment))
	return g.Wait()
}
