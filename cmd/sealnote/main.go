// Package main is the entry point of the application
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/sealnote/sealnote/internal/api"
	"github.com/sealnote/sealnote/internal/config"
	"github.com/sealnote/sealnote/internal/durable"
	"github.com/sealnote/sealnote/internal/hasher"
	"github.com/sealnote/sealnote/internal/linkstore"
	"github.com/sealnote/sealnote/internal/models"
	"github.com/sealnote/sealnote/internal/models/migrate"
	"github.com/sealnote/sealnote/internal/services"
)

var (
	version string
)

func shutDown(shutdowns ...func() error) chan error {
	errChan := make(chan error)

	var wg sync.WaitGroup
	for _, shutdown := range shutdowns {
		wg.Add(1)
		go func(shutdown func() error) {
			defer wg.Done()
			if err := shutdown(); err != nil {
				errChan <- err
			}
		}(shutdown)
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	return errChan
}

func scheduleJobs(
	cfg *config.Config,
	store *linkstore.Store,
	expiredNotes *services.ExpiredNoteManager,
	logger *zap.Logger,
) *cron.Cron {
	scheduler := cron.New()

	scheduler.Schedule(cron.Every(cfg.Share.SweepInterval.Std()), cron.FuncJob(func() {
		store.Sweep()
	}))

	scheduler.Schedule(cron.Every(cfg.Notes.CleanupInterval.Std()), cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := expiredNotes.DeleteExpired(ctx); err != nil {
			logger.Error("delete expired notes failed", zap.Error(err))
		}
	}))

	scheduler.Start()
	return scheduler
}

func listen(addr string, handler http.Handler, logger *zap.Logger) *http.Server {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	return httpServer
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	db, err := durable.OpenDatabaseClient(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := migrate.PrepareDatabase(ctx, db); err != nil {
		return fmt.Errorf("prepare database: %w", err)
	}

	store := linkstore.NewStore(cfg.Share.ConsumeGrace.Std(), logger)

	externalURL, err := cfg.WebExternalURL()
	if err != nil {
		return fmt.Errorf("parse external url: %w", err)
	}

	dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	notifier := services.NewMailNotifier(dialer, cfg.SMTP.From)

	noteManager := services.NewNoteManager(
		db,
		&models.NoteModel{},
		hasher.NewBcryptHasher(),
		notifier,
		externalURL,
		logger,
	)
	expiredNotes := services.NewExpiredNoteManager(db, &models.NoteModel{})

	scheduler := scheduleJobs(cfg, store, expiredNotes, logger)

	router := api.NewRouter(store, noteManager, api.HandlerConfig{
		MaxDataSize:      cfg.Server.MaxDataSize,
		WebExternalURL:   externalURL,
		DefaultExpire:    cfg.Share.DefaultExpire.Std(),
		MaxExpireSeconds: int(cfg.Share.MaxExpire.Std().Seconds()),
		RequestTimeout:   cfg.Server.RequestTimeout.Std(),
	}, logger)

	httpServer := listen(cfg.Addr(), router, logger)

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGTERM, syscall.SIGINT)
	<-termChan

	logger.Info("shutting down")

	shutdownErrors := shutDown(func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}, func() error {
		<-scheduler.Stop().Done()
		return nil
	}, func() error {
		store.Close()
		return nil
	}, func() error {
		return db.Close()
	})

	for {
		select {
		case err, ok := <-shutdownErrors:
			if !ok {
				return nil
			}
			if err != nil {
				logger.Error("shutdown error", zap.Error(err))
			}
		case <-time.After(15 * time.Second):
			return fmt.Errorf("shutdown timed out")
		}
	}
}

func main() {
	var (
		configPath   string
		queryVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the configuration file")
	flag.BoolVar(&queryVersion, "version", false, "Get version information")
	flag.Parse()

	if queryVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}
