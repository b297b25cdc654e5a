package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devtracker/internal/bot"
	"devtracker/internal/service"
	"devtracker/internal/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the telegram bot, scheduled digests and metrics endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	var (
		sender     *bot.Sender
		notifier   tracker.Notifier     = tracker.LogNotifier{Log: logger.Named("notice")}
		digestSink service.DigestSender = service.LogDigestSender{Log: logger.Named("digest")}
	)
	if cfg.BotEnabled() {
		var err error
		sender, err = bot.NewSender(cfg.Telegram.Token, cfg.Telegram.ChatID, logger.Named("bot"))
		if err != nil {
			return err
		}
		notifier, digestSink = sender, sender
	}

	// One-shot commands may write the same slot while serve runs.
	store, slot, err := openStore(ctx, notifier, tracker.WithReloadOnWrite())
	if err != nil {
		return err
	}
	defer slot.Close()

	digest := service.NewDigestService(store)
	scheduler := service.NewSchedulerService(time.Local, logger)
	job := digest.Job(digestSink, logger.Named("digest"), 30*time.Second)
	var daily cron.EntryID
	scheduled := false
	if cfg.Digest.Time != "" {
		if daily, err = scheduler.ScheduleDaily("daily digest", cfg.Digest.Time, job); err != nil {
			return err
		}
		scheduled = true
	}
	if interval := cfg.ReportInterval(); interval > 0 {
		if _, err := scheduler.ScheduleInterval("interval digest", interval, job); err != nil {
			return err
		}
		scheduled = true
	}
	if scheduled {
		scheduler.Start()
		defer scheduler.Stop()
		if daily != 0 {
			logger.Info("daily digest scheduled", zap.Time("next", scheduler.Next(daily)))
		}
	}

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics server", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
	}

	logger.Info("devtracker started", zap.String("storage", cfg.Storage.Backend), zap.Bool("bot", sender != nil))
	if sender != nil {
		b := bot.New(sender, service.NewTaskService(store), service.NewBoardService(store), digest)
		if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		<-ctx.Done()
	}
	logger.Info("shutdown complete")
	return nil
}
