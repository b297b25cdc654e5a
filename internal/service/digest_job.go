package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"devtracker/internal/metrics"
)

// DigestSender delivers a rendered digest.
type DigestSender interface {
	SendDigest(ctx context.Context, text string) error
}

// LogDigestSender writes digests to the log when no chat is configured.
type LogDigestSender struct {
	Log *zap.Logger
}

func (l LogDigestSender) SendDigest(_ context.Context, text string) error {
	l.Log.Info("daily digest", zap.String("text", text))
	return nil
}

// Job returns a scheduler job that renders the digest and hands it to sender.
func (s *DigestService) Job(sender DigestSender, log *zap.Logger, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := sender.SendDigest(ctx, s.Daily(time.Now())); err != nil {
			metrics.IncrementDigest("failed")
			log.Warn("send digest", zap.Error(err))
			return
		}
		metrics.IncrementDigest("ok")
	}
}
