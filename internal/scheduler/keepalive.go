package scheduler

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimebot/internal/metrics"
)

// KeepAlive requests the service's own public URL on a fixed cadence so the
// hosting platform does not idle it. The response is ignored.
type KeepAlive struct {
	Logger   *zap.Logger
	URL      string
	Interval time.Duration
	Client   *http.Client
	Metrics  *metrics.Metrics
}

func NewKeepAlive(logger *zap.Logger, url string, interval time.Duration, m *metrics.Metrics) *KeepAlive {
	if interval <= 0 {
		interval = 4 * time.Minute
	}
	return &KeepAlive{
		Logger:   logger,
		URL:      url,
		Interval: interval,
		Client:   &http.Client{Timeout: 5 * time.Second},
		Metrics:  m,
	}
}

func (k *KeepAlive) Run(ctx context.Context) {
	if k.URL == "" {
		k.Logger.Info("keepalive_disabled")
		return
	}
	t := time.NewTicker(k.Interval)
	defer t.Stop()

	k.pingOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			k.Logger.Info("keepalive_stopped")
			return
		case <-t.C:
			k.pingOnce(ctx)
		}
	}
}

func (k *KeepAlive) pingOnce(ctx context.Context) {
	err := k.get(ctx)
	k.Metrics.ObserveKeepAlive(err)
	if err != nil {
		k.Logger.Warn("keepalive_error", zap.String("url", k.URL), zap.Error(err))
		return
	}
	k.Logger.Debug("keepalive_sent", zap.String("url", k.URL))
}

func (k *KeepAlive) get(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.URL, nil)
	if err != nil {
		return err
	}
	resp, err := k.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
