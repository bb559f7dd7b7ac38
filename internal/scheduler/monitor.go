package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimebot/internal/domain"
	"github.com/hamed0406/uptimebot/internal/metrics"
	"github.com/hamed0406/uptimebot/internal/notify"
	"github.com/hamed0406/uptimebot/internal/probe"
	"github.com/hamed0406/uptimebot/internal/repo"
)

type Monitor struct {
	Logger      *zap.Logger
	Targets     []domain.Target
	Store       repo.StateStore
	Fetcher     probe.Fetcher
	Classifier  probe.Classifier
	Notifier    notify.Notifier
	Destination string
	Interval    time.Duration
	Metrics     *metrics.Metrics
	Now         func() time.Time
}

func NewMonitor(
	logger *zap.Logger,
	targets []domain.Target,
	store repo.StateStore,
	fetcher probe.Fetcher,
	classifier probe.Classifier,
	notifier notify.Notifier,
	destination string,
	interval time.Duration,
	m *metrics.Metrics,
) *Monitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if notifier == nil {
		notifier = notify.Nop{Logger: logger}
	}
	return &Monitor{
		Logger:      logger,
		Targets:     targets,
		Store:       store,
		Fetcher:     fetcher,
		Classifier:  classifier,
		Notifier:    notifier,
		Destination: destination,
		Interval:    interval,
		Metrics:     m,
		Now:         time.Now,
	}
}

// Run checks every target, sleeps Interval, and repeats until ctx is
// cancelled. The sleep starts after the cycle ends, so cycles drift by the
// time spent probing.
func (m *Monitor) Run(ctx context.Context) {
	m.Logger.Info("monitor_started",
		zap.Int("targets", len(m.Targets)),
		zap.Duration("interval", m.Interval),
	)
	for {
		m.RunOnce(ctx)

		timer := time.NewTimer(m.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			m.Logger.Info("monitor_stopped")
			return
		case <-timer.C:
		}
	}
}

// RunOnce performs a single cycle over the registry, in order.
func (m *Monitor) RunOnce(ctx context.Context) {
	for _, t := range m.Targets {
		if ctx.Err() != nil {
			return
		}
		m.checkTarget(ctx, t)
	}
}

func (m *Monitor) checkTarget(ctx context.Context, t domain.Target) {
	defer func() {
		if r := recover(); r != nil {
			m.Logger.Error("check_panic",
				zap.String("target", t.Name),
				zap.String("url", t.URL),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	resp := m.Fetcher.Fetch(ctx, t.URL)
	res := m.Classifier.Evaluate(resp)

	before, ok := m.Store.Record(t.URL, res.Up, m.Now())
	if !ok {
		m.Logger.Warn("check_unregistered_target", zap.String("url", t.URL))
		return
	}
	ev := Decide(before, res.Up)
	m.Metrics.ObserveCheck(t.Name, res.Reason, res.Up)

	m.Logger.Info("target_checked",
		zap.String("target", t.Name),
		zap.String("url", t.URL),
		zap.Stringer("status", domain.StatusFromBool(res.Up)),
		zap.Stringer("previous", before),
		zap.Stringer("event", ev),
		zap.String("reason", res.Reason),
		zap.Int("http_status", resp.StatusCode),
		zap.NamedError("probe_error", resp.Err),
	)

	if !ev.Notifies() {
		return
	}

	err := m.Notifier.Send(ctx, m.Destination, ev.Message(t, res.Up), notify.FormatHTML)
	m.Metrics.ObserveNotification(ev.String(), err)
	if err != nil {
		m.Logger.Warn("notify_failed",
			zap.String("target", t.Name),
			zap.Stringer("event", ev),
			zap.Error(err),
		)
	}
}
