package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimebot/internal/command"
	"github.com/hamed0406/uptimebot/internal/config"
	"github.com/hamed0406/uptimebot/internal/httpapi"
	"github.com/hamed0406/uptimebot/internal/logging"
	"github.com/hamed0406/uptimebot/internal/metrics"
	"github.com/hamed0406/uptimebot/internal/notify"
	"github.com/hamed0406/uptimebot/internal/probe"
	"github.com/hamed0406/uptimebot/internal/repo/memory"
	"github.com/hamed0406/uptimebot/internal/scheduler"
	"github.com/hamed0406/uptimebot/internal/telegram"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, cfgErr := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	for _, e := range multierr.Errors(cfgErr) {
		logger.Error("config_error", zap.Error(e))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Probe client; the proxy never applies to notification delivery.
	client, err := probe.NewHTTPClient(probe.ClientConfig{
		Timeout:   cfg.ProbeTimeout,
		ProxyURL:  cfg.ProbeProxyURL,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		logger.Error("probe_proxy_invalid", zap.String("proxy", cfg.ProbeProxyURL), zap.Error(err))
		client, _ = probe.NewHTTPClient(probe.ClientConfig{Timeout: cfg.ProbeTimeout, UserAgent: cfg.UserAgent})
	}

	// Notifiers
	var (
		notifiers notify.Multi
		tg        *telegram.Client
	)
	if cfg.BotToken != "" && cfg.ChatID != "" {
		tg, err = telegram.New(cfg.BotToken, cfg.TelegramAPIURL, logger)
		if err != nil {
			logger.Error("telegram_init_failed", zap.Error(err))
		} else {
			notifiers = append(notifiers, tg)
		}
	} else {
		logger.Warn("telegram_disabled", zap.Bool("has_token", cfg.BotToken != ""), zap.Bool("has_chat_id", cfg.ChatID != ""))
	}
	if s := notify.NewSlack(cfg.SlackWebhookURL); s != nil {
		notifiers = append(notifiers, s)
	}
	var notifier notify.Notifier = notify.Nop{Logger: logger}
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	store := memory.New(cfg.Targets)

	mon := scheduler.NewMonitor(
		logger,
		cfg.Targets,
		store,
		probe.NewHTTPFetcher(client, cfg.MaxBodyBytes),
		probe.NewClassifier(cfg.MinHTMLLength, cfg.ExpectedKeyword),
		notifier,
		cfg.ChatID,
		cfg.CheckInterval,
		m,
	)
	keepAlive := scheduler.NewKeepAlive(logger, cfg.SelfURL, cfg.KeepAliveInterval, m)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); mon.Run(ctx) }()
	go func() { defer wg.Done(); keepAlive.Run(ctx) }()

	if tg != nil {
		dispatcher := command.NewDispatcher(cfg.ChatID, command.NewHandler(store, m), tg, logger)
		wg.Add(1)
		go func() { defer wg.Done(); tg.Listen(ctx, dispatcher.Dispatch) }()
	} else {
		logger.Warn("command_loop_disabled")
	}

	api := httpapi.NewServer(logger, store, notifier, cfg.ChatID, reg)
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.Router(httpapi.Limits{
			AdminKeys: cfg.AdminAPIKeys,
			TestRPM:   cfg.TestRPM,
			TestBurst: cfg.TestBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_listen_failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown_started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api_shutdown_error", zap.Error(err))
	}
	wg.Wait()
	logger.Info("shutdown_complete")
}
