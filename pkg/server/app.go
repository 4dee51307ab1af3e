package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CorpFin360/internal/domain/repository"
	"CorpFin360/internal/handler/api"
	svcmetrics "CorpFin360/internal/service/metrics"
	"CorpFin360/internal/service/ratelimit"
	"CorpFin360/internal/usecase"
	pkgch "CorpFin360/pkg/clickhouse"
	"CorpFin360/pkg/config"
	xhttp "CorpFin360/pkg/http"
	pkgkafka "CorpFin360/pkg/kafka"
	applogger "CorpFin360/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	analyzer   *usecase.Analyzer
	collector  *usecase.FeedCollector
	consumer   *pkgkafka.Consumer
	rh         *usecase.AnalysisRequestsHandler
	chClient   *pkgch.Client
	history    repository.HistoryStore
	publisher  repository.Publisher
	limiter    *ratelimit.Limiter
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	analyzer *usecase.Analyzer,
	collector *usecase.FeedCollector,
	consumer *pkgkafka.Consumer,
	rh *usecase.AnalysisRequestsHandler,
	chClient *pkgch.Client,
	history repository.HistoryStore,
	publisher repository.Publisher,
	limiter *ratelimit.Limiter,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		analyzer:  analyzer,
		collector: collector,
		consumer:  consumer,
		rh:        rh,
		chClient:  chClient,
		history:   history,
		publisher: publisher,
		limiter:   limiter,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.log
	if l == nil {
		l, _ = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	}

	svcmetrics.Register()

	// ensure the history schema before serving
	if a.history != nil {
		initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := a.history.Init(initCtx); err != nil {
			initCancel()
			l.Error("history schema init", applogger.Error(err))
			return err
		}
		initCancel()
	}

	handler := api.NewAnalysisEchoHandler(l, a.analyzer, a.limiter,
		float64(a.cfg.RateLimit.Rate), float64(a.cfg.RateLimit.Burst))

	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestMetrics(l, 500*time.Millisecond),
	)

	if a.limiter != nil {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					a.limiter.Prune(30 * time.Minute)
				}
			}
		}()
	}

	// Start the market feed when configured
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("feed collector error", applogger.Error(err))
			}
		}()
		l.Info("feed collector started", applogger.Strings("symbols", a.cfg.MarketFeed.Symbols))
	}

	// Start consumer if configured
	if a.consumer != nil && a.rh != nil {
		a.consumer.RegisterHandler(a.rh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.rh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx, l)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context, l *applogger.Logger) error {
	if a.collector != nil {
		if err := a.collector.Stop(); err != nil {
			l.Warn("feed collector stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			l.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
