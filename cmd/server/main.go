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

	"storefront-be/internal/address"
	"storefront-be/internal/apilog"
	"storefront-be/internal/assistant"
	"storefront-be/internal/category"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/courier"
	"storefront-be/internal/db"
	"storefront-be/internal/events"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/kv"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/session"
	"storefront-be/internal/user"
	"storefront-be/internal/websocket"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initStoreFunc   = initStore
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	store, closeStore, err := initStoreFunc(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	a, err := newApp(cfg, store, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.hub.Run(ctx)
	go a.limiter.Cleanup(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("storefront api listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("store", cfg.StoreDriver),
		)
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// initStore opens the configured mirror backend and returns a func releasing it.
func initStore(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		database, err := db.NewDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewPostgres(database), func() { _ = database.Close() }, nil

	case config.StoreDriverRedis:
		client, err := kv.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedis(client, "storefront"), func() { _ = client.Close() }, nil

	default:
		return kv.NewMemory(), func() {}, nil
	}
}

type app struct {
	handler http.Handler
	hub     *websocket.Hub
	limiter *middleware.RateLimiter
	closers []func() error
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logger.L().Warn("close failed", zap.Error(err))
		}
	}
}

func newApp(cfg *config.Config, store kv.Store, reg *prometheus.Registry) (*app, error) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewStorefront(reg)
	hub := websocket.NewHub()
	a := &app{hub: hub, limiter: middleware.NewRateLimiter(cfg.InternalSecretKey)}

	var client assistant.Client = assistant.StaticClient{Err: assistant.ErrNotConfigured}
	if cfg.GenAIAPIKey != "" {
		client = assistant.NewGenAIClient(cfg.GenAIAPIKey, cfg.GenAIModel, cfg.GenAIBaseURL)
	}
	stylist := assistant.New(client)

	publishers := events.Fanout{events.NewBroadcastPublisher(hub)}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		publishers = append(publishers, kafka)
		a.closers = append(a.closers, kafka.Close)
	}

	products := product.NewService(product.NewRepository(store), stylist)
	orders := order.NewService(
		order.NewRepository(store),
		courier.NewMockSyncer(cfg.CourierSyncDelay),
		publishers,
		m,
	)

	opts := checkout.DefaultOptions()
	opts.PhaseDelay = cfg.CheckoutPhaseDelay
	opts.EnforceStock = cfg.CheckoutEnforceStock
	opts.Metrics = m
	opts.Observer = func(sessionID string, phase checkout.Phase) {
		hub.Broadcast("checkout.phase", map[string]any{
			"sessionId": sessionID,
			"phase":     phase,
			"step":      phase.Step(),
		}, "checkout")
	}

	a.handler = httpapi.NewRouter(httpapi.Deps{
		Users:         user.NewService(cfg.JWTSecret),
		Sessions:      session.NewManager(store),
		Products:      products,
		Categories:    category.NewService(products),
		Addresses:     address.NewService(address.NewRepository(store)),
		Orders:        orders,
		Checkout:      checkout.NewSequencer(orders, products, opts),
		Assistant:     stylist,
		APILog:        apilog.New(apilog.Tech(cfg.APITech), cfg.APISimulatedLatency, m),
		Limiter:       a.limiter,
		Hub:           hub,
		Gatherer:      reg,
		AllowedOrigin: cfg.CORSAllowedOrigin,
		SecureCookies: cfg.IsProduction(),
	})
	return a, nil
}
