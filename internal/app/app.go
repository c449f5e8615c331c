package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/rabukhader/Ajjawi-Website/internal/cache"
	"github.com/rabukhader/Ajjawi-Website/internal/catalog"
	"github.com/rabukhader/Ajjawi-Website/internal/domain/brand"
	"github.com/rabukhader/Ajjawi-Website/internal/handler"
	"github.com/rabukhader/Ajjawi-Website/internal/upstream"
	"github.com/rabukhader/Ajjawi-Website/pkg/health"
	"github.com/rabukhader/Ajjawi-Website/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("upstream", cfg.UpstreamURL),
		zap.String("brand_sort", cfg.BrandSort),
	)

	// Response cache: Redis when configured, no-op otherwise.
	var store cache.Cache = cache.Noop{}
	var redisCache *cache.Redis
	if cfg.RedisURL != "" {
		var err error
		redisCache, err = cache.NewRedis(cfg.RedisURL)
		if err != nil {
			return errors.Wrap(err, "create redis cache")
		}
		defer func() { _ = redisCache.Close() }()
		store = redisCache
	}

	// Upstream catalog client with an instrumented transport.
	client := upstream.New(cfg.UpstreamURL,
		upstream.WithHTTPClient(&http.Client{
			Timeout: cfg.UpstreamTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithTracerProvider(m.TracerProvider()),
				otelhttp.WithMeterProvider(m.MeterProvider()),
			),
		}),
		upstream.WithCache(store, cfg.CacheTTL),
	)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("upstream", 5*time.Second, client.Ping)
	if redisCache != nil {
		healthSvc.AddReadinessCheck("redis", time.Second, redisCache.Ping)
	}
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Catalog service and HTTP handlers.
	svc := catalog.NewService(client, catalog.Config{
		BrandSort:        brand.SortStrategy(cfg.BrandSort),
		GroupNewProducts: cfg.GroupNewProducts,
	})
	h := handler.New(svc)

	router := mux.NewRouter()
	router.HandleFunc("/livez", healthSvc.LiveEndpoint).Methods(http.MethodGet)
	router.HandleFunc("/readyz", healthSvc.ReadyEndpoint).Methods(http.MethodGet)
	h.RegisterRoutes(router)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      35 * time.Second, // upstream fetches may run to their 30s deadline
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(router,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Accept"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
