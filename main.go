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

	"github.com/emailbuilder/emailbuilder/handlers"
	"github.com/emailbuilder/emailbuilder/internal/config"
	"github.com/emailbuilder/emailbuilder/internal/database"
	"github.com/emailbuilder/emailbuilder/internal/emailtemplate/handler"
	"github.com/emailbuilder/emailbuilder/internal/emailtemplate/repository"
	"github.com/emailbuilder/emailbuilder/internal/emailtemplate/service"
	"github.com/emailbuilder/emailbuilder/internal/layout"
	"github.com/emailbuilder/emailbuilder/internal/storage"
	"github.com/emailbuilder/emailbuilder/pkg/logger"
	"github.com/emailbuilder/emailbuilder/pkg/metrics"
	"github.com/emailbuilder/emailbuilder/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

// deps are the runtime dependencies the router is built from. Nil entries are
// optional features that are switched off.
type deps struct {
	cfg    *config.Config
	svc    service.Service
	layout *layout.Layout
	redis  *redis.Client
	ping   func(ctx context.Context) error
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// the store is mandatory: an unreachable MongoDB is fatal at startup
	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	logger.Infof("connected to MongoDB database=%s collection=%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)

	lay, err := loadLayout(cfg.Layout.Path)
	if err != nil {
		// keep serving; layout endpoints answer 500 until the file is fixed
		logger.Errorf("failed to load layout: %v", err)
		lay = nil
	}

	var opts []service.Option
	if mcfg := storage.LoadMinIOConfig(); mcfg.Enabled() {
		store, err := storage.NewMinIOStorage(ctx, mcfg)
		if err != nil {
			logger.Warnf("render archive disabled: %v", err)
		} else {
			opts = append(opts, service.WithArchiver(store))
			logger.Infof("archiving rendered templates to bucket %s", mcfg.Bucket)
		}
	}

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			rdb = nil
		} else {
			logger.Infof("connected to Redis %s", addr)
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := newRouter(deps{
		cfg:    cfg,
		svc:    service.New(repository.NewMongoRepo(col), lay, opts...),
		layout: lay,
		redis:  rdb,
		ping:   func(ctx context.Context) error { return client.Ping(ctx, nil) },
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("email template service listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("shutdown signal received: %s", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

func loadLayout(path string) (*layout.Layout, error) {
	if path == "" {
		return layout.Default()
	}
	return layout.Load(path)
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(d.cfg.Server.CORSAllowOrigin), middleware.RequestID(), gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	api := r.Group("/")
	if d.cfg.RateLimit.Enabled {
		if d.cfg.RateLimit.UseRedis && d.redis != nil {
			win := time.Duration(d.cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(d.redis, d.cfg.RateLimit.RPS, d.cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(d.cfg.RateLimit.RPS, d.cfg.RateLimit.Burst))
		}
	}
	handler.RegisterTemplateRoutes(api, d.svc)
	return r
}

// readyHandler returns 200 only when the store answers and a layout is loaded.
func readyHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := true
		status := map[string]bool{}

		status["layout"] = d.layout != nil
		if d.ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := d.ping(ctx)
			cancel()
			status["mongodb"] = err == nil
		} else {
			status["mongodb"] = false
		}
		if d.cfg.RateLimit.Enabled && d.cfg.RateLimit.UseRedis {
			status["redis"] = d.redis != nil
		}
		for _, ok := range status {
			ready = ready && ok
		}

		body := gin.H{"deps": status, "uptime": time.Since(startTime).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	}
}
