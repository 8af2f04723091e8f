package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/config"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/blog"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/cart"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/category"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/dashboard"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/medicine"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/order"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/review"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/user"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("load config")
	}
	logger.Init(logger.Config{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		FileSize:  cfg.LogFileSize,
		FileCount: cfg.LogFileCount,
		Compress:  cfg.LogCompress,
	})
	web.LoginURL = cfg.LoginURL

	// ── Backend clients ─────────────────────────────────────
	metrics := backend.NewMetrics("storefront")
	api := backend.New(backend.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.BackendTimeout,
		Retries: cfg.BackendRetries,
		RPS:     cfg.BackendRPS,
		Metrics: metrics,
	})
	authAPI := backend.New(backend.Options{
		BaseURL: cfg.AuthURL,
		Timeout: cfg.BackendTimeout,
		Retries: cfg.BackendRetries,
		RPS:     cfg.BackendRPS,
		Metrics: metrics,
	})
	authTarget, err := url.Parse(cfg.AuthURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("parse AUTH_URL")
	}
	codec := datatable.QueryCodec{DefaultLimit: cfg.DefaultPageSize, MaxLimit: cfg.MaxPageSize}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", metrics.Handler())
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// ── Phase 1: Identity ───────────────────────────────────
	authService := auth.NewService(auth.NewAPIRepository(authAPI), cfg.SessionSecret, cfg.SessionTTL)
	mw := auth.NewMiddleware(authService, cfg.SessionTTL)

	// Everything below sees the signed-in user.
	router.Group(func(r chi.Router) {
		r.Use(mw.LoadSession)
		auth.NewHandler(authService, auth.NewProxy(authTarget)).RegisterRoutes(r)

		userService := user.NewService(user.NewAPIRepository(api))
		user.NewHandler(userService, codec).RegisterRoutes(r, mw)

		// ── Phase 2: Catalog ────────────────────────────────────
		categoryRepo, err := category.NewCachedRepository(category.NewAPIRepository(api), cfg.CategoryCacheTTL, metrics)
		if err != nil {
			logger.Log.WithError(err).Fatal("category cache")
		}
		categoryService := category.NewService(categoryRepo)
		category.NewHandler(categoryService, codec).RegisterRoutes(r, mw)

		medicineRepo, err := medicine.NewCachedRepository(medicine.NewAPIRepository(api), cfg.MedicineCacheSize, cfg.MedicineCacheTTL, metrics)
		if err != nil {
			logger.Log.WithError(err).Fatal("medicine cache")
		}
		medicineService := medicine.NewService(medicineRepo)
		reviewService := review.NewService(review.NewAPIRepository(api))
		medicine.NewHandler(medicineService, categoryService, reviewService, codec).RegisterRoutes(r, mw)
		review.NewHandler(reviewService).RegisterRoutes(r, mw)
		blog.NewHandler(blog.NewService(blog.NewAPIRepository(api)), codec).RegisterRoutes(r)

		// ── Phase 3: Orders & Cart ──────────────────────────────
		orderService := order.NewService(order.NewAPIRepository(api))
		order.NewHandler(orderService, codec).RegisterRoutes(r, mw)

		cartService := cart.NewService(cart.NewAPIRepository(api), orderService)
		cart.NewHandler(cartService).RegisterRoutes(r, mw)

		// ── Phase 4: Dashboards ─────────────────────────────────
		dashboardService := dashboard.NewService(orderService, medicineService, userService, categoryService)
		dashboard.NewHandler(dashboardService).RegisterRoutes(r, mw)
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.WithField("addr", srv.Addr).Info("MediStore storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("listen")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("shutdown")
	}
	logger.Log.Info("storefront stopped")
}
