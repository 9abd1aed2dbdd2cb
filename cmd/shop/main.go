package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/bitforge_shop/internal/httpserver"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/service"
	"github.com/Skotchmaster/bitforge_shop/pkg/authclient"
	"github.com/Skotchmaster/bitforge_shop/pkg/config"
	pkgdb "github.com/Skotchmaster/bitforge_shop/pkg/db"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	middleware "github.com/Skotchmaster/bitforge_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/bitforge_shop/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/bitforge_shop/pkg/middleware/logging"
	"github.com/Skotchmaster/bitforge_shop/pkg/search"
	"github.com/Skotchmaster/bitforge_shop/pkg/session"
)

func main() {
	cfg := config.Load(".env")
	cfg.MustValid()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	store := repo.New(db)
	if err := store.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}
	cancel()

	publisher := events.New(cfg.KafkaBrokers)

	catalogSvc := &service.CatalogService{Repo: store, Events: publisher}
	if cfg.ESURL != "" {
		es, err := search.NewClient(search.ClientConfig{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			logger.Warn("search disabled", "err", err)
		} else {
			catalogSvc.Index = search.NewProductIndex(es, cfg.ESIndex)
		}
	}

	couponSvc := &service.CouponService{Repo: store, Events: publisher}
	cartSvc := &service.CartService{Repo: store}
	checkoutSvc := &service.CheckoutService{Repo: store, Coupons: couponSvc, Events: publisher}
	orderSvc := &service.OrderService{Repo: store, Events: publisher}
	returnSvc := &service.ReturnService{Repo: store, Events: publisher}
	wishlistSvc := &service.WishlistService{Repo: store, Cart: cartSvc}

	sessions := session.NewCouponStore(cfg.SessionSecret)
	sessions.Secure = cfg.CookieSecure

	var authClient *authclient.Client
	if cfg.AuthHTTPURL != "" {
		authClient = authclient.NewClient(cfg.AuthHTTPURL)
	}

	auth := middleware.NewAuthMiddleware(cfg.JWTAccessSecret, authClient, store)
	auth.CookieSecure = cfg.CookieSecure

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		csrfCfg.Secure = cfg.CookieSecure
		e.Use(csrf.Middleware(csrfCfg))
	}

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: catalogSvc},
		CartHandler:     &httpserver.CartHTTP{Svc: cartSvc, Coupons: couponSvc, Session: sessions},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkoutSvc, Session: sessions},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderSvc, Returns: returnSvc},
		WishlistHandler: &httpserver.WishlistHTTP{Svc: wishlistSvc},
		SupplierHandler: &httpserver.SupplierHTTP{Svc: &service.SupplierService{Repo: store}},
		CouponHandler:   &httpserver.CouponHTTP{Svc: couponSvc},
		ReportHandler:   &httpserver.ReportHTTP{Svc: &service.ReportService{Repo: store}},
		ReviewHandler:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: store, Events: publisher}},
		CompareHandler:  &httpserver.CompareHTTP{Svc: &service.CompareService{Repo: store}},
		RestockHandler:  &httpserver.RestockHTTP{Svc: &service.RestockService{Repo: store, Events: publisher}},
		Auth:            auth,
		DB:              store,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("shop listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	if err := publisher.Close(); err != nil {
		logger.Warn("publisher close", "err", err)
	}
	_ = pkgdb.Close(db)

	logger.Info("shop stopped")
}
