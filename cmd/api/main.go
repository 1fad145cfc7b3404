package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"auction-registration/internal/adapter/gateway"
	httpadapter "auction-registration/internal/adapter/http"
	"auction-registration/internal/adapter/middleware"
	"auction-registration/internal/adapter/notifier"
	"auction-registration/internal/adapter/repository/mysql"
	"auction-registration/internal/config"
	acctdomain "auction-registration/internal/domain/account"
	aucdomain "auction-registration/internal/domain/auction"
	paydomain "auction-registration/internal/domain/payment"
	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/infrastructure/cache"
	"auction-registration/internal/infrastructure/db"
	"auction-registration/internal/infrastructure/metrics"
	"auction-registration/internal/usecase/approval"
	"auction-registration/internal/usecase/deposit"
	regucase "auction-registration/internal/usecase/registration"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&regdomain.Registration{},
		&paydomain.DepositPayment{},
		&aucdomain.Auction{},
		&acctdomain.User{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	unit := mysql.NewGormUoW(gdb)
	gw := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey)
	notify := notifier.NewLogNotifier()
	m := metrics.New()

	regUC := regucase.NewUsecase(unit, m)
	apprUC := approval.NewUsecase(unit, notify, m)
	depUC := deposit.NewUsecase(unit, gw, notify, m)

	h := httpadapter.NewHandler(regUC, apprUC, depUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadapter.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	h.RegisterRoutes(e, idemp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := deposit.NewSweeper(depUC, time.Duration(cfg.SweepIntervalSecs)*time.Second)
	go sweeper.Run(ctx)

	go func() {
		if err := e.Start(":" + cfg.AppPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
