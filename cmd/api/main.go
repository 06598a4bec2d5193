package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nimasrn/marketplace/internal/auth"
	"github.com/nimasrn/marketplace/internal/config"
	"github.com/nimasrn/marketplace/internal/handlers"
	"github.com/nimasrn/marketplace/internal/repository"
	"github.com/nimasrn/marketplace/internal/services"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
	"github.com/nimasrn/marketplace/pkg/logger"
	"github.com/nimasrn/marketplace/pkg/pg"
	"github.com/nimasrn/marketplace/pkg/prom"
	"github.com/nimasrn/marketplace/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	sessionStore := auth.NewSessionStore(redisAdap, config.Get().SessionKeyPrefix, config.Get().SessionTTL)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	listingRepo := repository.NewListingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	walletTxnRepo := repository.NewWalletTransactionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// services
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	listingService := services.NewListingService(listingRepo)
	orderService := services.NewOrderService(orderRepo, listingRepo, userRepo, walletTxnRepo)
	walletService := services.NewWalletService(walletTxnRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, orderRepo, userRepo)
	statsService := services.NewStatsService(statsRepo)
	healthService := services.NewHealthService()

	// handlers
	authMiddleware := handlers.NewAuthMiddleware(sessionStore)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	listingHandler := handlers.NewListingHandler(listingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	walletHandler := handlers.NewWalletHandler(walletService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	statsHandler := handlers.NewStatsHandler(statsService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api")
	handlers.RegisterUserRoutes(g, userHandler, authMiddleware)
	handlers.RegisterCategoryRoutes(g, categoryHandler, authMiddleware)
	handlers.RegisterListingRoutes(g, listingHandler, authMiddleware)
	handlers.RegisterOrderRoutes(g, orderHandler, authMiddleware)
	handlers.RegisterWalletRoutes(g, walletHandler, authMiddleware)
	handlers.RegisterReviewRoutes(g, reviewHandler, authMiddleware)
	handlers.RegisterStatsRoutes(g, statsHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	go func() {
		prom.ListenAndServer(":9100", "/metrics")
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
