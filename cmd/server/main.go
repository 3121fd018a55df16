package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/customer-order-api/internal/config"
    "github.com/iliyamo/customer-order-api/internal/database"
    "github.com/iliyamo/customer-order-api/internal/handler"
    "github.com/iliyamo/customer-order-api/internal/middleware"
    "github.com/iliyamo/customer-order-api/internal/queue"
    "github.com/iliyamo/customer-order-api/internal/repository"
    "github.com/iliyamo/customer-order-api/internal/router"
    queue_publisher "github.com/iliyamo/customer-order-api/internal/service"
    "github.com/iliyamo/customer-order-api/internal/sms"
)

func main() {
    // .env is optional; real deployments set variables in the environment.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    customers := repository.NewCustomerRepo(db)
    orders := repository.NewOrderRepo(db)

    // Redis backs the rate limiter and the list-response cache.  A nil
    // client disables both.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; cache and rate limiting disabled")
    }
    rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    listCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    // SMS worker: consumes order.placed events and notifies customers.
    smsCfg, err := config.LoadSMS()
    if err != nil {
        log.Fatalf("sms config: %v", err)
    }
    if smsCfg.Enabled {
        sender := sms.NewSender(smsCfg)
        go func() {
            if err := queue.StartOrderConsumer(sender); err != nil {
                log.Printf("sms-consumer stopped: %v", err)
            }
        }()
    }

    e := echo.New()
    e.Use(rateLimit)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
    router.RegisterCustomers(e, handler.NewCustomerHandler(users, customers, orders), cfg.JWTSecret, listCache)
    router.RegisterOrders(e, handler.NewOrderHandler(customers, orders, queue_publisher.PublishOrderPlaced), cfg.JWTSecret, listCache)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
