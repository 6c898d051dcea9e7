package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	"jamath_backend/internals/configs"
	database "jamath_backend/internals/databases"
	pushService "jamath_backend/internals/features/notifications/push/service"
	"jamath_backend/internals/features/system/scheduler"
	authService "jamath_backend/internals/features/users/auth/service"
	"jamath_backend/internals/helpers/applog"
	"jamath_backend/internals/helpers/cache"
	middlewares "jamath_backend/internals/middlewares"
	routes "jamath_backend/internals/route"
	routeDetails "jamath_backend/internals/route/details"
)

func main() {
	log, err := applog.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), "jamath-backend")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	configs.LoadEnv(log)

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               10 * 1024 * 1024,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request id + per-request timeout; cron jobs run unbounded
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("requestid", id)

		if strings.HasPrefix(c.Path(), "/api/cron/") {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app, log)

	db := database.ConnectDB(log)
	database.TunePool(log)
	database.WarmUpQueries(log)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var sender pushService.Sender
	fcm, err := pushService.NewFCMSender(rootCtx, configs.FirebaseServiceAccount)
	if err != nil {
		log.Warn("push disabled", zap.Error(err))
		sender = pushService.DisabledSender{}
	} else {
		sender = fcm
	}

	var store cache.Cache = cache.NewMemory()
	if configs.RedisURL != "" {
		rc, err := cache.NewRedis(rootCtx, configs.RedisURL, "jamath:")
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			defer func() { _ = rc.Close() }()
			store = rc
		}
	}

	deps := routeDetails.Deps{
		DB:       db,
		Push:     pushService.NewDispatcher(sender, log.Named("push")),
		Accounts: authService.NewSupabaseAdmin(configs.SupabaseURL, configs.SupabaseServiceRoleKey, log.Named("supabase")),
		Cache:    store,
		Log:      log,
	}
	routes.SetupRoutes(app, deps)

	if configs.InternalCron {
		scheduler.NewDaily(routeDetails.NewReminderService(deps), routeDetails.NewRolloverService(deps), log).Start(rootCtx)
		log.Info("internal scheduler started")
	}

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 90 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Info("listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	database.Close()
}
