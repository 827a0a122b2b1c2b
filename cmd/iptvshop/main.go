package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/iptvshop/internal/auth"
	"github.com/iurnickita/iptvshop/internal/catalog"
	"github.com/iurnickita/iptvshop/internal/config"
	"github.com/iurnickita/iptvshop/internal/guard"
	"github.com/iurnickita/iptvshop/internal/handler"
	"github.com/iurnickita/iptvshop/internal/logger"
	"github.com/iurnickita/iptvshop/internal/notify"
	"github.com/iurnickita/iptvshop/internal/service"
	"github.com/iurnickita/iptvshop/internal/service/provisioner"
	"github.com/iurnickita/iptvshop/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	// redis необязателен: без него повторы ищутся только в БД
	var cache guard.Cache
	if cfg.Guard.RedisAddr != "" {
		redisCache := guard.NewRedisCache(cfg.Guard)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			zaplog.Warn("redis unavailable, duplicate cache disabled", zap.Error(err))
			redisCache.Close()
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}
	guard := guard.NewGuard(store, cache, zaplog)

	catalog, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}
	zaplog.Info("catalog loaded", zap.Int("packages", catalog.Len()))

	composer, err := notify.NewComposer()
	if err != nil {
		return err
	}
	mailer, err := notify.NewMailer(cfg.Notify)
	if err != nil {
		return err
	}

	provisioner := provisioner.NewClient(cfg.Provisioner, zaplog)
	service := service.NewService(cfg.Service, store, guard, catalog, provisioner, composer, mailer, zaplog)
	auth := auth.NewAuth(cfg.Handler.WebhookSecret)

	return handler.Serve(ctx, cfg.Handler, auth, service, zaplog)
}
