package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	catalogConfig "github.com/iurnickita/iptvshop/internal/catalog/config"
	guardConfig "github.com/iurnickita/iptvshop/internal/guard/config"
	handlerConfig "github.com/iurnickita/iptvshop/internal/handler/config"
	loggerConfig "github.com/iurnickita/iptvshop/internal/logger/config"
	notifyConfig "github.com/iurnickita/iptvshop/internal/notify/config"
	serviceConfig "github.com/iurnickita/iptvshop/internal/service/config"
	provisionerConfig "github.com/iurnickita/iptvshop/internal/service/provisioner/config"
	storeConfig "github.com/iurnickita/iptvshop/internal/store/config"
)

type Config struct {
	Handler     handlerConfig.Config
	Service     serviceConfig.Config
	Store       storeConfig.Config
	Logger      loggerConfig.Config
	Catalog     catalogConfig.Config
	Guard       guardConfig.Config
	Provisioner provisionerConfig.Config
	Notify      notifyConfig.Config
}

const (
	defaultServerAddr  = "localhost:8080"
	defaultProvisioner = "https://api.iptv-panel.example"
	defaultTimeout     = 15 * time.Second
	defaultSMTPPort    = 587
	dotEnvFile         = ".env"
)

// GetConfig собирает конфигурацию: умолчания, .env, флаги, переменные окружения.
func GetConfig() (Config, error) {
	// .env необязателен
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	return parse(os.Args[0], os.Args[1:], os.LookupEnv)
}

func parse(name string, args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{}
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	flags.StringVar(&cfg.Handler.ServerAddr, "a", defaultServerAddr, "server address and port")
	flags.StringVar(&cfg.Store.DBDsn, "d", "", "database DSN")
	flags.StringVar(&cfg.Logger.LogLevel, "l", "info", "log level")
	flags.StringVar(&cfg.Provisioner.BaseURL, "p", defaultProvisioner, "provisioning panel address")
	flags.DurationVar(&cfg.Provisioner.Timeout, "t", defaultTimeout, "provisioning request timeout")
	flags.StringVar(&cfg.Catalog.File, "c", "", "catalog YAML file")
	flags.StringVar(&cfg.Guard.RedisAddr, "redis", "", "redis address for the duplicate cache")
	flags.DurationVar(&cfg.Service.FulfillTimeout, "fulfill-timeout", time.Minute, "provisioning and notification budget per request")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok {
			return value
		}
		return fallback
	}

	cfg.Handler.ServerAddr = getEnv("RUN_ADDRESS", cfg.Handler.ServerAddr)
	cfg.Handler.WebhookSecret = getEnv("WEBHOOK_SECRET", "")
	cfg.Store.DBDsn = getEnv("DATABASE_URI", cfg.Store.DBDsn)
	cfg.Logger.LogLevel = getEnv("LOG_LEVEL", cfg.Logger.LogLevel)
	cfg.Catalog.File = getEnv("CATALOG_FILE", cfg.Catalog.File)

	cfg.Provisioner.BaseURL = getEnv("PROVISIONING_URL", cfg.Provisioner.BaseURL)
	cfg.Provisioner.APIKey = getEnv("PROVISIONING_API_KEY", "")
	cfg.Provisioner.TemplateID = getEnv("PROVISIONING_TEMPLATE_ID", "")
	if value, ok := lookup("PROVISIONING_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("PROVISIONING_TIMEOUT: %w", err)
		}
		cfg.Provisioner.Timeout = timeout
	}

	cfg.Guard.RedisAddr = getEnv("REDIS_ADDR", cfg.Guard.RedisAddr)
	cfg.Guard.RedisUsername = getEnv("REDIS_USERNAME", "")
	cfg.Guard.RedisPassword = getEnv("REDIS_PASSWORD", "")

	cfg.Notify.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.Notify.SMTPPort = defaultSMTPPort
	if value, ok := lookup("SMTP_PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return Config{}, fmt.Errorf("SMTP_PORT: %w", err)
		}
		cfg.Notify.SMTPPort = port
	}
	cfg.Notify.Username = getEnv("EMAIL_USER", "")
	cfg.Notify.Password = getEnv("EMAIL_PASS", "")
	cfg.Notify.From = getEnv("EMAIL_FROM", cfg.Notify.Username)
	cfg.Notify.FromName = getEnv("EMAIL_FROM_NAME", "")

	return cfg, nil
}
