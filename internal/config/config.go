package config

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/storefront/internal/log"
)

type Application struct {
	Env  string `mapstructure:"env"  json:"env"`
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Host    string `mapstructure:"host"    json:"host"`
	Port    int    `mapstructure:"port"    json:"port"`
}

type Catalog struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"  json:"timeout"`
}

type Storage struct {
	Driver    string `mapstructure:"driver"    json:"driver"`
	Namespace string `mapstructure:"namespace" json:"namespace"`
	Path      string `mapstructure:"path"      json:"path"`
}

type Currency struct {
	Locale string `mapstructure:"locale" json:"locale"`
	Symbol string `mapstructure:"symbol" json:"symbol"`
}

type Notification struct {
	TTL time.Duration `mapstructure:"ttl" json:"ttl"`
}

type Config struct {
	Application  `mapstructure:"application"  json:"application"`
	Database     `mapstructure:"db"           json:"db"`
	Cache        `mapstructure:"cache"        json:"cache"`
	Otel         `mapstructure:"otel"         json:"otel"`
	Catalog      `mapstructure:"catalog"      json:"catalog"`
	Storage      `mapstructure:"storage"      json:"storage"`
	Currency     `mapstructure:"currency"     json:"currency"`
	Notification `mapstructure:"notification" json:"notification"`
}

const (
	StorageDriverRedis  = "redis"
	StorageDriverSqlite = "sqlite"
	StorageDriverMemory = "memory"
)

var (
	once   sync.Once
	config *Config
)

// InitConfig reads ./env/<filename>.yaml once per process and exits on failure.
func InitConfig(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main InitConfig").
			Str(log.KeyProcess, "init config").
			Str("filename", filename).
			Logger()

		logger.Info().Msg("reading config")
		cfg, err := Read("./env", filename)
		if err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(log.KeyConfig, cfg).Logger()
		logger.Info().Msg("read config")
	})
	return config
}

// Read loads <dir>/<filename>.yaml on top of the defaults. Environment variables such as
// STOREFRONT_CATALOG_BASE_URL override file values.
func Read(dir string, filename string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(filename)
	v.AddConfigPath(dir)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("storefront")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed reading config=%s with error=%w", filename, err)
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed unmarshaling config=%s with error=%w", filename, err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "production")
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8080)
	v.SetDefault("db.migration_path", "file://catalog/migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 2)
	v.SetDefault("cache.port", 6379)
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
	v.SetDefault("catalog.base_url", "http://localhost:3333")
	v.SetDefault("catalog.timeout", 5*time.Second)
	v.SetDefault("storage.driver", StorageDriverSqlite)
	v.SetDefault("storage.namespace", "@RocketShoes")
	v.SetDefault("storage.path", "storefront.db")
	v.SetDefault("currency.locale", "pt-BR")
	v.SetDefault("currency.symbol", "R$")
	v.SetDefault("notification.ttl", 5*time.Second)
}
