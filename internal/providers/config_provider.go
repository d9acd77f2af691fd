package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"kgsite/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

const AppName = "kenetg-backend"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setDefaults(v)

	v.BindEnv("logger.level", "KG_LOG_LEVEL")
	v.BindEnv("webServer.host", "BACKEND_BIND_HOST")
	v.BindEnv("webServer.port", "BACKEND_PORT")
	v.BindEnv("storage.driver", "KG_STORAGE_DRIVER")
	v.BindEnv("storage.path", "KG_STORAGE_PATH")
	v.BindEnv("geo.enabled", "KG_GEO_ENABLED")
	v.BindEnv("geo.endpoint", "KG_GEO_ENDPOINT")
	v.BindEnv("cache.enabled", "KG_CACHE_ENABLED")
	v.BindEnv("cache.size", "KG_CACHE_SIZE")
	v.BindEnv("events.natsUrl", "KG_NATS_URL")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.saveInterval", 30*time.Second)
	v.SetDefault("geo.storageKey", "kg_geo")
	v.SetDefault("geo.requestTimeout", 8*time.Second)
	v.SetDefault("geo.maximumAge", 10*time.Minute)
	v.SetDefault("geo.fetchTimeout", 3*time.Second)
	v.SetDefault("analytics.seedKey", "kg_analytics_seed")
	v.SetDefault("analytics.defaultRange", 30)
	v.SetDefault("analytics.maxRange", 365)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("events.subjectPrefix", "kg")
	v.SetDefault("intake.ratePerSecond", 5)
	v.SetDefault("intake.burst", 10)
}
