package config

import (
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName     string
	Port        string
	Env         string
	Debug       bool
	LogLevel    string
	LogFormat   string
	AutoMigrate bool
	CacheTTL    time.Duration
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() *Config {
	once.Do(func() {
		AppConfig = &Config{
			AppName:     GetEnv("APP_NAME", "retail.GO"),
			Port:        GetEnv("PORT", "8080"),
			Env:         GetEnv("APP_ENV", "dev"),
			Debug:       GetEnvBool("DEBUG", false),
			LogLevel:    GetEnv("LOG_LEVEL", "info"),
			LogFormat:   GetEnv("LOG_FORMAT", "text"),
			AutoMigrate: GetEnvBool("DB_AUTO_MIGRATE", false),
			CacheTTL:    GetEnvDuration("CACHE_TTL", time.Minute),
		}
	})
	return AppConfig
}
