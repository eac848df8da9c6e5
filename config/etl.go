package config

import (
	"strings"
)

// DefaultStoreAddress is stored for stores first seen in an import file.
const DefaultStoreAddress = "Address not specified"

// ETLConfig configures import passes started by cron or the HTTP upload endpoint.
type ETLConfig struct {
	InputFile    string
	OutputDir    string
	ChartFile    string
	StoreAddress string
	AMQPURL      string
	AMQPQueue    string
}

// LoadETLConfig reads ETL_* and AMQP_* variables.
func LoadETLConfig() ETLConfig {
	return ETLConfig{
		InputFile:    GetEnv("ETL_INPUT_FILE", "data/input/products_import.csv"),
		OutputDir:    GetEnv("ETL_OUTPUT_DIR", "data/output"),
		ChartFile:    GetEnv("ETL_CHART_FILE", ""),
		StoreAddress: GetEnv("ETL_STORE_ADDRESS", DefaultStoreAddress),
		AMQPURL:      GetEnv("AMQP_URL", ""),
		AMQPQueue:    GetEnv("AMQP_QUEUE", "etl.runs"),
	}
}

// CronSchedule returns CRON_<NAME> or fallback.
func CronSchedule(name, fallback string) string {
	return GetEnv("CRON_"+strings.ToUpper(name), fallback)
}

// GetAuthSkipperPaths returns route paths that bypass /api authentication.
func GetAuthSkipperPaths() []string {
	return []string{"/health", "/api/etl/runs/last"}
}
