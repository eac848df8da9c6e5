package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the database selected by DB_DRIVER (mysql, sqlite, sqlserver).
func NewDB() (*gorm.DB, error) {
	dialector, err := Dialector(GetEnv("DB_DRIVER", "mysql"))
	if err != nil {
		return nil, err
	}

	logMode := logger.Warn
	switch GetEnv("GORM_LOG", "") {
	case "off":
		logMode = logger.Silent
	case "info":
		logMode = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logMode,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
}

// Dialector returns the gorm dialector for driver, reading its DSN from the environment.
func Dialector(driver string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		return mysql.Open(MySQLDSN()), nil
	case "sqlite":
		return sqlite.Open(GetEnv("SQLITE_PATH", "retail.db?_pragma=foreign_keys(1)")), nil
	case "sqlserver", "mssql":
		dsn := os.Getenv("SQLSERVER_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("SQLSERVER_DSN is required for DB_DRIVER=%s", driver)
		}
		return sqlserver.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// MySQLDSN returns MYSQL_DSN or builds one from MYSQL_USER/PASS/HOST/PORT/DB.
func MySQLDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local",
		os.Getenv("MYSQL_USER"),
		os.Getenv("MYSQL_PASS"),
		GetEnv("MYSQL_HOST", "localhost"),
		GetEnv("MYSQL_PORT", "3306"),
		GetEnv("MYSQL_DB", "DNS_RETAIL"),
	)
}

// CloseDB releases the pool behind db.
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
