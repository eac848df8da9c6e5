//go:build !cli

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"retail.GO/api"
	_ "retail.GO/api/crud"
	_ "retail.GO/api/etl"
	_ "retail.GO/api/stock"
	"retail.GO/config"
	"retail.GO/core/auth"
	"retail.GO/core/logging"
	_ "retail.GO/custom"
	"retail.GO/model/entity"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	slog.Info(config.InitRedis())

	db, err := config.NewDB()
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer config.CloseDB(db)

	sqldb, err := db.DB()
	if err != nil {
		slog.Error("failed to get DB instance", "error", err)
		os.Exit(1)
	}
	if err := sqldb.Ping(); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connection successful.")

	if cfg.AutoMigrate {
		if err := entity.Migrate(db); err != nil {
			slog.Error("schema migration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Schema up to date.")
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			slog.Debug("request duration", "path", c.Path(), "ms", duration)
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, db)
	api.ApplyRoutes(e, db)

	figure.NewFigure(cfg.AppName, "", true).Print()
	fmt.Println()
	slog.Info("Server running", "port", cfg.Port, "env", cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
