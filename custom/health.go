package custom

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"retail.GO/api"
	"retail.GO/cmd"
	"retail.GO/config"
)

// Version is overridden at build time with -ldflags "-X retail.GO/custom.Version=...".
var Version = "dev"

func init() {
	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintf(c.OutOrStdout(), "%s %s\n", config.LoadAppConfig().AppName, Version)
		},
	})

	// HTTP route
	api.RegisterRoute(RegisterHealthRoute)
}

// RegisterHealthRoute mounts GET /health, reporting database and Redis reachability.
func RegisterHealthRoute(e *echo.Echo, db *gorm.DB) {
	e.GET("/health", func(c echo.Context) error {
		status := http.StatusOK
		body := echo.Map{"status": "ok", "version": Version, "redis": "disabled"}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := pingDB(ctx, db); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = err.Error()
		} else {
			body["database"] = "ok"
		}
		if config.RedisClient != nil {
			if err := config.RedisClient.Ping(ctx).Err(); err != nil {
				body["redis"] = err.Error()
			} else {
				body["redis"] = "ok"
			}
		}
		return c.JSON(status, body)
	})
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
