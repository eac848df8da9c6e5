package etl

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"retail.GO/api"
	"retail.GO/config"
	"retail.GO/model/entity"
	"retail.GO/model/repository/etlrun"
	etlService "retail.GO/service/etl"
)

func init() {
	api.RegisterModule(RegisterETLRoutes)
}

// importMu keeps uploads from running concurrent passes against the same output files.
var importMu sync.Mutex

// RegisterETLRoutes mounts /api/etl using ETL_* configuration.
func RegisterETLRoutes(apiGroup *echo.Group, db *gorm.DB) {
	Register(apiGroup, db, config.LoadETLConfig(), config.RedisClient)
}

// Register mounts the import and run history endpoints.
func Register(apiGroup *echo.Group, db *gorm.DB, cfg config.ETLConfig, rdb *redis.Client) {
	h := &handler{db: db, cfg: cfg, rdb: rdb, runs: etlrun.NewEtlRunRepository(db)}
	g := apiGroup.Group("/etl")

	// POST /api/etl/import – multipart field "file"
	g.POST("/import", h.importFile)
	g.GET("/runs", h.listRuns)
	g.GET("/runs/last", h.lastRun)
}

type handler struct {
	db   *gorm.DB
	cfg  config.ETLConfig
	rdb  *redis.Client
	runs *etlrun.EtlRunRepository
}

func (h *handler) importFile(c echo.Context) error {
	start := time.Now()
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	defer f.Close()

	p := etlService.NewPipeline(h.db, h.cfg, h.rdb)
	p.Load.ReuseProducts, _ = strconv.ParseBool(c.FormValue("reuse_products"))

	// A pass runs to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request().Context())
	importMu.Lock()
	summary, err := p.RunReader(ctx, fh.Filename, f)
	importMu.Unlock()

	duration := time.Since(start).Milliseconds()
	c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error(), "summary": summary})
	}
	return c.JSON(http.StatusOK, summary)
}

// statusFor reports unreadable or malformed uploads as 400.
func statusFor(err error) int {
	var pe *etlService.ParseError
	var fe *etlService.FileAccessError
	if errors.As(err, &pe) || errors.As(err, &fe) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) listRuns(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	runs, err := h.runs.List(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, runs)
}

// lastRun answers from Redis when the notifier has stored a summary, else from the EtlRun table.
func (h *handler) lastRun(c echo.Context) error {
	ctx := c.Request().Context()
	if s, ok, err := etlService.LastSummary(ctx, h.rdb); err == nil && ok {
		return c.JSON(http.StatusOK, s)
	}
	run, err := h.runs.Latest(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no ETL runs recorded"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summaryFromRun(run))
}

func summaryFromRun(run *entity.EtlRun) *etlService.Summary {
	s := &etlService.Summary{
		RunID:      run.RunID,
		Source:     run.Source,
		Status:     run.Status,
		Valid:      run.ValidRows,
		Errors:     run.ErrorRows,
		Rejections: []etlService.Rejection{},
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
	s.Loaded = run.Loaded
	if len(run.Rejections) > 0 {
		if err := json.Unmarshal(run.Rejections, &s.Rejections); err != nil {
			slog.Warn("etl: stored rejections unreadable", "run_id", run.RunID, "error", err)
		}
	}
	return s
}
