package etl

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail.GO/config"
	"retail.GO/model/entity"
	etlService "retail.GO/service/etl"
)

const csvHeader = "store_name,product_name,category,price,quantity,supplier\n"

func setupETL(t *testing.T) (*echo.Echo, *gorm.DB, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "etl_api.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := entity.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	out := filepath.Join(dir, "output")
	e := echo.New()
	Register(e.Group("/api"), db, config.ETLConfig{OutputDir: out, StoreAddress: config.DefaultStoreAddress}, nil)
	return e, db, out
}

func upload(t *testing.T, e *echo.Echo, field, content string) *httptest.ResponseRecorder {
	t.Helper()
	return uploadCtx(t, context.Background(), e, field, content)
}

func uploadCtx(t *testing.T, ctx context.Context, e *echo.Echo, field, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "products.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte(content))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/etl/import", &body).WithContext(ctx)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestImport_Upload(t *testing.T) {
	e, db, out := setupETL(t)
	rec := upload(t, e, "file", csvHeader+
		"Shop A,Widget,tools,9.99,3,Acme\n"+
		"Shop A,Gadget,tools,-5,1,Acme\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	var s etlService.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Valid != 1 || s.Errors != 1 || s.Loaded != 1 || s.StoresCreated != 1 || s.Status != entity.RunStatusSucceeded {
		t.Errorf("summary = %+v", s)
	}
	if s.Source != "products.csv" {
		t.Errorf("Source = %q", s.Source)
	}
	if _, err := os.Stat(filepath.Join(out, etlService.ErrorsFileName)); err != nil {
		t.Errorf("errors.csv: %v", err)
	}
	var n int64
	db.Model(&entity.EtlRun{}).Count(&n)
	if n != 1 {
		t.Errorf("EtlRun rows = %d, want 1", n)
	}
}

func TestImport_ClientGoneStillLoads(t *testing.T) {
	e, db, _ := setupETL(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := uploadCtx(t, ctx, e, "file", csvHeader+"Shop A,Widget,tools,9.99,3,Acme\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	var n int64
	db.Model(&entity.Product{}).Count(&n)
	if n != 1 {
		t.Errorf("products = %d, want 1", n)
	}
}

func TestImport_BadRequests(t *testing.T) {
	e, db, _ := setupETL(t)
	if rec := upload(t, e, "other", csvHeader); rec.Code != http.StatusBadRequest {
		t.Errorf("missing field status = %d", rec.Code)
	}
	rec := upload(t, e, "file", "store_name,price\nA,1\n")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "missing required columns") {
		t.Errorf("bad header status = %d body = %s", rec.Code, rec.Body)
	}

	var runs []entity.EtlRun
	db.Find(&runs)
	if len(runs) != 1 || runs[0].Status != entity.RunStatusFailed || !strings.Contains(runs[0].Error, "missing required columns") {
		t.Errorf("runs = %+v, want one failed run for the bad header", runs)
	}
}

func TestRuns_ListAndLast(t *testing.T) {
	e, _, _ := setupETL(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/etl/runs/last", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("last before any run status = %d", rec.Code)
	}

	upload(t, e, "file", csvHeader+"Shop A,Widget,tools,9.99,3,Acme\n")
	upload(t, e, "file", csvHeader+"Shop B,Widget,tools,0,3,Acme\n")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/etl/runs?limit=10", nil))
	var runs []entity.EtlRun
	json.Unmarshal(rec.Body.Bytes(), &runs)
	if rec.Code != http.StatusOK || len(runs) != 2 {
		t.Fatalf("runs status = %d body = %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/etl/runs/last", nil))
	var s etlService.Summary
	json.Unmarshal(rec.Body.Bytes(), &s)
	if rec.Code != http.StatusOK || s.RunID != runs[0].RunID {
		t.Errorf("last status = %d summary = %+v", rec.Code, s)
	}
	if s.Errors != 1 || len(s.Rejections) != 1 || s.Rejections[0].Row != 0 {
		t.Errorf("last summary rejections = %+v", s.Rejections)
	}
}

func TestSummaryFromRun_BadRejectionsLogged(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	s := summaryFromRun(&entity.EtlRun{RunID: "r1", Loaded: 2, Rejections: []byte("not json")})
	if s.Loaded != 2 || s.Rejections == nil || len(s.Rejections) != 0 {
		t.Errorf("summary = %+v", s)
	}
	if !strings.Contains(logs.String(), "stored rejections unreadable") || !strings.Contains(logs.String(), "run_id=r1") {
		t.Errorf("log = %q", logs.String())
	}
}
