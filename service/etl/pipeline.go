package etl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail.GO/core/logging"
	"retail.GO/model/entity"
	"retail.GO/model/repository/etlrun"
)

// Summary describes one finished pass.
type Summary struct {
	RunID      string      `json:"run_id"`
	Source     string      `json:"source"`
	Status     string      `json:"status"`
	Valid      int         `json:"valid"`
	Errors     int         `json:"errors"`
	Rejections []Rejection `json:"rejections"`
	LoadResult
	Files      AuditFiles `json:"files"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

// Duration is the wall time of the pass.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Pipeline runs Extract, Transform, Load and report for one input.
type Pipeline struct {
	DB       *gorm.DB
	Load     LoadOptions
	Reporter *Reporter
	// Notifiers are called after the pass; their errors are logged.
	Notifiers []Notifier
	// RecordRuns stores an EtlRun row per pass.
	RecordRuns bool
}

// Run processes the file at path.
func (p *Pipeline) Run(ctx context.Context, path string) (*Summary, error) {
	t, err := Extract(path)
	return p.runExtracted(ctx, path, t, err)
}

// RunReader processes CSV data read from r; name identifies the source.
func (p *Pipeline) RunReader(ctx context.Context, name string, r io.Reader) (*Summary, error) {
	t, err := ExtractReader(name, r)
	return p.runExtracted(ctx, name, t, err)
}

// runExtracted records a failed extraction as a failed pass.
func (p *Pipeline) runExtracted(ctx context.Context, source string, t *Table, err error) (*Summary, error) {
	if err != nil {
		s := p.newSummary(source)
		p.finish(ctx, s, err, logging.ForRun(s.RunID))
		return s, err
	}
	return p.RunTable(ctx, t)
}

// RunTable processes an already extracted table.
func (p *Pipeline) RunTable(ctx context.Context, t *Table) (*Summary, error) {
	s := p.newSummary(t.Source)
	log := logging.ForRun(s.RunID)
	log.Info("etl: pass started", "source", t.Source, "rows", len(t.Rows))

	records, rejections := Transform(t)
	s.Valid = len(records)
	s.Errors = len(rejections)
	s.Rejections = rejections

	opts := p.Load
	opts.Logger = log
	res, loadErr := NewLoader(p.DB, opts).Load(ctx, records)
	if res != nil {
		s.LoadResult = *res
	}

	var auditErr error
	if p.Reporter != nil {
		rep := *p.Reporter
		rep.Logger = log
		s.Files, auditErr = rep.WriteAudit(records, rejections)
		if loadErr == nil {
			rep.Chart(len(records), len(rejections))
		}
	}

	err := errors.Join(loadErr, auditErr)
	p.finish(ctx, s, err, log)
	return s, err
}

func (p *Pipeline) newSummary(source string) *Summary {
	return &Summary{
		RunID:      uuid.New().String(),
		Source:     source,
		Rejections: []Rejection{},
		StartedAt:  time.Now(),
	}
}

func (p *Pipeline) finish(ctx context.Context, s *Summary, err error, log *slog.Logger) {
	s.FinishedAt = time.Now()
	s.Status = entity.RunStatusSucceeded
	if err != nil {
		s.Status = entity.RunStatusFailed
		s.Error = err.Error()
		log.Error("etl: pass failed", "error", err, "loaded", s.Loaded)
	} else {
		log.Info("etl: pass finished", "valid", s.Valid, "errors", s.Errors, "loaded", s.Loaded, "duration", s.Duration())
	}

	if p.RecordRuns && p.DB != nil {
		if rerr := p.recordRun(ctx, s); rerr != nil {
			log.Warn("etl: run record not saved", "error", rerr)
		}
	}
	for _, n := range p.Notifiers {
		if nerr := n.Notify(ctx, s); nerr != nil {
			log.Warn("etl: notifier failed", "notifier", fmt.Sprintf("%T", n), "error", nerr)
		}
	}
}

func (p *Pipeline) recordRun(ctx context.Context, s *Summary) error {
	rejections, err := json.Marshal(s.Rejections)
	if err != nil {
		return err
	}
	run := &entity.EtlRun{
		RunID:      s.RunID,
		Source:     s.Source,
		Status:     s.Status,
		ValidRows:  s.Valid,
		ErrorRows:  s.Errors,
		Loaded:     s.Loaded,
		Error:      s.Error,
		Rejections: rejections,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
	}
	// The pass context may already be cancelled; the audit row is still wanted.
	return etlrun.NewEtlRunRepository(p.DB).Create(context.WithoutCancel(ctx), run)
}
