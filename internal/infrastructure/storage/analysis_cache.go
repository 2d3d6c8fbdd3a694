package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

// RunState is the tri-state outcome of the idempotency check.
type RunState int

const (
	// StateNotRun means no analysis was committed today.
	StateNotRun RunState = iota
	// StateRan means a record was committed during the current calendar day.
	StateRan
	// StateUnknown means the cache state could not be read or parsed.
	StateUnknown
)

// AnalysisCache persists the single daily analysis record as a JSON file and
// backs the once-per-day gate. This component is the sole writer of that
// file.
type AnalysisCache struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

var _ ports.Gate = (*AnalysisCache)(nil)

// NewAnalysisCache wires the cache file path and a clock. A nil clock means
// time.Now.
func NewAnalysisCache(path string, now func() time.Time, log *slog.Logger) *AnalysisCache {
	if now == nil {
		now = time.Now
	}
	return &AnalysisCache{path: path, now: now, logger: log}
}

// Check reads the cache and classifies today's run state. Unreadable state is
// reported as such; mapping it to "not run" is the caller's decision.
func (c *AnalysisCache) Check() RunState {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return StateNotRun
	}
	if err != nil {
		c.warn("cache unreadable", "path", c.path, "error", err)
		return StateUnknown
	}

	var rec domain.AnalysisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.warn("cache corrupt", "path", c.path, "error", err)
		return StateUnknown
	}

	if rec.LastAnalysis == "" {
		return StateNotRun
	}

	at, err := rec.AnalyzedAt()
	if err != nil {
		c.warn("cache timestamp unparseable", "path", c.path, "value", rec.LastAnalysis)
		return StateUnknown
	}

	if sameCalendarDay(at.Local(), c.now()) {
		return StateRan
	}
	return StateNotRun
}

// HasRunToday maps the tri-state check to the gate contract: indeterminate
// state reads as "has not run". Losing a day's analysis is worse than an
// extra analysis call.
func (c *AnalysisCache) HasRunToday() bool {
	return c.Check() == StateRan
}

// Commit overwrites the cache with a fresh record stamped at the current
// instant. The full record is written to a temp file and renamed over the
// target; a crash mid-write is recoverable because Check fails open.
func (c *AnalysisCache) Commit(fullAnalysis string) (*domain.AnalysisRecord, error) {
	rec := &domain.AnalysisRecord{
		LastAnalysis: c.now().Format(time.RFC3339),
		Result:       domain.AnalysisBody{FullAnalysis: fullAnalysis},
	}

	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis record: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create analysis dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "analysis-*.json")
	if err != nil {
		return nil, fmt.Errorf("create temp cache: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("replace cache: %w", err)
	}

	return rec, nil
}

// Load returns the current record, or nil when the cache file does not
// exist.
func (c *AnalysisCache) Load() (*domain.AnalysisRecord, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read analysis cache: %w", err)
	}

	var rec domain.AnalysisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("parse analysis cache: %w", err)
	}

	return &rec, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (c *AnalysisCache) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
