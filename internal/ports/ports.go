package ports

import (
	"context"
	"time"

	"TrendDigest/internal/domain"
)

// SnapshotReader extracts normalized content lines from one loosely-specified
// snapshot store. An absent store or an incompatible schema yields an empty
// result, not an error.
type SnapshotReader interface {
	ReadLines(ctx context.Context, path string, candidates []domain.StoreCandidate) ([]domain.ContentLine, error)
}

// SnapshotSource assembles the full corpus for one calendar date across all
// configured stores.
type SnapshotSource interface {
	CollectDaily(ctx context.Context, day time.Time) (domain.DailyCorpus, error)
}

// Gate is the once-per-day idempotency check backed by the analysis cache.
// HasRunToday fails open: any unreadable or unparseable state reads as
// "has not run".
type Gate interface {
	HasRunToday() bool
	Commit(fullAnalysis string) (*domain.AnalysisRecord, error)
	Load() (*domain.AnalysisRecord, error)
}

// AnalysisEngine performs the single costly external call of the daily cycle.
type AnalysisEngine interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
}

// Dispatcher delivers a display payload through every configured channel and
// reports per-channel outcomes. One channel failing never stops the others.
type Dispatcher interface {
	DispatchAll(ctx context.Context, env domain.ReportEnvelope, reportType, mode string, payload *domain.DisplayPayload) map[string]error
}
