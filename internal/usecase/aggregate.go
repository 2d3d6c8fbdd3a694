package usecase

import (
	"context"
	"log/slog"
	"time"

	"TrendDigest/internal/config"
	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

// Aggregator combines the per-date news and RSS snapshots into one ordered
// corpus, news lines first. It never truncates; the truncation policy is an
// analysis-input concern and lives in the orchestrator.
type Aggregator struct {
	reader  ports.SnapshotReader
	storage config.StorageConfig
	logger  *slog.Logger
}

var _ ports.SnapshotSource = (*Aggregator)(nil)

// NewAggregator wires the snapshot reader with the store layout.
func NewAggregator(reader ports.SnapshotReader, storage config.StorageConfig, log *slog.Logger) *Aggregator {
	return &Aggregator{reader: reader, storage: storage, logger: log}
}

// CollectDaily reads both stores for the given date. A store that cannot be
// read is treated as having produced nothing for the day.
func (a *Aggregator) CollectDaily(ctx context.Context, day time.Time) (domain.DailyCorpus, error) {
	var corpus domain.DailyCorpus

	news := a.readStore(ctx, a.storage.NewsStorePath(day), domain.NewsStoreCandidates())
	corpus = append(corpus, news...)

	rss := a.readStore(ctx, a.storage.RSSStorePath(day), domain.RSSStoreCandidates())
	corpus = append(corpus, rss...)

	a.debug("daily corpus assembled", "day", day.Format("2006-01-02"), "news", len(news), "rss", len(rss))
	return corpus, nil
}

func (a *Aggregator) readStore(ctx context.Context, path string, candidates []domain.StoreCandidate) []domain.ContentLine {
	lines, err := a.reader.ReadLines(ctx, path, candidates)
	if err != nil {
		a.warn("snapshot read failed", "path", path, "error", err)
		return nil
	}
	return lines
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func (a *Aggregator) warn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
