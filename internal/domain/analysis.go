package domain

import (
	"strings"
	"time"
)

// ContentLine is a single textual unit extracted from a snapshot store row.
type ContentLine struct {
	Text        string
	SourceLabel string
}

// Render formats the line for the analysis corpus, prefixing the source
// label in brackets when one was captured.
func (l ContentLine) Render() string {
	if l.SourceLabel != "" {
		return "[" + l.SourceLabel + "] " + l.Text
	}
	return l.Text
}

// DailyCorpus is the ordered sequence of content lines collected for one
// calendar date, news lines first.
type DailyCorpus []ContentLine

// Truncate returns a prefix of at most max lines. Truncation is always a
// prefix, never a sample, to keep the analysis input deterministic.
func (c DailyCorpus) Truncate(max int) DailyCorpus {
	if max < 0 || len(c) <= max {
		return c
	}
	return c[:max]
}

// Render joins the rendered lines into a single text block.
func (c DailyCorpus) Render() string {
	rendered := make([]string, 0, len(c))
	for _, line := range c {
		rendered = append(rendered, line.Render())
	}
	return strings.Join(rendered, "\n")
}

// AnalysisRecord is the persisted daily analysis cache, at most one record
// current per calendar day. LastAnalysis is kept as the raw ISO-8601 string
// so that an unparseable timestamp is distinguishable from a missing one.
type AnalysisRecord struct {
	LastAnalysis string       `json:"last_analysis"`
	Result       AnalysisBody `json:"result"`
}

// AnalyzedAt parses the commit timestamp.
func (r AnalysisRecord) AnalyzedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, r.LastAnalysis)
}

// AnalysisBody carries the engine output. FullAnalysis is the current shape;
// the three remaining fields belong to an older record layout and are still
// readable.
type AnalysisBody struct {
	FullAnalysis         string `json:"full_analysis,omitempty"`
	CoreTrends           string `json:"core_trends,omitempty"`
	SentimentControversy string `json:"sentiment_controversy,omitempty"`
	OutlookStrategy      string `json:"outlook_strategy,omitempty"`
}

// Empty reports whether the body holds no analysis text at all.
func (b AnalysisBody) Empty() bool {
	return b.FullAnalysis == "" && b.CoreTrends == "" &&
		b.SentimentControversy == "" && b.OutlookStrategy == ""
}

// Text returns the analysis text, preferring FullAnalysis and falling back
// to the legacy three-part layout joined with blank lines.
func (b AnalysisBody) Text() string {
	if b.FullAnalysis != "" {
		return b.FullAnalysis
	}
	return strings.Join([]string{b.CoreTrends, b.SentimentControversy, b.OutlookStrategy}, "\n\n")
}

// DisplayPayload is the display-ready projection of a cached analysis. It is
// built fresh on every publish and never persisted. The shape is generically
// list-based but carries exactly one platform with at most one title.
type DisplayPayload struct {
	Platforms []PlatformSection `json:"platforms"`
	RSSFeeds  []RSSFeedSection  `json:"rss_feeds"`
}

// PlatformSection groups display titles under one platform entry.
type PlatformSection struct {
	PlatformID   string         `json:"platform_id"`
	PlatformName string         `json:"platform_name"`
	Titles       []DisplayTitle `json:"titles"`
}

// DisplayTitle is a single ranked entry inside a platform section.
type DisplayTitle struct {
	Title       string `json:"title"`
	TimeDisplay string `json:"time_display"`
	Rank        int    `json:"rank"`
}

// RSSFeedSection mirrors the platform section for feed-sourced entries.
// The analysis projection always leaves it empty.
type RSSFeedSection struct {
	FeedName string         `json:"feed_name"`
	Titles   []DisplayTitle `json:"titles"`
}

// ReportEnvelope is the primary report handed to the dispatcher alongside
// the standalone payload. The analysis publisher always sends it empty.
type ReportEnvelope struct {
	Stats     []TopicStat         `json:"stats"`
	FailedIDs []string            `json:"failed_ids"`
	NewTitles map[string][]string `json:"new_titles"`
	IDToName  map[string]string   `json:"id_to_name"`
}

// EmptyReportEnvelope builds an envelope with non-nil, empty collections so
// downstream JSON consumers see [] and {} rather than null.
func EmptyReportEnvelope() ReportEnvelope {
	return ReportEnvelope{
		Stats:     []TopicStat{},
		FailedIDs: []string{},
		NewTitles: map[string][]string{},
		IDToName:  map[string]string{},
	}
}

// TopicStat is one entry of the stats structure the analysis engine accepts.
type TopicStat struct {
	Word   string      `json:"word"`
	Titles []StatTitle `json:"titles"`
}

// StatTitle is a single title inside a topic stat.
type StatTitle struct {
	Title      string `json:"title"`
	SourceName string `json:"source_name"`
}

// AnalysisRequest is a single engine invocation. The system prompt travels
// with the request so a one-off prompt never mutates shared engine state.
type AnalysisRequest struct {
	SystemPrompt string
	UserPrompt   string
	ReportMode   string
	ReportType   string
	Platforms    []string
	Stats        []TopicStat
}

// AnalysisResult mirrors the engine's reply contract. Success=false with a
// populated Err describes an engine-reported failure, as opposed to a
// transport error.
type AnalysisResult struct {
	Success    bool
	CoreTrends string
	Err        string
}
