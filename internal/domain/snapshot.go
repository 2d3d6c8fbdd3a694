package domain

// StoreCandidate describes one table to probe inside a snapshot store:
// the table name and the column holding the peer label for that domain.
// The probing policy is an ordered list of candidates interpreted
// generically, not per-table branches.
type StoreCandidate struct {
	Table       string
	LabelColumn string
}

// NewsStoreCandidates is the probe order for daily news snapshots.
func NewsStoreCandidates() []StoreCandidate {
	return []StoreCandidate{
		{Table: "news_items", LabelColumn: "source_name"},
		{Table: "titles", LabelColumn: "source_name"},
		{Table: "news", LabelColumn: "source_name"},
		{Table: "items", LabelColumn: "source_name"},
	}
}

// RSSStoreCandidates is the probe order for daily RSS snapshots.
func RSSStoreCandidates() []StoreCandidate {
	return []StoreCandidate{
		{Table: "rss_items", LabelColumn: "feed_name"},
		{Table: "items", LabelColumn: "feed_name"},
		{Table: "titles", LabelColumn: "feed_name"},
	}
}
