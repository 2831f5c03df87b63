package model

import "time"

const DateLayout = "2006-01-02"

type Article struct {
	Title string
	Link  string
	Date  time.Time
}

// RunStats describes one aggregation run. It is reported, never persisted.
type RunStats struct {
	FeedArticles    int
	ArchiveArticles int
	Duplicates      int
	PagesFetched    int
	PagesFailed     int
	FeedFailed      bool
	Total           int
	Oldest          time.Time
	Newest          time.Time
	Elapsed         time.Duration
}

func (s RunStats) Span() string {
	if s.Total == 0 {
		return ""
	}
	return s.Oldest.Format(DateLayout) + " to " + s.Newest.Format(DateLayout)
}
