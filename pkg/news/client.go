package news

import (
	"context"
	"errors"
	"time"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var ErrUnexpectedStatus = errors.New("unexpected status")

type Article struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// Result is the outcome of a single fetch: the feed, or one archive page.
// A failed fetch carries Err and no articles.
type Result struct {
	Source   string
	URL      string
	Articles []Article
	Err      error
}

func (r Result) OK() bool {
	return r.Err == nil
}

type FeedSource interface {
	Collect(ctx context.Context) Result
	Name() string
}

type ArchiveSource interface {
	Collect(ctx context.Context) []Result
	Name() string
}

// onOrAfter reports whether t is not before cutoff. A zero cutoff keeps everything.
func onOrAfter(t, cutoff time.Time) bool {
	return !t.Before(cutoff)
}
