package aggregator

import (
	"github.com/suzannah24/title-aggregator/internal/config"
	"github.com/suzannah24/title-aggregator/pkg/news"
)

// FromConfig wires the feed and archive clients for the configured site.
func FromConfig(cfg config.Config) (*Aggregator, error) {
	archive, err := news.NewArchiveClient(cfg.ArchiveConfig())
	if err != nil {
		return nil, err
	}
	feed := news.NewFeedClient(cfg.FeedURL, cfg.Cutoff, cfg.UserAgent, cfg.RequestTimeout)

	return NewAggregator(feed, archive, Options{
		Cutoff:  cfg.Cutoff,
		Timeout: cfg.RunTimeout,
	}), nil
}
