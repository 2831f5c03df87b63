package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

type FeedClient struct {
	feedURL string
	cutoff  time.Time
	parser  *gofeed.Parser
}

func NewFeedClient(feedURL string, cutoff time.Time, userAgent string, timeout time.Duration) *FeedClient {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = userAgent

	return &FeedClient{
		feedURL: feedURL,
		cutoff:  cutoff,
		parser:  parser,
	}
}

func (c *FeedClient) Name() string {
	return "feed"
}

func (c *FeedClient) Collect(ctx context.Context) Result {
	res := Result{Source: c.Name(), URL: c.feedURL}

	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		res.Err = fmt.Errorf("feed fetch %s: %w", c.feedURL, err)
		slog.Error("error fetching feed", "url", c.feedURL, "error", err)
		return res
	}

	res.Articles = make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		article, ok := c.toArticle(item)
		if !ok {
			continue
		}
		res.Articles = append(res.Articles, article)
	}

	slog.Info("feed collected", "url", c.feedURL, "items", len(feed.Items), "count", len(res.Articles))
	return res
}

func (c *FeedClient) toArticle(item *gofeed.Item) (Article, bool) {
	if item == nil {
		return Article{}, false
	}

	var published *time.Time
	switch {
	case item.PublishedParsed != nil:
		published = item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = item.UpdatedParsed
	default:
		return Article{}, false
	}

	link := strings.TrimSpace(item.Link)
	if link == "" {
		return Article{}, false
	}

	pub := published.UTC()
	if !onOrAfter(pub, c.cutoff) {
		return Article{}, false
	}

	return Article{
		Title:       strings.TrimSpace(item.Title),
		Link:        link,
		PublishedAt: pub,
	}, true
}
