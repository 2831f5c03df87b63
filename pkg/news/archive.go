package news

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultPrimarySelector  = "h2 a"
	DefaultFallbackSelector = ".c-entry-box--compact__title a"
)

type ArchiveConfig struct {
	BaseURL          string
	Cutoff           time.Time
	UserAgent        string
	Timeout          time.Duration
	MinDelay         time.Duration
	MaxDelay         time.Duration
	PrimarySelector  string
	FallbackSelector string
}

type ArchiveClient struct {
	cfg        ArchiveConfig
	base       *url.URL
	httpClient *http.Client
	now        func() time.Time
	wait       func(ctx context.Context, d time.Duration) error
}

func NewArchiveClient(cfg ArchiveConfig) (*ArchiveClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("archive base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("archive base url %q: must be absolute", cfg.BaseURL)
	}

	if cfg.PrimarySelector == "" {
		cfg.PrimarySelector = DefaultPrimarySelector
	}
	if cfg.FallbackSelector == "" {
		cfg.FallbackSelector = DefaultFallbackSelector
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &ArchiveClient{
		cfg:        cfg,
		base:       base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
		wait:       sleep,
	}, nil
}

func (c *ArchiveClient) Name() string {
	return "archive"
}

// PageURL returns the archive listing for one calendar month, e.g. /archives/2023/5.
func (c *ArchiveClient) PageURL(ym YearMonth) string {
	return fmt.Sprintf("%s/archives/%d/%d", c.base.String(), ym.Year, int(ym.Month))
}

// Collect walks every month from the cutoff's year up to the current month,
// one page at a time. A failing page never stops the walk; a cancelled
// context does, and the pages left unvisited are reported with its error.
func (c *ArchiveClient) Collect(ctx context.Context) []Result {
	months := Months(c.cfg.Cutoff, c.now())
	results := make([]Result, 0, len(months))

	for i, ym := range months {
		if err := ctx.Err(); err != nil {
			for _, rest := range months[i:] {
				results = append(results, Result{Source: c.Name(), URL: c.PageURL(rest), Err: err})
			}
			slog.Warn("archive scan interrupted", "remaining", len(months)-i, "error", err)
			break
		}

		res := c.fetchPage(ctx, ym)
		if res.Err != nil {
			slog.Error("error processing archive", "year", ym.Year, "month", int(ym.Month), "url", res.URL, "error", res.Err)
		}
		results = append(results, res)
	}

	return results
}

func (c *ArchiveClient) fetchPage(ctx context.Context, ym YearMonth) Result {
	pageURL := c.PageURL(ym)
	res := Result{Source: c.Name(), URL: pageURL}

	if err := c.wait(ctx, c.delay()); err != nil {
		res.Err = fmt.Errorf("archive %s: %w", pageURL, err)
		return res
	}

	slog.Info("scraping archive", "url", pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		res.Err = fmt.Errorf("archive request %s: %w", pageURL, err)
		return res
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("archive fetch %s: %w", pageURL, err)
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Errorf("archive %s: %w: %d", pageURL, ErrUnexpectedStatus, resp.StatusCode)
		return res
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		res.Err = fmt.Errorf("archive parse %s: %w", pageURL, err)
		return res
	}

	res.Articles = c.extract(doc)
	slog.Info("archive page collected", "url", pageURL, "count", len(res.Articles))
	return res
}

func (c *ArchiveClient) extract(doc *goquery.Document) []Article {
	anchors := doc.Find(c.cfg.PrimarySelector)
	if anchors.Length() == 0 {
		anchors = doc.Find(c.cfg.FallbackSelector)
	}

	articles := make([]Article, 0, anchors.Length())
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}

		link, err := ResolveLink(c.base, href)
		if err != nil {
			return
		}

		published, ok := DateFromLink(link)
		if !ok || !onOrAfter(published, c.cfg.Cutoff) {
			return
		}

		articles = append(articles, Article{
			Title:       strings.TrimSpace(s.Text()),
			Link:        link,
			PublishedAt: published,
		})
	})

	return articles
}

func (c *ArchiveClient) delay() time.Duration {
	shortest, longest := c.cfg.MinDelay, c.cfg.MaxDelay
	if longest <= shortest {
		return shortest
	}
	return shortest + time.Duration(rand.Int63n(int64(longest-shortest)+1))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
