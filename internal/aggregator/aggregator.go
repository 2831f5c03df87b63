package aggregator

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/suzannah24/title-aggregator/internal/model"
	"github.com/suzannah24/title-aggregator/pkg/news"
)

type Options struct {
	Cutoff  time.Time
	Timeout time.Duration
}

type Aggregator struct {
	feed    news.FeedSource
	archive news.ArchiveSource
	opts    Options
}

func NewAggregator(feed news.FeedSource, archive news.ArchiveSource, opts Options) *Aggregator {
	return &Aggregator{feed: feed, archive: archive, opts: opts}
}

type Report struct {
	Articles []model.Article
	Stats    model.RunStats
	Errors   []error
}

// Run collects the feed, then the archive, and returns the merged list,
// newest first. Failed fetches are recorded in the report and never turn
// into a failed run.
func (a *Aggregator) Run(ctx context.Context) Report {
	start := time.Now()

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	var report Report

	feedRes := a.feed.Collect(ctx)
	if feedRes.Err != nil {
		report.Stats.FeedFailed = true
		report.Errors = append(report.Errors, feedRes.Err)
	}
	feedArticles := a.keep(feedRes.Articles)
	report.Stats.FeedArticles = len(feedArticles)
	slog.Info("found articles from feed", "source", a.feed.Name(), "count", len(feedArticles))

	var archived []news.Article
	for _, page := range a.archive.Collect(ctx) {
		if page.Err != nil {
			report.Stats.PagesFailed++
			report.Errors = append(report.Errors, page.Err)
			continue
		}
		report.Stats.PagesFetched++
		archived = append(archived, page.Articles...)
	}
	archiveArticles := a.keep(archived)
	report.Stats.ArchiveArticles = len(archiveArticles)
	slog.Info("found articles from archive pages", "source", a.archive.Name(), "count", len(archiveArticles),
		"pages", report.Stats.PagesFetched, "failed_pages", report.Stats.PagesFailed)

	report.Articles, report.Stats.Duplicates = Merge(feedArticles, archiveArticles)

	report.Stats.Total = len(report.Articles)
	if report.Stats.Total > 0 {
		report.Stats.Newest = report.Articles[0].Date
		report.Stats.Oldest = report.Articles[len(report.Articles)-1].Date
	}
	report.Stats.Elapsed = time.Since(start)

	slog.Info("total unique articles",
		"total", report.Stats.Total,
		"duplicates", report.Stats.Duplicates,
		"date_range", report.Stats.Span(),
		"elapsed", report.Stats.Elapsed.String(),
	)

	return report
}

func (a *Aggregator) keep(articles []news.Article) []model.Article {
	kept := lo.Filter(articles, func(n news.Article, _ int) bool {
		return !n.PublishedAt.Before(a.opts.Cutoff)
	})
	return lo.Map(kept, func(n news.Article, _ int) model.Article {
		return model.Article{Title: n.Title, Link: n.Link, Date: n.PublishedAt}
	})
}

// Merge concatenates primary and secondary, keeps the first record seen for
// each link and sorts the result newest first. Records from primary win over
// records from secondary with the same link. It returns the merged list and
// the number of records dropped as duplicates.
func Merge(primary, secondary []model.Article) ([]model.Article, int) {
	all := make([]model.Article, 0, len(primary)+len(secondary))
	all = append(all, primary...)
	all = append(all, secondary...)

	unique := lo.UniqBy(all, func(a model.Article) string {
		return a.Link
	})

	SortByDateDesc(unique)
	return unique, len(all) - len(unique)
}

// SortByDateDesc orders articles newest first; equal dates keep their order.
func SortByDateDesc(articles []model.Article) {
	slices.SortStableFunc(articles, func(a, b model.Article) int {
		return b.Date.Compare(a.Date)
	})
}
