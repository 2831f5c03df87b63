package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suzannah24/title-aggregator/internal/aggregator"
	"github.com/suzannah24/title-aggregator/internal/model"
)

type ArticleAggregator interface {
	Run(ctx context.Context) aggregator.Report
}

type ArticleHandler struct {
	aggregator ArticleAggregator
}

func NewArticleHandler(agg ArticleAggregator) *ArticleHandler {
	return &ArticleHandler{aggregator: agg}
}

// GetIndex renders every aggregated article as an HTML list. A run where
// every source failed renders an empty list, not an error page.
func (h *ArticleHandler) GetIndex(c *gin.Context) {
	report := h.aggregator.Run(c.Request.Context())

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Articles": toArticleResponses(report.Articles),
		"Total":    report.Stats.Total,
		"Span":     report.Stats.Span(),
	})
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	report := h.aggregator.Run(c.Request.Context())
	c.JSON(http.StatusOK, NewArticlesResponse(report))
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

func NewArticlesResponse(report aggregator.Report) ArticlesResponse {
	res := ArticlesResponse{
		Articles: toArticleResponses(report.Articles),
		Total:    report.Stats.Total,
	}
	if report.Stats.Total > 0 {
		res.Oldest = report.Stats.Oldest.Format(model.DateLayout)
		res.Newest = report.Stats.Newest.Format(model.DateLayout)
	}
	return res
}

func toArticleResponses(articles []model.Article) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, ArticleResponse{
			Title: a.Title,
			Link:  a.Link,
			Date:  a.Date.Format(model.DateLayout),
		})
	}
	return res
}
