package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/suzannah24/title-aggregator/internal/aggregator"
	"github.com/suzannah24/title-aggregator/internal/model"
)

type fakeAggregator struct {
	report aggregator.Report
	runs   int
}

func (f *fakeAggregator) Run(ctx context.Context) aggregator.Report {
	f.runs++
	return f.report
}

func newTestRouter(agg ArticleAggregator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(Templates())
	h := NewArticleHandler(agg)
	r.GET("/", h.GetIndex)
	r.GET("/articles", h.GetArticles)
	r.GET("/health", h.GetHealth)
	return r
}

func sampleReport() aggregator.Report {
	newest := time.Date(2023, time.May, 10, 14, 0, 0, 0, time.UTC)
	oldest := time.Date(2022, time.January, 3, 0, 0, 0, 0, time.UTC)
	return aggregator.Report{
		Articles: []model.Article{
			{Title: "Phones & tablets", Link: "https://www.theverge.com/2023/5/10/phones", Date: newest},
			{Title: "January news", Link: "https://www.theverge.com/2022/1/3/january", Date: oldest},
		},
		Stats: model.RunStats{Total: 2, Newest: newest, Oldest: oldest},
	}
}

func TestGetIndex_RendersArticles(t *testing.T) {
	agg := &fakeAggregator{report: sampleReport()}
	r := newTestRouter(agg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, agg.runs)
	assert.Equal(t, true, strings.Contains(body, "Phones &amp; tablets"))
	assert.Equal(t, true, strings.Contains(body, `href="https://www.theverge.com/2023/5/10/phones"`))
	assert.Equal(t, true, strings.Contains(body, "2023-05-10"))
	assert.Equal(t, true, strings.Contains(body, "2022-01-03 to 2023-05-10"))
	assert.Equal(t, true, strings.Index(body, "Phones") < strings.Index(body, "January news"))
}

func TestGetIndex_EmptyOnTotalFailure(t *testing.T) {
	r := newTestRouter(&fakeAggregator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "No articles found."))
}

func TestGetArticles_ReturnArticles(t *testing.T) {
	r := newTestRouter(&fakeAggregator{report: sampleReport()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, len(res.Articles))
	assert.Equal(t, "Phones & tablets", res.Articles[0].Title)
	assert.Equal(t, "2023-05-10", res.Articles[0].Date)
	assert.Equal(t, "2022-01-03", res.Oldest)
	assert.Equal(t, "2023-05-10", res.Newest)
}

func TestGetArticles_Empty(t *testing.T) {
	r := newTestRouter(&fakeAggregator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"articles":[]`))

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, "", res.Oldest)
}

func TestGetHealth_Healthy(t *testing.T) {
	agg := &fakeAggregator{}
	r := newTestRouter(agg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", res["status"])
	assert.Equal(t, 0, agg.runs)
}
