package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/daniilsolovey/fu-news/internal/ratelimit"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePortal overrides only the calls a test needs. Anything else panics on the nil interface.
type fakePortal struct {
	Portal

	newsArticles   func(newsportal.NewsQuery) (paging.Envelope[newsportal.News], error)
	newsByID       func(string) (*newsportal.News, error)
	createNews     func(newsportal.NewsInput, int) (*newsportal.News, error)
	deleteTag      func(int) error
	newsStatistics func(time.Time, time.Time) (*newsportal.NewsStatistics, error)
	activeNews     func() ([]newsportal.News, error)
	tags           func(newsportal.TagQuery) (paging.Envelope[newsportal.Tag], error)
	deleteCategory func(int) error
}

func (f *fakePortal) Tags(_ context.Context, q newsportal.TagQuery) (paging.Envelope[newsportal.Tag], error) {
	return f.tags(q)
}

func (f *fakePortal) DeleteCategory(_ context.Context, id int) error {
	return f.deleteCategory(id)
}

func (f *fakePortal) NewsArticles(_ context.Context, q newsportal.NewsQuery) (paging.Envelope[newsportal.News], error) {
	return f.newsArticles(q)
}

func (f *fakePortal) NewsByID(_ context.Context, id string) (*newsportal.News, error) {
	return f.newsByID(id)
}

func (f *fakePortal) CreateNews(_ context.Context, in newsportal.NewsInput, authorID int) (*newsportal.News, error) {
	return f.createNews(in, authorID)
}

func (f *fakePortal) DeleteTag(_ context.Context, id int) error {
	return f.deleteTag(id)
}

func (f *fakePortal) NewsStatistics(_ context.Context, from, to time.Time) (*newsportal.NewsStatistics, error) {
	return f.newsStatistics(from, to)
}

func (f *fakePortal) ActiveNews(context.Context) ([]newsportal.News, error) {
	return f.activeNews()
}

var testTokens = newsportal.NewTokens("test-secret", "fu-news-test", time.Hour)

func newTestServer(t *testing.T, portal Portal, limiter ratelimit.Store) (*echo.Echo, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	e := RegisterRoutes(Options{
		Portal:   portal,
		Tokens:   testTokens,
		Limiter:  limiter,
		Registry: reg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return e, reg
}

func bearer(t *testing.T, id int, role newsportal.Role) string {
	t.Helper()

	token, _, err := testTokens.Issue(newsportal.Claims{AccountID: id, Email: "user@fu.edu", Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func do(e *echo.Echo, method, target, auth, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) Response {
	t.Helper()

	var resp Response
	if data != nil {
		resp.Data = data
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func sampleNews(id string) newsportal.News {
	return newsportal.News{
		News: db.News{
			ID:          id,
			Title:       "Open day",
			Headline:    "Campus tour",
			Content:     "Visit us.",
			CategoryID:  1,
			Status:      true,
			CreatedByID: 1,
			CreatedAt:   time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			Category:    &db.Category{ID: 1, Name: "Academic"},
			CreatedBy:   &db.Account{ID: 1, Name: "Anna Staff"},
		},
		Tags: []newsportal.Tag{{Tag: db.Tag{ID: 1, Name: "Important"}}},
	}
}

func TestNews_Paged(t *testing.T) {
	var got newsportal.NewsQuery
	portal := &fakePortal{
		newsArticles: func(q newsportal.NewsQuery) (paging.Envelope[newsportal.News], error) {
			got = q
			return paging.NewEnvelope([]newsportal.News{sampleNews("NEWS0011")}, 25, q.Paging), nil
		},
	}
	e, _ := newTestServer(t, portal, nil)

	rec := do(e, http.MethodGet, "/api/news-articles?searchTerm=open&status=true&tagId=1&fromDate=2024-01-01&page=2&pageSize=10&sortBy=title&isDescending=true", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NotNil(t, got.Status)
	assert.True(t, *got.Status)
	require.NotNil(t, got.TagID)
	assert.Equal(t, 1, *got.TagID)
	require.NotNil(t, got.FromDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *got.FromDate)
	assert.Nil(t, got.ToDate)
	assert.Equal(t, "open", got.SearchTerm)
	assert.Equal(t, db.Sort{By: "title", Descending: true}, got.Sort)

	var env paging.Envelope[NewsArticle]
	resp := decode(t, rec, &env)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, env.Page)
	assert.Equal(t, 25, env.TotalItems)
	assert.Equal(t, 3, env.TotalPages)
	require.Len(t, env.Items, 1)
	assert.Equal(t, "NEWS0011", env.Items[0].NewsArticleID)
	assert.Equal(t, "Academic", env.Items[0].CategoryName)

	link := rec.Header().Get("Link")
	assert.Contains(t, link, `rel="first"`)
	assert.Contains(t, link, `rel="previous"`)
	assert.Contains(t, link, `rel="next"`)
	assert.Contains(t, link, "page=3")
	assert.Contains(t, link, "searchTerm=open")
}

func TestNews_InvalidParameters(t *testing.T) {
	e, _ := newTestServer(t, &fakePortal{}, nil)

	tests := []struct {
		name   string
		target string
	}{
		{name: "NonNumericPage", target: "/api/news-articles?page=abc"},
		{name: "BadDate", target: "/api/news-articles?fromDate=yesterday"},
		{name: "BadStatus", target: "/api/news-articles?status=maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodGet, tt.target, "", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode(t, rec, nil)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Errors)
		})
	}
}

func TestNewsByID(t *testing.T) {
	portal := &fakePortal{
		newsByID: func(id string) (*newsportal.News, error) {
			if id == "NEWS0001" {
				n := sampleNews(id)
				return &n, nil
			}
			return nil, newsportal.ErrNotFound
		},
	}
	e, _ := newTestServer(t, portal, nil)

	rec := do(e, http.MethodGet, "/api/news-articles/news0001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var news NewsArticle
	decode(t, rec, &news)
	assert.Equal(t, "NEWS0001", news.NewsArticleID)
	require.Len(t, news.Tags, 1)
	assert.Equal(t, "Important", news.Tags[0].Name)

	rec = do(e, http.MethodGet, "/api/news-articles/NEWS9999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "resource not found", resp.Message)
}

func TestCreateNews_Authorization(t *testing.T) {
	var author int
	portal := &fakePortal{
		createNews: func(in newsportal.NewsInput, authorID int) (*newsportal.News, error) {
			author = authorID
			n := sampleNews("NEWS0008")
			n.Title = in.Title
			return &n, nil
		},
	}
	e, _ := newTestServer(t, portal, nil)
	body := `{"title":"Exams","headline":"Schedule","content":"See portal.","categoryId":1,"status":true,"tagIds":[1]}`

	tests := []struct {
		name       string
		auth       string
		body       string
		wantStatus int
	}{
		{name: "NoToken", body: body, wantStatus: http.StatusUnauthorized},
		{name: "GarbageToken", auth: "Bearer nope", body: body, wantStatus: http.StatusUnauthorized},
		{name: "Lecturer", auth: bearer(t, 3, newsportal.RoleLecturer), body: body, wantStatus: http.StatusForbidden},
		{name: "Admin", auth: bearer(t, 0, newsportal.RoleAdmin), body: body, wantStatus: http.StatusForbidden},
		{name: "MissingTitle", auth: bearer(t, 2, newsportal.RoleStaff), body: `{"headline":"h","content":"c","categoryId":1}`, wantStatus: http.StatusBadRequest},
		{name: "Staff", auth: bearer(t, 2, newsportal.RoleStaff), body: body, wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/news-articles", tt.auth, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}

	assert.Equal(t, 2, author)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "Referenced", err: fmt.Errorf("delete: %w", newsportal.ErrHasNews), wantStatus: http.StatusConflict, wantMessage: "conflict"},
		{name: "InUse", err: fmt.Errorf("delete: %w", newsportal.ErrInUse), wantStatus: http.StatusConflict, wantMessage: "conflict"},
		{name: "Missing", err: newsportal.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "resource not found"},
		{name: "Unexpected", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantMessage: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			portal := &fakePortal{deleteTag: func(int) error { return tt.err }}
			e, _ := newTestServer(t, portal, nil)

			rec := do(e, http.MethodDelete, "/api/tags/3", bearer(t, 1, newsportal.RoleStaff), "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			resp := decode(t, rec, nil)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestTags_HugePage(t *testing.T) {
	all := []newsportal.Tag{
		{Tag: db.Tag{ID: 1, Name: "Important"}},
		{Tag: db.Tag{ID: 2, Name: "Research"}},
		{Tag: db.Tag{ID: 3, Name: "students"}},
	}
	portal := &fakePortal{
		tags: func(q newsportal.TagQuery) (paging.Envelope[newsportal.Tag], error) {
			items, total := paging.Page(all, nil, paging.Sorting[newsportal.Tag]{}, "", false, q.Paging.Page, q.Paging.PageSize)
			return paging.NewEnvelope(items, total, q.Paging), nil
		},
	}
	e, _ := newTestServer(t, portal, nil)
	huge := math.MaxInt / 5

	rec := do(e, http.MethodGet, fmt.Sprintf("/api/tags?page=%d&pageSize=10", huge), "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env paging.Envelope[Tag]
	decode(t, rec, &env)
	assert.Empty(t, env.Items)
	assert.Equal(t, huge, env.Page)
	assert.Equal(t, 3, env.TotalItems)
	assert.Equal(t, 1, env.TotalPages)

	link := rec.Header().Get("Link")
	assert.Contains(t, link, `page=1&pageSize=10>; rel="previous"`)
	assert.NotContains(t, link, `rel="next"`)
}

func TestDeleteCategory_Conflicts(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "HasNews", err: newsportal.ErrHasNews},
		{name: "HasChildren", err: fmt.Errorf("delete category: %w", newsportal.ErrHasChildren)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			portal := &fakePortal{deleteCategory: func(int) error { return tt.err }}
			e, _ := newTestServer(t, portal, nil)

			rec := do(e, http.MethodDelete, "/api/categories/2", bearer(t, 0, newsportal.RoleAdmin), "")
			assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

			resp := decode(t, rec, nil)
			assert.Equal(t, "conflict", resp.Message)
			assert.Contains(t, resp.Errors[0], tt.err.Error())
		})
	}
}

func TestInvalidPathID(t *testing.T) {
	e, _ := newTestServer(t, &fakePortal{}, nil)

	rec := do(e, http.MethodDelete, "/api/tags/abc", bearer(t, 1, newsportal.RoleStaff), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatistics(t *testing.T) {
	var from, to time.Time
	portal := &fakePortal{
		newsStatistics: func(f, tt time.Time) (*newsportal.NewsStatistics, error) {
			from, to = f, tt
			return &newsportal.NewsStatistics{StartDate: f, EndDate: tt, Rows: []newsportal.NewsStatisticsRow{}}, nil
		},
	}
	e, _ := newTestServer(t, portal, nil)
	admin := bearer(t, 0, newsportal.RoleAdmin)

	rec := do(e, http.MethodGet, "/api/reports/statistics?startDate=2024-01-01&endDate=2024-01-31", admin, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), to)

	rec = do(e, http.MethodGet, "/api/reports/statistics?startDate=2024-01-01", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/reports/statistics?startDate=2024-01-01&endDate=2024-01-31", bearer(t, 1, newsportal.RoleStaff), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimit(t *testing.T) {
	portal := &fakePortal{activeNews: func() ([]newsportal.News, error) { return nil, nil }}
	limiter := ratelimit.NewMemoryStore(ratelimit.Config{Requests: 2, Window: time.Minute})
	e, _ := newTestServer(t, portal, limiter)

	for i := range 2 {
		rec := do(e, http.MethodGet, "/api/news-articles/active", "", "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := do(e, http.MethodGet, "/api/news-articles/active", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

type failingStore struct{}

func (failingStore) Take(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis down")
}

func TestRateLimit_StoreErrorLetsRequestThrough(t *testing.T) {
	portal := &fakePortal{activeNews: func() ([]newsportal.News, error) { return nil, nil }}
	e, _ := newTestServer(t, portal, failingStore{})

	rec := do(e, http.MethodGet, "/api/news-articles/active", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestServiceEndpoints(t *testing.T) {
	e, _ := newTestServer(t, &fakePortal{}, nil)

	rec := do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fu_news_http_requests_total")

	rec = do(e, http.MethodGet, "/swagger/doc.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/news-articles")

	rec = do(e, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec, nil)
	assert.False(t, resp.Success)
}

func TestLinkHeader(t *testing.T) {
	u, err := url.Parse("/api/tags?searchTerm=a&page=1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		page       int
		totalPages int
		want       []string
		wantNot    []string
	}{
		{
			name:       "FirstPage",
			page:       1,
			totalPages: 3,
			want:       []string{`page=1&pageSize=10&searchTerm=a>; rel="first"`, `page=2&pageSize=10&searchTerm=a>; rel="next"`, `page=3&pageSize=10&searchTerm=a>; rel="last"`},
			wantNot:    []string{`rel="previous"`},
		},
		{
			name:       "LastPage",
			page:       3,
			totalPages: 3,
			want:       []string{`page=2&pageSize=10&searchTerm=a>; rel="previous"`},
			wantNot:    []string{`rel="next"`},
		},
		{
			name:       "NoResults",
			page:       1,
			totalPages: 0,
			want:       []string{`page=1&pageSize=10&searchTerm=a>; rel="last"`},
			wantNot:    []string{`rel="next"`, `rel="previous"`},
		},
		{
			name:       "BeyondLast",
			page:       9,
			totalPages: 3,
			want:       []string{`page=3&pageSize=10&searchTerm=a>; rel="previous"`},
			wantNot:    []string{`rel="next"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := linkHeader(u, tt.page, 10, tt.totalPages)
			for _, w := range tt.want {
				assert.Contains(t, link, w)
			}
			for _, w := range tt.wantNot {
				assert.NotContains(t, link, w)
			}
		})
	}
}

func TestDate_UnmarshalParam(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalParam("2024-03-05"))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *d.Start())
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC), *d.End())

	require.NoError(t, d.UnmarshalParam("2024-03-05T10:30:00Z"))
	assert.Equal(t, *d.Start(), *d.End())

	assert.Error(t, d.UnmarshalParam("05/03/2024"))

	var none *Date
	assert.Nil(t, none.Start())
	assert.Nil(t, none.End())
}
