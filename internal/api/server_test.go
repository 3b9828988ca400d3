package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/db"
	"github.com/aidmqan/mqan-console/internal/feed"
	"github.com/aidmqan/mqan-console/internal/models"
	"github.com/aidmqan/mqan-console/internal/query"
)

type pageResponse struct {
	Page       string                 `json:"page"`
	Filter     models.FilterSpec      `json:"filter"`
	Total      int                    `json:"total"`
	Count      int                    `json:"count"`
	Records    []map[string]any       `json:"records"`
	Aggregates []query.AggregateValue `json:"aggregates"`
}

func newTestServer(t *testing.T) (*Server, *feed.Feed) {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "mqan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := feed.New(feed.Options{Capacity: 20, Seed: 9})
	s := New(catalog.Seed(), f, store, Options{Addr: "127.0.0.1:0"})
	return s, f
}

func do(t *testing.T, s *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPageQueries(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantAggs  map[string]int
	}{
		{name: "unfiltered", target: "/api/v1/alerts", wantCount: 6, wantAggs: map[string]int{"active": 2, "critical": 2, "unresolved": 4}},
		{name: "facet", target: "/api/v1/alerts?status=resolved", wantCount: 2, wantAggs: map[string]int{"active": 0, "unresolved": 0}},
		{name: "search", target: "/api/v1/alerts?q=CONNECTIVITY", wantCount: 1, wantAggs: map[string]int{"unresolved": 1}},
		{name: "all sentinel", target: "/api/v1/alerts?type=all&status=all", wantCount: 6},
		{name: "bad facet value", target: "/api/v1/alerts?status=exploded", wantCount: 0, wantAggs: map[string]int{"active": 0}},
		{name: "non-facet parameter ignored", target: "/api/v1/users?shoe=red", wantCount: 5, wantAggs: map[string]int{"total": 5}},
		{name: "cache buster ignored", target: "/api/v1/alerts?_=1690000000&utm_source=mail", wantCount: 6},
		{name: "cache buster with facet", target: "/api/v1/alerts?status=resolved&_=1690000000", wantCount: 2},
		{name: "network totals ignore filter", target: "/api/v1/users?status=inactive", wantCount: 1, wantAggs: map[string]int{"total": 5, "active": 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decode[pageResponse](t, rec)
			assert.Equal(t, tt.wantCount, resp.Count)
			assert.Len(t, resp.Records, tt.wantCount)
			for name, want := range tt.wantAggs {
				found := false
				for _, a := range resp.Aggregates {
					if a.Name == name {
						assert.Equal(t, want, a.Value, name)
						found = true
					}
				}
				assert.True(t, found, "aggregate %s missing", name)
			}
		})
	}
}

func TestUnknownPage(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/billing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "billing")
}

func TestPagesList(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/pages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	infos := decode[[]catalog.Info](t, rec)
	require.NotEmpty(t, infos)
	assert.Equal(t, catalog.PageAlerts, infos[0].Name)
	assert.Equal(t, []string{"title", "description", "hospital"}, infos[0].Search)
}

func TestOverviewAndAnalytics(t *testing.T) {
	s, _ := newTestServer(t)

	o := decode[catalog.Overview](t, do(t, s, http.MethodGet, "/api/v1/overview", ""))
	assert.Equal(t, 33, o.ActiveNodes)

	a := decode[catalog.Analytics](t, do(t, s, http.MethodGet, "/api/v1/analytics", ""))
	assert.Equal(t, 19291, a.TotalTests)
}

func TestFeedEndpoint(t *testing.T) {
	s, f := newTestServer(t)
	f.Prime(25)

	rec := do(t, s, http.MethodGet, "/api/v1/monitor/feed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[feedResponse](t, rec)
	assert.Equal(t, 20, resp.Capacity)
	require.Len(t, resp.Events, 20)
	assert.Equal(t, uint64(25), resp.Events[0].Seq)

	// the monitor page filters the same window
	page := decode[pageResponse](t, do(t, s, http.MethodGet, "/api/v1/monitor", ""))
	assert.Equal(t, 20, page.Total)
}

func TestHospitalActivity(t *testing.T) {
	store, err := db.New(filepath.Join(t.TempDir(), "mqan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	now := time.Now()
	require.NoError(t, store.InsertActivity(
		models.Activity{ID: "a1", Seq: 1, Hospital: "Metro General", Status: "success", Timestamp: now},
		models.Activity{ID: "a2", Seq: 2, Hospital: "Metro General", Status: "warning", Timestamp: now},
		models.Activity{ID: "a3", Seq: 3, Hospital: "Riverside Clinic", Status: "info", Timestamp: now},
	))

	s := New(catalog.Seed(), nil, nil, Options{Activity: store})
	rec := do(t, s, http.MethodGet, "/api/v1/monitor/hospitals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []db.HospitalActivity{
		{Hospital: "Metro General", Events: 2, Warnings: 1},
		{Hospital: "Riverside Clinic", Events: 1, Warnings: 0},
	}, decode[[]db.HospitalActivity](t, rec))

	rec = do(t, New(catalog.Seed(), nil, nil, Options{}), http.MethodGet, "/api/v1/monitor/hospitals", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSavedViews(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/api/v1/views/alerts/resolved", `{"facets":{"status":"resolved"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[viewResponse](t, rec)
	assert.Equal(t, "resolved", saved.Filter.Facet("status"))

	page := decode[pageResponse](t, do(t, s, http.MethodGet, "/api/v1/alerts?view=resolved", ""))
	assert.Equal(t, 2, page.Count)

	// explicit parameters override the view
	page = decode[pageResponse](t, do(t, s, http.MethodGet, "/api/v1/alerts?view=resolved&q=milestone", ""))
	assert.Equal(t, 1, page.Count)

	views := decode[[]viewResponse](t, do(t, s, http.MethodGet, "/api/v1/views/alerts", ""))
	require.Len(t, views, 1)
	assert.Equal(t, "resolved", views[0].Name)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/v1/alerts?view=nope", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPut, "/api/v1/views/alerts/bad", `{`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPut, "/api/v1/views/billing/x", `{}`).Code)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/v1/views/alerts/resolved", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/v1/views/alerts/resolved", "").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	s.Metrics().ObserveFeed(models.Activity{Status: "warning"}, true)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code)
	do(t, s, http.MethodGet, "/api/v1/alerts", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `mqan_http_requests_total{code="200",method="GET",route="GET /api/v1/{page}"} 1`)
	assert.Contains(t, body, `mqan_feed_events_total{status="warning"} 1`)
	assert.Contains(t, body, "mqan_feed_dropped_total 1")
	assert.Contains(t, body, `mqan_query_duration_seconds_count{page="alerts"} 1`)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := New(catalog.Seed(), nil, nil, Options{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Timeout: time.Second}
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	client.CloseIdleConnections()

	feedResp := httptest.NewRecorder()
	s.Handler().ServeHTTP(feedResp, httptest.NewRequest(http.MethodGet, "/api/v1/monitor/feed", nil))
	assert.Equal(t, http.StatusOK, feedResp.Code)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
