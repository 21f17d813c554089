package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lintang/gridnav/pkg/kv"
	"lintang/gridnav/pkg/server/rest/service"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router  *chi.Mux
	metrics *metrics
}

func newTestServer(t *testing.T, maxSessions int) *testServer {
	t.Helper()
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	kvDB := kv.NewKVDB(db)
	t.Cleanup(func() { _ = kvDB.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewNavigationService(kvDB, logger, time.Minute, maxSessions)

	m := NewMetrics(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	NavigatorRouter(r, svc, m)
	return &testServer{router: r, metrics: m}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestGridEndpoints(t *testing.T) {
	ts := newTestServer(t, 10)

	rec := ts.do(t, http.MethodPut, "/api/grids/level1", GridRequest{Rows: []string{"S.#", "..F"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	grid := decode[GridResponse](t, rec)
	assert.Equal(t, "level1", grid.Name)
	assert.Equal(t, 3, grid.Width)
	assert.Equal(t, 2, grid.Height)
	require.NotNil(t, grid.Finish)
	assert.Equal(t, Coord{X: 2, Y: 1}, *grid.Finish)

	rec = ts.do(t, http.MethodGet, "/api/grids/level1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"S.#", "..F"}, decode[GridResponse](t, rec).Rows)

	rec = ts.do(t, http.MethodGet, "/api/grids", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"level1"}, decode[GridListResponse](t, rec).Grids)

	rec = ts.do(t, http.MethodPut, "/api/grids/bad", GridRequest{Rows: []string{"S.x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/grids/empty", GridRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/grids/level1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/grids/level1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found.", decode[ErrResponse](t, rec).StatusText)
}

func TestShortestPathEndpoint(t *testing.T) {
	ts := newTestServer(t, 10)

	t.Run("found", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/navigations/shortest-path", ShortestPathRequest{
			Rows: []string{"S..", "...", "..F"},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[ShortestPathResponse](t, rec)
		assert.True(t, resp.Found)
		assert.Equal(t, 4.0, resp.Cost)
		assert.Len(t, resp.Route, 5)
		assert.NotEmpty(t, resp.Path)
		assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.SPQueryCount.WithLabelValues("heap")))
	})

	t.Run("no path is 200 with found false", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/navigations/shortest-path", ShortestPathRequest{
			Rows:     []string{"S#F"},
			Frontier: "linear",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[ShortestPathResponse](t, rec)
		assert.False(t, resp.Found)
		assert.Empty(t, resp.Route)
		assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.SPQueryCount.WithLabelValues("linear")))
	})

	t.Run("validation errors", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/navigations/shortest-path", ShortestPathRequest{
			Rows:       []string{"S.F"},
			Relaxation: "sideways",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, decode[ErrResponse](t, rec).ErrValidation)

		rec = ts.do(t, http.MethodPost, "/api/navigations/shortest-path", ShortestPathRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodPost, "/api/navigations/shortest-path", ShortestPathRequest{
			Rows:  []string{"S.F"},
			Start: &Coord{X: -1, Y: 0},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodPost, "/api/navigations/shortest-path", ShortestPathRequest{GridName: "nope"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/navigations/shortest-path", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionEndpoints(t *testing.T) {
	ts := newTestServer(t, 1)

	rec := ts.do(t, http.MethodPost, "/api/navigations/sessions", ShortestPathRequest{
		Rows: []string{"S..", "...", "..F"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[SessionResponse](t, rec)
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, "NOT_FOUND", created.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.ActiveSessions))

	rec = ts.do(t, http.MethodPost, "/api/navigations/sessions", ShortestPathRequest{Rows: []string{"S.F"}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	base := "/api/navigations/sessions/" + created.SessionID
	rec = ts.do(t, http.MethodPost, base+"/step", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stepped := decode[SessionResponse](t, rec)
	assert.Equal(t, 1, stepped.Step)
	require.NotNil(t, stepped.Current)
	assert.Nil(t, stepped.Cost)

	rec = ts.do(t, http.MethodPost, base+"/step?count=50", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	done := decode[SessionResponse](t, rec)
	assert.Equal(t, "FOUND", done.Status)
	assert.Len(t, done.Path, 5)
	require.NotNil(t, done.Cost)
	assert.Equal(t, 4.0, *done.Cost)
	assert.Equal(t, 4.0, testutil.ToFloat64(ts.metrics.StepCount))

	rec = ts.do(t, http.MethodPost, base+"/step?count=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodPost, base+"/step?count=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FOUND", decode[SessionResponse](t, rec).Status)

	rec = ts.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0.0, testutil.ToFloat64(ts.metrics.ActiveSessions))

	rec = ts.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(t, http.MethodPost, base+"/step", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
