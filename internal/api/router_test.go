package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/harrylevesque/freqgraphs/internal/notifier"
	"github.com/harrylevesque/freqgraphs/internal/site"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testAssets = fstest.MapFS{
	"index.html": {Data: []byte("<html><title>Frequency Graphs Test Site</title></html>")},
	"site.css":   {Data: []byte("body {}")},
}

func newTestRouter(t *testing.T) (http.Handler, *site.Site, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	s := site.New(logger)
	return NewRouter(NewHandler(s, testAssets, logger)), s, logs
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestIndexLoadsPage(t *testing.T) {
	r, s, logs := newTestRouter(t)

	rec := do(r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Frequency Graphs Test Site")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	p, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, p.SessionID, rec.Header().Get("X-Session-ID"))
	assert.Equal(t, 1, s.Loads())

	require.Equal(t, 3, logs.Len())
	for i, e := range logs.All() {
		assert.Equal(t, notifier.StartupLines()[i], e.Message)
	}
}

func TestIndexHTMLAlsoLoads(t *testing.T) {
	r, s, _ := newTestRouter(t)
	do(r, http.MethodGet, "/")
	rec := do(r, http.MethodGet, "/index.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.Loads())
}

func TestNotifierBeforeLoad(t *testing.T) {
	r, _, _ := newTestRouter(t)
	rec := do(r, http.MethodGet, "/debug/notifier")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no page loaded yet")
}

func TestNotifierAfterLoad(t *testing.T) {
	r, _, _ := newTestRouter(t)
	do(r, http.MethodGet, "/")
	second := do(r, http.MethodGet, "/")

	rec := do(r, http.MethodGet, "/debug/notifier")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap site.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, second.Header().Get("X-Session-ID"), snap.SessionID)
	assert.Equal(t, notifier.StateInitialized, snap.State)
	assert.Empty(t, snap.Devices)
}

func TestNotifierDoesNotLoad(t *testing.T) {
	r, s, logs := newTestRouter(t)
	do(r, http.MethodGet, "/debug/notifier")
	assert.Zero(t, s.Loads())
	assert.Zero(t, logs.Len())
}

func TestStaticAssets(t *testing.T) {
	r, s, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/static/site.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body {}", rec.Body.String())

	rec = do(r, http.MethodGet, "/static/index.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, s.Loads())
}

func TestMethodNotAllowed(t *testing.T) {
	r, s, _ := newTestRouter(t)
	rec := do(r, http.MethodPost, "/")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Zero(t, s.Loads())
}

func TestIndexMissingAsset(t *testing.T) {
	s := site.New(nil)
	r := NewRouter(NewHandler(s, fstest.MapFS{}, nil))
	rec := do(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, s.Loads())
}
