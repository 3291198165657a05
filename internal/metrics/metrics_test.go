package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kianlavi/onlyfan/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New(models.NewAppBuildInfo("1.2.3", "2026-01-01", "abc"), nil, "")

	m.ObserveRequest(http.MethodGet, "/repos/{owner}/{repo}", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/repos/{owner}/{repo}", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPut, "/repos/{owner}/{repo}/contents/*", http.StatusConflict, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/repos/{owner}/{repo}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPut, "/repos/{owner}/{repo}/contents/*", "409")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestMetrics_ObserveWrite(t *testing.T) {
	m := New(models.AppBuildInfo{}, nil, "")

	m.ObserveWrite(WriteCreated)
	m.ObserveWrite(WriteConflict)
	m.ObserveWrite(WriteConflict)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues(WriteCreated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.writes.WithLabelValues(WriteConflict)))
}

func TestMetrics_Handler(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := New(models.NewAppBuildInfo("9.9.9", "", ""), db, "sqlite3")
	m.ObserveWrite(WriteUpdated)

	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `build_info{commit="",date="",version="9.9.9"} 1`)
	assert.Contains(t, text, `onlyfan_document_writes_total{result="updated"} 1`)
	assert.True(t, strings.Contains(text, "go_sql_max_open_connections"), "db stats are exported")
}
