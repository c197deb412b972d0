package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	rows []Record
	err  error
}

func (s stubSource) Fetch(ctx context.Context, start, end string) ([]Record, error) {
	return s.rows, s.err
}

func newTestServer(t *testing.T, src ChecklistSource) *server {
	t.Helper()
	tpl, err := template.New("").Funcs(funcMap).ParseFiles(
		"templates/picker.gohtml",
		"templates/print.gohtml",
	)
	require.NoError(t, err)
	return &server{cfg: DefaultConfig(), log: zap.NewNop(), tpl: tpl, src: src}
}

func get(t *testing.T, s *server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandleHealth(t *testing.T) {
	rr := get(t, newTestServer(t, stubSource{}), "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
}

func TestHandleHome(t *testing.T) {
	rr := get(t, newTestServer(t, stubSource{}), "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/print")
}

func TestHandlePicker(t *testing.T) {
	t.Run("lists discovered shifts", func(t *testing.T) {
		s := newTestServer(t, DemoSource{})
		rr := get(t, s, "/print")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Laminator 1")
		assert.Contains(t, rr.Body.String(), "/print/render?key=")
	})

	t.Run("no records", func(t *testing.T) {
		rr := get(t, newTestServer(t, stubSource{}), "/print")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No shifts found")
	})

	t.Run("fetch failure surfaces diagnostics", func(t *testing.T) {
		src := stubSource{err: &APIError{
			URL:    "https://api.evocon.com/api/reports/checklists_json",
			Params: url.Values{"startTime": {"2024-01-01"}},
			Status: 502,
			Body:   "bad gateway",
		}}
		rr := get(t, newTestServer(t, src), "/print")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "status 502")
	})
}

func TestHandleRender(t *testing.T) {
	today := time.Now().Format(dateFmt)

	t.Run("renders the matrix", func(t *testing.T) {
		s := newTestServer(t, DemoSource{})
		key := url.QueryEscape(fmt.Sprintf("%s|A|Laminator 1", today))
		rr := get(t, s, "/print/render?key="+key)
		require.Equal(t, http.StatusOK, rr.Code)

		body := rr.Body.String()
		assert.Contains(t, body, "Θερμοκρασία λαμινατορίου (°C)")
		assert.Contains(t, body, "06:10")
		assert.Contains(t, body, "72.5") // comma normalized for display
		assert.Contains(t, body, "Kostas")
	})

	t.Run("malformed key", func(t *testing.T) {
		rr := get(t, newTestServer(t, stubSource{}), "/print/render?key=only|two")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unparsable date", func(t *testing.T) {
		key := url.QueryEscape("01/02/2024|A|S1")
		rr := get(t, newTestServer(t, stubSource{}), "/print/render?key="+key)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Bad shiftDate")
	})

	t.Run("no data for selection", func(t *testing.T) {
		s := newTestServer(t, DemoSource{})
		key := url.QueryEscape("2019-01-01|A|Nowhere")
		rr := get(t, s, "/print/render?key="+key)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No data found")
		assert.Contains(t, rr.Body.String(), "range=2018-12-31 → 2019-01-02")
	})

	t.Run("fetch failure", func(t *testing.T) {
		key := url.QueryEscape("2024-01-01|A|S1")
		rr := get(t, newTestServer(t, stubSource{err: errors.New("boom")}), "/print/render?key="+key)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHandleExport(t *testing.T) {
	s := newTestServer(t, DemoSource{})
	today := time.Now().Format(dateFmt)
	key := url.QueryEscape(fmt.Sprintf("%s|A|Laminator 1", today))
	rr := get(t, s, "/print/export?key="+key)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rr.Body.Len())
}
