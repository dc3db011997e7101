package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/render"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	data := []engine.Participant{
		{Name: "Ayu", Class: "5", Category: "Siaga", Region: "Jawa Barat", SubRegion: "Bandung", School: "SD 1", Gender: "P", Score: 80, DurationMinutes: 30},
		{Name: "Budi", Class: "6", Category: "Siaga", Region: "Jawa Barat", SubRegion: "Bogor", School: "SD 2", Gender: "L", Score: 60, DurationMinutes: 40},
		{Name: "Citra", Class: "7", Category: "Penggalang", Region: "Jawa Timur", SubRegion: "Surabaya", School: "SMP 1", Gender: "P", Score: 90, DurationMinutes: 25},
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	dash := engine.NewDashboard(engine.NewDataset(data, true, "test"), engine.WithLogger(quiet))
	srv := New(dash, Options{ChartSize: render.Size{Width: 320, Height: 240}, Logger: quiet})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp
}

func TestReportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var report engine.Report
	resp := getJSON(t, ts.URL+"/api/report?region=Jawa+Barat", &report)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, report.Summary.Count)
	assert.Equal(t, engine.Some(70), report.Summary.Mean)
	assert.Len(t, report.Rows, 2)
	assert.Equal(t, []string{"Jawa Barat"}, report.Selection.Regions)
}

func TestReportEndpointWithoutRows(t *testing.T) {
	ts := newTestServer(t)

	var report engine.Report
	getJSON(t, ts.URL+"/api/report?rows=false", &report)
	assert.Empty(t, report.Rows)
	assert.Len(t, report.Tables, 1)
}

func TestReportEndpointEmptySelection(t *testing.T) {
	ts := newTestServer(t)

	var raw map[string]any
	getJSON(t, ts.URL+"/api/report?class=12", &raw)
	summary := raw["summary"].(map[string]any)
	assert.Equal(t, float64(0), summary["count"])
	assert.Nil(t, summary["mean"], "no data encodes as null")
}

func TestControlsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var controls engine.Controls
	getJSON(t, ts.URL+"/api/controls?category=Siaga", &controls)
	assert.Equal(t, []string{"5", "6"}, controls.Class.Options)
	assert.True(t, controls.Class.Disabled)
	assert.Equal(t, []string{"Jawa Barat", "Jawa Timur"}, controls.Region.Options)
}

func TestMappingsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var mappings map[string]map[string][]string
	getJSON(t, ts.URL+"/api/mappings", &mappings)
	assert.Equal(t, []string{"Bandung", "Bogor"}, mappings[engine.DimRegion]["Jawa Barat"])
	assert.Equal(t, []string{"7"}, mappings[engine.DimCategory]["Penggalang"])
}

func TestChartEndpoint(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path string
		code int
		ct   string
	}{
		{"/api/charts/gender_pie.png", http.StatusOK, "image/png"},
		{"/api/charts/duration_vs_score.png", http.StatusOK, "image/png"},
		{"/api/charts/score_box.png", http.StatusNotImplemented, "application/json"},
		{"/api/charts/unknown.png", http.StatusNotFound, "application/json"},
		{"/api/charts/gender_pie", http.StatusNotFound, "application/json"},
		{"/api/charts/gender_pie.png?region=Bali", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)
			if tt.ct != "" {
				assert.Equal(t, tt.ct, resp.Header.Get("Content-Type"))
			}
		})
	}
}

func TestChartListEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var list []struct {
		ID    string `json:"id"`
		Image bool   `json:"image"`
	}
	getJSON(t, ts.URL+"/api/charts", &list)
	require.Len(t, list, 9)
	images := 0
	for _, c := range list {
		if c.Image {
			images++
		}
	}
	assert.Equal(t, 6, images)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/mappings")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bebras_http_requests_total{code="200",route="mappings"}`)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/report", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSelectionFromQuery(t *testing.T) {
	q := url.Values{
		"region":     {"Kota Bandung, Jawa Barat", "C"},
		"sub_region": {" x "},
		"class":      {""},
	}
	sel := SelectionFromQuery(q)
	assert.Equal(t, []string{"Kota Bandung, Jawa Barat", "C"}, sel.Regions, "commas are part of the value")
	assert.Equal(t, []string{" x "}, sel.SubRegions, "values are not trimmed")
	assert.Empty(t, sel.Classes)
	assert.Empty(t, sel.Categories)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	srv := New(nil, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})

	rec := httptest.NewRecorder()
	srv.writeJSON(rec, http.StatusOK, map[string]float64{"score": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "encode response failed")
}

func TestReportEndpointInfiniteScores(t *testing.T) {
	data := []engine.Participant{
		{Name: "Ayu", Class: "5", Category: "Siaga", Region: "Jawa Barat", Gender: "P", Score: math.Inf(1)},
		{Name: "Budi", Class: "6", Category: "Siaga", Region: "Jawa Barat", Gender: "L", Score: 70},
		{Name: "Citra", Class: "7", Category: "Penggalang", Region: "Jawa Timur", Gender: "P", Score: math.Inf(-1)},
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	dash := engine.NewDashboard(engine.NewDataset(data, false, "test"), engine.WithLogger(quiet))
	ts := httptest.NewServer(New(dash, Options{Logger: quiet}).Handler())
	t.Cleanup(ts.Close)

	var report engine.Report
	resp := getJSON(t, ts.URL+"/api/report", &report)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, report.Summary.Count)
	assert.Equal(t, engine.Some(70), report.Summary.Mean)
	require.Len(t, report.TopScorers, 1)
	assert.Equal(t, "Budi", report.TopScorers[0].Name)
}
