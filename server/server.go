package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/render"
)

// Server exposes a dashboard over HTTP. The dashboard is read-only after
// construction, so handlers share it without locking.
type Server struct {
	dash      *engine.Dashboard
	addr      string
	chartSize render.Size
	logger    *slog.Logger
}

// Options configures a Server.
type Options struct {
	Addr      string
	ChartSize render.Size
	Logger    *slog.Logger
}

// New creates a server for dash.
func New(dash *engine.Dashboard, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	return &Server{
		dash:      dash,
		addr:      opts.Addr,
		chartSize: opts.ChartSize,
		logger:    logger.With("component", "server"),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/report", instrument("report", s.handleReport))
	mux.HandleFunc("GET /api/controls", instrument("controls", s.handleControls))
	mux.HandleFunc("GET /api/mappings", instrument("mappings", s.handleMappings))
	mux.HandleFunc("GET /api/charts", instrument("charts", s.handleChartList))
	mux.HandleFunc("GET /api/charts/{file}", instrument("chart", s.handleChart))
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.addr, "records", s.dash.Dataset().Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report := s.dash.Report(SelectionFromQuery(q))
	reportMatched.Observe(float64(report.Summary.Count))
	if q.Get("rows") == "false" || q.Get("rows") == "0" {
		report.Rows = nil
		report.Tables = report.Tables[:1]
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Controls(SelectionFromQuery(r.URL.Query())))
}

func (s *Server) handleMappings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Mappings())
}

func (s *Server) handleChartList(w http.ResponseWriter, r *http.Request) {
	report := s.dash.Report(SelectionFromQuery(r.URL.Query()))
	type entry struct {
		ID    string `json:"id"`
		Type  string `json:"chartType"`
		Title string `json:"title"`
		Image bool   `json:"image"`
	}
	out := make([]entry, 0, len(report.Charts))
	for _, c := range report.Charts {
		out = append(out, entry{ID: c.ID, Type: c.ChartType, Title: c.Title, Image: render.Supported(c.ChartType)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	id, ok := strings.CutSuffix(file, ".png")
	if !ok {
		s.writeError(w, http.StatusNotFound, "chart images are served as <id>.png")
		return
	}

	report := s.dash.Report(SelectionFromQuery(r.URL.Query()))
	cfg, found := engine.FindChart(report.Charts, id)
	if !found {
		s.writeError(w, http.StatusNotFound, "unknown chart "+id)
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(cfg, &buf, s.chartSize); err != nil {
		switch {
		case errors.Is(err, render.ErrUnsupportedChart):
			s.writeError(w, http.StatusNotImplemented, err.Error())
		case errors.Is(err, render.ErrNoData):
			w.WriteHeader(http.StatusNoContent)
		default:
			s.logger.Error("chart render failed", "chart", id, "error", err)
			s.writeError(w, http.StatusInternalServerError, "chart render failed")
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// ============================================================================
// HELPERS
// ============================================================================

// SelectionFromQuery reads region, sub_region, category and class. Each
// parameter repeats once per selected value and is matched exactly, so
// values may contain commas or padding. Empty values are ignored.
func SelectionFromQuery(q url.Values) engine.Selection {
	return engine.Selection{
		Regions:    queryList(q, "region"),
		SubRegions: queryList(q, "sub_region"),
		Categories: queryList(q, "category"),
		Classes:    queryList(q, "class"),
	}
}

func queryList(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// writeJSON encodes v before writing the status, so an encoding failure is
// logged and answered with 500 instead of a truncated body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encode response failed", "error", err)
		http.Error(w, `{"error":"encode response failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
