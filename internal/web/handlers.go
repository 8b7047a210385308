package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzip"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/phase"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/store"
)

// refreshInterval paces SSE status refreshes between watcher pings, so
// process-table changes surface without a file event.
const refreshInterval = 2 * time.Second

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	overall := s.scan(r)
	data := pageView{
		Dashboard: buildDashboardView(overall),
		LocalURL:  s.localURL(),
		RemoteURL: s.cfg.RemoteURL,
	}
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "dashboard", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.scan(r))
}

type launchResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	PID     int    `json:"pid,omitempty"`
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	resp := s.launch(r)
	if !isDatastarRequest(r) {
		code := http.StatusOK
		if resp.Status == "error" {
			code = http.StatusInternalServerError
		}
		writeJSON(w, code, resp)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElements(launchResultFragment(resp)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (s *Server) launch(r *http.Request) launchResponse {
	ctx := r.Context()
	if s.cfg.Probe != nil && s.cfg.Probe.PipelineRunning(ctx) {
		return launchResponse{
			Status:  "already_running",
			Message: "The simulation pipeline is already running.",
		}
	}
	if s.cfg.Launcher == nil {
		return launchResponse{Status: "error", Message: "launching is not configured"}
	}

	pid, err := s.cfg.Launcher.Launch(ctx)
	if err != nil {
		s.logger.Error("pipeline launch failed", "error", err)
		return launchResponse{Status: "error", Message: err.Error()}
	}
	return launchResponse{
		Status:  "started",
		Message: fmt.Sprintf("Pipeline started (pid %d).", pid),
		PID:     pid,
	}
}

func (s *Server) handleLaunches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	launches := []store.Launch{}
	if s.cfg.Launches != nil {
		var err error
		launches, err = s.cfg.Launches.ListLaunches(r.Context(), limit)
		if err != nil {
			s.logger.Error("list launches", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "failed to read launch history")
			return
		}
		if launches == nil {
			launches = []store.Launch{}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"launches": launches})
}

func (s *Server) handleDashboardURL(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]string{"local_url": s.localURL()}
	if s.cfg.RemoteURL != "" {
		resp["remote_url"] = s.cfg.RemoteURL
	}
	writeJSON(w, http.StatusOK, resp)
}

// localURL derives the LAN-reachable dashboard URL. The UDP dial never
// sends a packet; it only resolves the outbound interface address.
func (s *Server) localURL() string {
	host := "127.0.0.1"
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			host = addr.IP.String()
		}
		_ = conn.Close()
	}
	return fmt.Sprintf("http://%s:%d", host, s.cfg.Port)
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !safeName(name) || filepath.Ext(name) != ".png" {
		writeJSONError(w, http.StatusNotFound, "plot not found")
		return
	}
	path := filepath.Join(s.cfg.PlotDir, name)
	if _, err := os.Stat(path); err != nil {
		writeJSONError(w, http.StatusNotFound, "plot not found")
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !safeName(name) {
		writeJSONError(w, http.StatusNotFound, "log not found")
		return
	}

	path, ok := s.findLog(name)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "log not found")
		return
	}
	content, err := readLogContent(path)
	if err != nil {
		s.logger.Error("read log", "log", path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to read log")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

// findLog resolves a log name against the four phase log directories and
// the pipeline log, accepting gzip-compressed variants.
func (s *Server) findLog(name string) (string, bool) {
	var candidates []string
	for n := 1; n <= phase.PhaseCount; n++ {
		dir := filepath.Join(s.cfg.DataDir, fmt.Sprintf("phase%d", n), "logs")
		candidates = append(candidates, filepath.Join(dir, name), filepath.Join(dir, name+".gz"))
	}
	if s.cfg.PipelineLog != "" && name == filepath.Base(s.cfg.PipelineLog) {
		candidates = append(candidates, s.cfg.PipelineLog)
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, true
		}
	}
	return "", false
}

// readLogContent reads a log file, decompressing .gz transparently.
func readLogContent(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// handleUpdates is the long-lived SSE endpoint for the dashboard page.
// It pushes a fresh status fragment on watcher pings and on a fixed
// cadence covering process-only changes.
func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(updates)

	send := func() {
		frag, err := s.renderStatusFragment(r)
		if err != nil {
			_ = sse.ConsoleError(err)
			return
		}
		if err := sse.PatchElements(frag); err != nil {
			_ = sse.ConsoleError(err)
		}
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			send()
		case <-ticker.C:
			send()
		}
	}
}

func (s *Server) renderStatusFragment(r *http.Request) (string, error) {
	var buf bytes.Buffer
	err := pageTmpl.ExecuteTemplate(&buf, "dashboard-body", buildDashboardView(s.scan(r)))
	return buf.String(), err
}

func (s *Server) scan(r *http.Request) phase.Overall {
	if s.cfg.Scanner == nil {
		return phase.Overall{Phases: []phase.Status{}, Timestamp: time.Now()}
	}
	return s.cfg.Scanner.Scan(r.Context())
}

// safeName accepts plain file names only, with no path traversal.
func safeName(name string) bool {
	return name != "" && name == filepath.Base(name) &&
		name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
