package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/phase"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

var phaseNames = map[int]string{
	1: "Annealing",
	2: "Quench",
	3: "Equilibration",
	4: "Analysis",
}

type phaseView struct {
	Phase      int
	Name       string
	State      string
	StateClass string
	Progress   int
	CurrentLog string
	LogFiles   []string
	Plots      []string
}

type dashboardView struct {
	Phases          []phaseView
	OverallProgress int
	PipelineRunning bool
	ActiveLammps    int
	UpdatedAt       string
}

type pageView struct {
	Dashboard dashboardView
	LocalURL  string
	RemoteURL string
}

type loginView struct {
	Next  string
	Error string
}

func buildDashboardView(o phase.Overall) dashboardView {
	v := dashboardView{
		OverallProgress: int(o.OverallProgress + 0.5),
		PipelineRunning: o.PipelineRunning,
		ActiveLammps:    o.ActiveLammps,
		UpdatedAt:       o.Timestamp.Format("15:04:05"),
	}
	for _, p := range o.Phases {
		v.Phases = append(v.Phases, phaseView{
			Phase:      p.Phase,
			Name:       phaseNames[p.Phase],
			State:      string(p.State),
			StateClass: stateClass(p.State),
			Progress:   int(p.Progress + 0.5),
			CurrentLog: p.CurrentLog,
			LogFiles:   p.LogFiles,
			Plots:      p.Plots,
		})
	}
	return v
}

func stateClass(s phase.State) string {
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "-")
}

func launchResultFragment(resp launchResponse) string {
	var buf bytes.Buffer
	_ = pageTmpl.ExecuteTemplate(&buf, "launch-result", resp)
	return buf.String()
}

func (s *Server) renderLogin(w http.ResponseWriter, next, errMsg string, code int) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "login", loginView{Next: next, Error: errMsg}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
