// Package pipeline probes and launches the external simulation pipeline
// (pipeline.sh and the LAMMPS worker processes it spawns).
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

const (
	// PipelinePattern matches the orchestrating shell script.
	PipelinePattern = "pipeline.sh"
	// WorkerPattern matches running LAMMPS engine processes.
	WorkerPattern = "lmp"
)

// Probe inspects the process table via pgrep.
type Probe struct {
	Logger *slog.Logger
}

func (p Probe) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Pgrep returns the PIDs (as strings) of processes whose command line
// matches pattern. No matches is not an error.
func (p Probe) Pgrep(ctx context.Context, pattern string) ([]string, error) {
	out, err := exec.CommandContext(ctx, "pgrep", "-f", pattern).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, err
	}

	return splitPids(string(out)), nil
}

func splitPids(out string) []string {
	var pids []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			pids = append(pids, line)
		}
	}
	return pids
}

// PipelineRunning reports whether pipeline.sh is in the process table.
// Probe failures count as not running.
func (p Probe) PipelineRunning(ctx context.Context) bool {
	pids, err := p.Pgrep(ctx, PipelinePattern)
	if err != nil {
		p.logger().Debug("pipeline probe failed", "error", err)
		return false
	}
	return len(pids) > 0
}

// ActiveWorkers returns the PID strings of running LAMMPS processes.
// Probe failures yield an empty list.
func (p Probe) ActiveWorkers(ctx context.Context) []string {
	pids, err := p.Pgrep(ctx, WorkerPattern)
	if err != nil {
		p.logger().Debug("worker probe failed", "error", err)
		return nil
	}
	return pids
}
