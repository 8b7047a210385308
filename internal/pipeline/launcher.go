package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

// Recorder persists launch events for later inspection.
type Recorder interface {
	RecordLaunch(ctx context.Context, pid int, logPath string) error
}

// LauncherConfig configures a Launcher.
type LauncherConfig struct {
	// Script is the path to pipeline.sh.
	Script string
	// LogPath receives the combined stdout and stderr of the pipeline.
	LogPath string
	// WorkDir is the directory the pipeline runs in. Defaults to the
	// script's directory semantics of the shell.
	WorkDir string
	// Recorder, when set, is notified of every successful launch.
	Recorder Recorder
	Logger   *slog.Logger
}

// Launcher starts the simulation pipeline detached from this process.
// The launch is fire and forget: success means the process started, and
// any later outcome is observed through the filesystem.
type Launcher struct {
	cfg LauncherConfig
}

// NewLauncher creates a Launcher.
func NewLauncher(cfg LauncherConfig) *Launcher {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Launcher{cfg: cfg}
}

// Launch starts pipeline.sh in its own session with output redirected to
// the pipeline log, and returns the child PID without waiting.
func (l *Launcher) Launch(ctx context.Context) (int, error) {
	if _, err := os.Stat(l.cfg.Script); err != nil {
		return 0, fmt.Errorf("pipeline script: %w", err)
	}
	if err := os.Chmod(l.cfg.Script, 0o755); err != nil {
		return 0, fmt.Errorf("mark pipeline script executable: %w", err)
	}

	logFile, err := os.Create(l.cfg.LogPath)
	if err != nil {
		return 0, fmt.Errorf("create pipeline log: %w", err)
	}
	defer logFile.Close()

	// No CommandContext here: the pipeline must outlive the dashboard.
	cmd := exec.Command("bash", l.cfg.Script)
	cmd.Dir = l.cfg.WorkDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start pipeline: %w", err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		l.cfg.Logger.Warn("release pipeline process handle", "error", err)
	}

	l.cfg.Logger.Info("pipeline launched", "pid", pid, "log", l.cfg.LogPath)
	if l.cfg.Recorder != nil {
		if err := l.cfg.Recorder.RecordLaunch(ctx, pid, l.cfg.LogPath); err != nil {
			l.cfg.Logger.Warn("record pipeline launch", "error", err)
		}
	}
	return pid, nil
}
