package handlers

import (
	"context"
	"math"
	"time"

	"command-bridge/internal/command"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

type StatusHandler struct {
	stats    StatsSource
	clients  ClientCounter
	commands func() []string
	version  string
	now      func() time.Time
	l        pkgLog.Logger
}

// NewStatusHandler creates the status command. commands lists the names the
// dispatcher serves and is read on every call.
func NewStatusHandler(stats StatsSource, clients ClientCounter, commands func() []string, version string, l pkgLog.Logger) *StatusHandler {
	return &StatusHandler{
		stats:    stats,
		clients:  clients,
		commands: commands,
		version:  version,
		now:      time.Now,
		l:        l,
	}
}

func (h *StatusHandler) Name() string {
	return command.NameStatus
}

func (h *StatusHandler) Execute(ctx context.Context, _ command.Params) (model.Message, error) {
	snap := h.stats.Snapshot()

	connected := 0
	if h.clients != nil {
		connected = h.clients.Len()
	}
	var commands []string
	if h.commands != nil {
		commands = h.commands()
	}

	return model.NewMessage(TypeSystemStatus, map[string]any{
		"status":             "running",
		"version":            h.version,
		"uptime_seconds":     int64(h.now().Sub(snap.StartedAt).Seconds()),
		"connected_clients":  connected,
		"total_prs":          snap.PRsAnalyzed,
		"ai_detected":        snap.PRsAIDetected,
		"ai_percentage":      round2(snap.AIPercentage()),
		"avg_score":          round2(snap.AvgRiskScore),
		"pushes_analyzed":    snap.PushesAnalyzed,
		"commits_analyzed":   snap.CommitsSeen,
		"files_scanned":      snap.FilesScanned,
		"supported_commands": commands,
	}), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
