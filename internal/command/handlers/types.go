package handlers

import (
	"context"
	"encoding/json"

	"command-bridge/internal/analysis"
	"command-bridge/internal/webhook"
)

// Result message types.
const (
	TypeSystemStatus           = "system_status"
	TypeQuickTestComplete      = "quick_test_complete"
	TypeAIAnalysisComplete     = "ai_analysis_complete"
	TypeGitHubWebhookProcessed = "github_webhook_processed"
	TypeFilesProcessed         = "files_processed"
)

// StatsSource exposes the analysis counters.
type StatsSource interface {
	Snapshot() analysis.Snapshot
}

// ClientCounter reports how many interactive clients are connected.
type ClientCounter interface {
	Len() int
}

// Replayer routes a GitHub payload forwarded by a client.
type Replayer interface {
	Replay(ctx context.Context, eventType string, body json.RawMessage) (webhook.Result, error)
}
