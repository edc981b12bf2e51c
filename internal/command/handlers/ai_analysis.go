package handlers

import (
	"context"

	"command-bridge/internal/analysis"
	"command-bridge/internal/command"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

// AIAnalysisHandler reports model attribution over everything the router has seen.
type AIAnalysisHandler struct {
	stats StatsSource
	l     pkgLog.Logger
}

func NewAIAnalysisHandler(stats StatsSource, l pkgLog.Logger) *AIAnalysisHandler {
	return &AIAnalysisHandler{stats: stats, l: l}
}

func (h *AIAnalysisHandler) Name() string {
	return command.NameAIAnalysis
}

func (h *AIAnalysisHandler) Execute(ctx context.Context, _ command.Params) (model.Message, error) {
	snap := h.stats.Snapshot()

	// counts line up index-for-index with analysis.Models
	models := make([]string, len(analysis.Models))
	counts := make([]int, len(analysis.Models))
	total := 0
	for i, m := range analysis.Models {
		models[i] = m
		counts[i] = snap.ModelCounts[m]
		total += counts[i]
	}

	return model.NewMessage(TypeAIAnalysisComplete, map[string]any{
		"total_analyzed":  total,
		"models":          models,
		"model_counts":    counts,
		"avg_score":       round2(snap.AvgRiskScore),
		"high_ai_content": snap.HighRiskPRs,
	}), nil
}
