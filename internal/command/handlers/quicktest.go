package handlers

import (
	"context"
	"fmt"
	"time"

	"command-bridge/internal/analysis"
	"command-bridge/internal/command"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

const (
	DefaultQuickTestSize = 1000
	MaxQuickTestSize     = 100000

	// quickTestTargetRate is the files-per-second rate a passing self test must beat.
	quickTestTargetRate = 10000
)

// QuickTestHandler benchmarks the content detector over the sample corpus.
type QuickTestHandler struct {
	now func() time.Time
	l   pkgLog.Logger
}

func NewQuickTestHandler(l pkgLog.Logger) *QuickTestHandler {
	return &QuickTestHandler{now: time.Now, l: l}
}

func (h *QuickTestHandler) Name() string {
	return command.NameQuickTest
}

func (h *QuickTestHandler) Execute(ctx context.Context, params command.Params) (model.Message, error) {
	size, ok, err := params.Int("size")
	if err != nil {
		return model.Message{}, err
	}
	if !ok {
		size = DefaultQuickTestSize
	}
	if size < 1 || size > MaxQuickTestSize {
		return model.Message{}, fmt.Errorf("%w: size must be between 1 and %d", command.ErrInvalidParam, MaxQuickTestSize)
	}

	h.l.Infof(ctx, "internal.command.handlers.QuickTest: scoring %d samples", size)

	start := h.now()
	detected := 0
	for i := 0; i < size; i++ {
		if ctx.Err() != nil {
			return model.Message{}, ctx.Err()
		}
		if analysis.IsAIContent(analysis.Sample(i)) {
			detected++
		}
	}
	elapsed := h.now().Sub(start)

	rate := float64(size)
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(size) / secs
	}

	return model.NewMessage(TypeQuickTestComplete, map[string]any{
		"prs_processed": size,
		"time_ms":       elapsed.Milliseconds(),
		"rate":          int64(rate),
		"ai_detected":   detected,
		"success":       rate > quickTestTargetRate,
	}), nil
}
