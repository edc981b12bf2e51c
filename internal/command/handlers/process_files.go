package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"command-bridge/internal/analysis"
	"command-bridge/internal/command"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

// DefaultMaxFileBytes bounds each file read by process_files.
const DefaultMaxFileBytes int64 = 1 << 20

// ErrNotRegularFile is returned for devices, pipes and directories.
var ErrNotRegularFile = errors.New("not a regular file")

type FileReport struct {
	File       string `json:"file"`
	Size       int    `json:"size"`
	Lines      int    `json:"lines"`
	AIDetected bool   `json:"ai_detected"`
}

// ProcessFilesHandler scores local files with the content detector.
type ProcessFilesHandler struct {
	recorder analysis.Recorder
	maxBytes int64
	l        pkgLog.Logger
}

func NewProcessFilesHandler(recorder analysis.Recorder, maxBytes int64, l pkgLog.Logger) *ProcessFilesHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	return &ProcessFilesHandler{recorder: recorder, maxBytes: maxBytes, l: l}
}

func (h *ProcessFilesHandler) Name() string {
	return command.NameProcessFiles
}

func (h *ProcessFilesHandler) Execute(ctx context.Context, params command.Params) (model.Message, error) {
	files, err := params.Strings("files")
	if err != nil {
		return model.Message{}, err
	}

	reports := make([]FileReport, 0, len(files))
	detected := 0
	for _, path := range files {
		if ctx.Err() != nil {
			return model.Message{}, ctx.Err()
		}
		rep, err := h.scan(path)
		if err != nil {
			h.l.Warnf(ctx, "internal.command.handlers.ProcessFiles: %s: %v", path, err)
			return model.Message{}, fmt.Errorf("Error processing files: %w", err)
		}
		if rep.AIDetected {
			detected++
		}
		reports = append(reports, rep)
	}

	if h.recorder != nil {
		h.recorder.RecordFiles(len(reports), detected)
	}

	return model.NewMessage(TypeFilesProcessed, map[string]any{
		"results":           reports,
		"total_files":       len(reports),
		"ai_detected_count": detected,
	}), nil
}

func (h *ProcessFilesHandler) scan(path string) (FileReport, error) {
	// Stat before Open: opening a FIFO blocks until a writer shows up.
	fi, err := os.Stat(path)
	if err != nil {
		return FileReport{}, err
	}
	if !fi.Mode().IsRegular() {
		return FileReport{}, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return FileReport{}, err
	}
	defer f.Close()

	// The path may have been swapped between Stat and Open.
	if fi, err = f.Stat(); err != nil {
		return FileReport{}, err
	}
	if !fi.Mode().IsRegular() {
		return FileReport{}, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return FileReport{}, err
	}
	if int64(len(data)) > h.maxBytes {
		return FileReport{}, fmt.Errorf("%s exceeds %d bytes", path, h.maxBytes)
	}

	content := string(data)
	return FileReport{
		File:       path,
		Size:       len(data),
		Lines:      analysis.CountLines(content),
		AIDetected: analysis.IsAIContent(content),
	}, nil
}
