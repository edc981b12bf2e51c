//go:build unix

package handlers_test

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"command-bridge/internal/command"
	"command-bridge/internal/command/handlers"
	pkgLog "command-bridge/pkg/log"
)

func TestProcessFilesHandler_RejectsFIFO(t *testing.T) {
	fifo := filepath.Join(t.TempDir(), "pipe")
	require.NoError(t, syscall.Mkfifo(fifo, 0o600))

	h := handlers.NewProcessFilesHandler(nil, 0, pkgLog.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := h.Execute(context.Background(), command.Params{"files": []any{fifo}})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, handlers.ErrNotRegularFile)
	case <-time.After(5 * time.Second):
		t.Fatal("process_files blocked on a FIFO")
	}
}
