package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"command-bridge/internal/model"
)

func TestMessageMarshalsFlat(t *testing.T) {
	msg := model.NewErrorMessage("Invalid JSON message").Stamp(time.Unix(1700000000, 500000000))

	b, err := json.Marshal(msg)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "error", got["type"])
	assert.Equal(t, "Invalid JSON message", got["message"])
	assert.InDelta(t, 1700000000.5, got["timestamp"], 1e-6)
}

func TestMessagePayloadCannotOverrideType(t *testing.T) {
	msg := model.NewMessage("status", map[string]any{"type": "spoofed", "ok": true})

	b, err := json.Marshal(msg)
	require.NoError(t, err)

	var back model.Message
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "status", back.Type)
	assert.Equal(t, true, back.Payload["ok"])
	assert.NotContains(t, back.Payload, "type")
	assert.False(t, back.IsError())
}
