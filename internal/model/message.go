package model

import (
	"encoding/json"
	"time"
)

// Message types sent to websocket clients.
const (
	MessageTypeError           = "error"
	MessageTypeStatus          = "system_status"
	MessageTypeWebhookReceived = "webhook_received"
)

// Message is the result envelope sent to interactive clients.
// It marshals flat: {"type": ..., <payload fields>..., "timestamp": ...}.
type Message struct {
	Type      string
	Payload   map[string]any
	Timestamp float64
}

// NewMessage builds a message of the given type. Timestamp is stamped at send time.
func NewMessage(msgType string, payload map[string]any) Message {
	if payload == nil {
		payload = map[string]any{}
	}
	return Message{Type: msgType, Payload: payload}
}

// NewErrorMessage builds an error message carrying msg.
func NewErrorMessage(msg string) Message {
	return NewMessage(MessageTypeError, map[string]any{"message": msg})
}

// IsError reports whether m is an error result.
func (m Message) IsError() bool {
	return m.Type == MessageTypeError
}

// Stamp returns a copy of m with Timestamp set from t.
func (m Message) Stamp(t time.Time) Message {
	m.Timestamp = UnixSeconds(t)
	return m
}

// MarshalJSON flattens the payload next to type and timestamp.
// Payload keys named "type" or "timestamp" are overridden.
func (m Message) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Payload)+2)
	for k, v := range m.Payload {
		out[k] = v
	}
	out["type"] = m.Type
	out["timestamp"] = m.Timestamp
	return json.Marshal(out)
}

// UnmarshalJSON splits type and timestamp back out of the flat form.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Type, _ = raw["type"].(string)
	m.Timestamp, _ = raw["timestamp"].(float64)
	delete(raw, "type")
	delete(raw, "timestamp")
	m.Payload = raw
	return nil
}

// UnixSeconds converts t to fractional seconds since the epoch.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
