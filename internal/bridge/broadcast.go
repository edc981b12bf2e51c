package bridge

import (
	"context"
	"encoding/json"

	"command-bridge/internal/model"
)

// BroadcastReport records the per-client outcome of one broadcast.
type BroadcastReport struct {
	Delivered int
	Failed    map[string]error
}

// Broadcast enqueues msg to every client connected at call time. A slow or
// closed client never blocks the others; it is reported in Failed.
func (h *Hub) Broadcast(ctx context.Context, msg model.Message) BroadcastReport {
	report := BroadcastReport{Failed: map[string]error{}}

	if msg.Timestamp == 0 {
		msg = msg.Stamp(h.now())
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.l.Errorf(ctx, "internal.bridge.Broadcast: marshal %s: %v", msg.Type, err)
		return report
	}

	for _, c := range h.registry.Snapshot() {
		if err := c.TrySend(data); err != nil {
			report.Failed[c.id] = err
			continue
		}
		report.Delivered++
	}

	if len(report.Failed) > 0 {
		h.l.Warnf(ctx, "internal.bridge.Broadcast: %s delivered=%d failed=%d", msg.Type, report.Delivered, len(report.Failed))
	} else {
		h.l.Debugf(ctx, "internal.bridge.Broadcast: %s delivered=%d", msg.Type, report.Delivered)
	}
	return report
}

// Publish broadcasts msg, discarding the report.
func (h *Hub) Publish(ctx context.Context, msg model.Message) {
	h.Broadcast(ctx, msg)
}
