package webhook

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"command-bridge/internal/analysis"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

type eventHandler func(ctx context.Context, body json.RawMessage) (Result, error)

// Router classifies GitHub events and runs the matching analysis.
type Router struct {
	handlers map[string]eventHandler
	recorder analysis.Recorder
	l        pkgLog.Logger
	now      func() time.Time
}

// NewRouter builds the event dispatch table. recorder may be nil.
func NewRouter(l pkgLog.Logger, recorder analysis.Recorder) *Router {
	r := &Router{
		recorder: recorder,
		l:        l,
		now:      time.Now,
	}
	r.handlers = map[string]eventHandler{
		model.EventPing:        r.handlePing,
		model.EventPush:        r.handlePush,
		model.EventPullRequest: r.handlePullRequest,
	}
	return r
}

// Events lists the event types with a handler.
func (r *Router) Events() []string {
	events := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		events = append(events, name)
	}
	sort.Strings(events)
	return events
}

// Route processes body as eventType. Unknown events yield Ignored; the only
// error is ErrInvalidPayload when body does not fit the event shape.
func (r *Router) Route(ctx context.Context, eventType string, body json.RawMessage) (Result, error) {
	handler, ok := r.handlers[eventType]
	if !ok {
		r.l.Infof(ctx, "internal.webhook.Route: unhandled event type %q", eventType)
		return ignoredEvent(eventType), nil
	}
	return handler(ctx, body)
}

// RouteEnvelope routes a verified delivery.
func (r *Router) RouteEnvelope(ctx context.Context, env *Envelope) (Result, error) {
	body, err := env.Body()
	if err != nil {
		return nil, err
	}

	return r.routeFrom(ctx, model.SourceGitHub, env.Event(), env.DeliveryID(), body)
}

// Replay routes a payload forwarded by an interactive client. The payload
// carries no signature, so it is recorded as SourceReplay.
func (r *Router) Replay(ctx context.Context, eventType string, body json.RawMessage) (Result, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidPayload
	}
	return r.routeFrom(ctx, model.SourceReplay, eventType, "", body)
}

func (r *Router) routeFrom(ctx context.Context, source model.WebhookSource, eventType, deliveryID string, body json.RawMessage) (Result, error) {
	res, err := r.Route(ctx, eventType, body)
	if err != nil {
		return nil, err
	}

	rec := record(source, eventType, deliveryID, res, r.now())
	r.l.Debugf(ctx, "internal.webhook.routeFrom: source=%s event=%s delivery=%s outcome=%s",
		rec.Source, rec.EventType, rec.DeliveryID, rec.Outcome)
	return res, nil
}
