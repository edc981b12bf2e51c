package model

import "time"

// WebhookSource represents the platform a webhook came from
type WebhookSource string

const (
	SourceGitHub WebhookSource = "github"
	// SourceReplay marks payloads forwarded by a websocket client instead of a signed delivery.
	SourceReplay WebhookSource = "replay"
)

// Supported GitHub event types
const (
	EventPing        = "ping"
	EventPush        = "push"
	EventPullRequest = "pull_request"
)

// SupportedEvents lists the event types the webhook router processes.
func SupportedEvents() []string {
	return []string{EventPullRequest, EventPush, EventPing}
}

// WebhookEvent is the record kept for one routed delivery
type WebhookEvent struct {
	Source     WebhookSource // Platform source
	EventType  string        // Event type (push, pull_request, ...)
	DeliveryID string        // X-GitHub-Delivery, logging only
	Outcome    string        // processed, ignored, pong
	ReceivedAt time.Time     // When the webhook was received
}
