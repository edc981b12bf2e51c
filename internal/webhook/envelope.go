package webhook

import (
	"encoding/json"
	"net/http"
)

// GitHub delivery headers
const (
	HeaderSignature = "X-Hub-Signature-256"
	HeaderEvent     = "X-GitHub-Event"
	HeaderDelivery  = "X-GitHub-Delivery"
)

// Envelope is one inbound delivery. The body is only handed out once the signature verified.
type Envelope struct {
	payload    []byte
	signature  string
	event      string
	deliveryID string
	verified   bool
}

// NewEnvelope wraps the raw request body and delivery headers.
func NewEnvelope(payload []byte, header http.Header) *Envelope {
	return &Envelope{
		payload:    payload,
		signature:  header.Get(HeaderSignature),
		event:      header.Get(HeaderEvent),
		deliveryID: header.Get(HeaderDelivery),
	}
}

func (e *Envelope) Event() string      { return e.event }
func (e *Envelope) DeliveryID() string { return e.deliveryID }
func (e *Envelope) Verified() bool     { return e.verified }

// Verify checks the signature with v and unlocks Body on success.
func (e *Envelope) Verify(v *SecurityValidator) error {
	if err := v.ValidateGitHubSignature(e.payload, e.signature); err != nil {
		return err
	}
	e.verified = true
	return nil
}

// Body returns the payload as JSON once verified.
func (e *Envelope) Body() (json.RawMessage, error) {
	if !e.verified {
		return nil, ErrUnverified
	}
	if !json.Valid(e.payload) {
		return nil, ErrInvalidPayload
	}
	return json.RawMessage(e.payload), nil
}
