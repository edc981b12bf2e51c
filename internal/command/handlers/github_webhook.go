package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"command-bridge/internal/command"
	"command-bridge/internal/model"
	"command-bridge/internal/webhook"
	pkgLog "command-bridge/pkg/log"
)

var ErrNoPayload = errors.New("No payload provided")

type GitHubWebhookInput struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// GitHubWebhookHandler feeds a client-supplied GitHub payload through the webhook router.
type GitHubWebhookHandler struct {
	router Replayer
	l      pkgLog.Logger
}

func NewGitHubWebhookHandler(router Replayer, l pkgLog.Logger) *GitHubWebhookHandler {
	return &GitHubWebhookHandler{router: router, l: l}
}

func (h *GitHubWebhookHandler) Name() string {
	return command.NameGitHubWebhook
}

func (h *GitHubWebhookHandler) Execute(ctx context.Context, params command.Params) (model.Message, error) {
	inputBytes, err := json.Marshal(params)
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to marshal input: %w", err)
	}

	var in GitHubWebhookInput
	if err := json.Unmarshal(inputBytes, &in); err != nil {
		return model.Message{}, fmt.Errorf("%w: %v", command.ErrInvalidParam, err)
	}
	if len(in.Payload) == 0 || string(in.Payload) == "null" {
		return model.Message{}, ErrNoPayload
	}
	if in.Event == "" {
		in.Event = model.EventPullRequest
	}

	h.l.Infof(ctx, "internal.command.handlers.GitHubWebhook: replaying %s event", in.Event)

	res, err := h.router.Replay(ctx, in.Event, in.Payload)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidPayload) {
			return model.Message{}, fmt.Errorf("Invalid %s payload: %w", in.Event, err)
		}
		return model.Message{}, err
	}

	return model.NewMessage(TypeGitHubWebhookProcessed, map[string]any{
		"event":  in.Event,
		"result": res,
	}), nil
}
