package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/go-github/github"

	"command-bridge/internal/analysis"
	"command-bridge/internal/model"
)

const (
	defaultZen      = "No zen provided"
	msgPong         = "Command bridge webhook server is running!"
	msgPushAnalyzed = "Push analyzed for AI-assisted commits"
	msgPRAnalyzed   = "Pull request analyzed for AI-assisted changes"
	msgPRNotHandled = "PR action %s not processed"
	msgEventIgnored = "Event type %s not processed"
)

// handlePing acknowledges webhook setup
func (r *Router) handlePing(ctx context.Context, body json.RawMessage) (Result, error) {
	var event github.PingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", ErrInvalidPayload, err)
	}

	zen := event.GetZen()
	if zen == "" {
		zen = defaultZen
	}

	r.l.Infof(ctx, "internal.webhook.handlePing: hook_id=%d", event.GetHookID())

	return Pong{
		Status:  OutcomePong,
		HookID:  event.GetHookID(),
		Zen:     zen,
		Message: msgPong,
	}, nil
}

// handlePush counts commits whose message carries an AI indicator
func (r *Router) handlePush(ctx context.Context, body json.RawMessage) (Result, error) {
	var event github.PushEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: push: %v", ErrInvalidPayload, err)
	}

	repo := event.GetRepo().GetFullName()
	messages := make([]string, 0, len(event.Commits))
	aiCommits := 0
	for _, commit := range event.Commits {
		msg := commit.GetMessage()
		messages = append(messages, msg)
		if analysis.ContainsIndicator(msg, analysis.CommitIndicators) {
			aiCommits++
		}
	}

	if r.recorder != nil {
		r.recorder.RecordPush(messages, aiCommits)
	}

	r.l.Infof(ctx, "internal.webhook.handlePush: repo=%s commits=%d ai_commits=%d", repo, len(messages), aiCommits)

	return PushAnalysis{
		Status:            OutcomeProcessed,
		Repo:              repo,
		CommitsAnalyzed:   len(messages),
		AICommitsDetected: aiCommits,
		Message:           msgPushAnalyzed,
	}, nil
}

// handlePullRequest scores opened/synchronize/reopened pull requests
func (r *Router) handlePullRequest(ctx context.Context, body json.RawMessage) (Result, error) {
	start := r.now()

	var event github.PullRequestEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: pull_request: %v", ErrInvalidPayload, err)
	}

	action := event.GetAction()
	if parseAction(action) == PRActionOther {
		r.l.Infof(ctx, "internal.webhook.handlePullRequest: skipping action %q", action)
		return Ignored{
			Status:  OutcomeIgnored,
			Action:  action,
			Message: fmt.Sprintf(msgPRNotHandled, action),
		}, nil
	}

	summary := summarize(event)
	risk := Assess(summary)

	if r.recorder != nil {
		r.recorder.RecordPullRequest(summary.Title, risk.AIDetected, risk.RiskScore)
	}

	r.l.Infof(ctx, "internal.webhook.handlePullRequest: #%d ai=%t risk=%.2f", summary.Number, risk.AIDetected, risk.RiskScore)

	return PullRequestAnalysis{
		Status:   OutcomeProcessed,
		Action:   action,
		PRNumber: summary.Number,
		Analysis: PullRequestReport{
			PRInfo:           summary,
			RiskAssessment:   risk,
			ProcessingTimeMS: r.now().Sub(start).Milliseconds(),
		},
		Message: msgPRAnalyzed,
	}, nil
}

func summarize(event github.PullRequestEvent) PullRequestSummary {
	pr := event.GetPullRequest()

	number := pr.GetNumber()
	if number == 0 {
		number = event.GetNumber()
	}

	return PullRequestSummary{
		Number:       number,
		Title:        pr.GetTitle(),
		Author:       pr.GetUser().GetLogin(),
		Repo:         event.GetRepo().GetFullName(),
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
		Commits:      pr.GetCommits(),
		Action:       parseAction(event.GetAction()),
	}
}

func ignoredEvent(eventType string) Ignored {
	return Ignored{
		Status:  OutcomeIgnored,
		Event:   eventType,
		Message: fmt.Sprintf(msgEventIgnored, eventType),
	}
}

// record builds the log record of a routed delivery.
func record(source model.WebhookSource, eventType, deliveryID string, res Result, at time.Time) model.WebhookEvent {
	return model.WebhookEvent{
		Source:     source,
		EventType:  eventType,
		DeliveryID: deliveryID,
		Outcome:    string(res.Outcome()),
		ReceivedAt: at,
	}
}
