package webhook_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"command-bridge/internal/analysis"
	"command-bridge/internal/webhook"
	pkgLog "command-bridge/pkg/log"
)

func newRouter() (*webhook.Router, *analysis.Tracker) {
	tr := analysis.NewTracker(time.Now())
	return webhook.NewRouter(pkgLog.NewNop(), tr), tr
}

func prPayload(action, title string, additions, changedFiles int) json.RawMessage {
	b, _ := json.Marshal(map[string]any{
		"action": action,
		"number": 42,
		"pull_request": map[string]any{
			"number":        42,
			"title":         title,
			"user":          map[string]any{"login": "octocat"},
			"additions":     additions,
			"deletions":     3,
			"changed_files": changedFiles,
			"commits":       2,
		},
		"repository": map[string]any{"full_name": "octo/repo"},
	})
	return b
}

func toMap(t *testing.T, res webhook.Result) map[string]any {
	t.Helper()
	b, err := json.Marshal(res)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestRoutePullRequestMaxRisk(t *testing.T) {
	r, tr := newRouter()

	res, err := r.Route(context.Background(), "pull_request", prPayload("opened", "AI generated feature", 1500, 60))
	require.NoError(t, err)

	pr, ok := res.(webhook.PullRequestAnalysis)
	require.True(t, ok, "expected PullRequestAnalysis, got %T", res)
	assert.Equal(t, webhook.OutcomeProcessed, pr.Outcome())
	assert.Equal(t, 42, pr.PRNumber)
	assert.Equal(t, 1.0, pr.Analysis.RiskScore)
	assert.True(t, pr.Analysis.AIDetected)
	assert.True(t, pr.Analysis.RequiresReview)
	assert.Equal(t, "octocat", pr.Analysis.PRInfo.Author)
	assert.Equal(t, "octo/repo", pr.Analysis.PRInfo.Repo)
	assert.Equal(t, webhook.PRActionOpened, pr.Analysis.PRInfo.Action)

	m := toMap(t, res)
	assert.Equal(t, "processed", m["status"])
	analysisBlock := m["analysis"].(map[string]any)
	assert.Equal(t, true, analysisBlock["requires_review"])
	assert.Equal(t, 1.0, analysisBlock["risk_score"])

	assert.Equal(t, 1, tr.Snapshot().PRsAnalyzed)
}

func TestRoutePullRequestScores(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		additions  int
		files      int
		wantScore  float64
		wantReview bool
	}{
		{"clean", "Fix typo in docs", 10, 1, 0.0, false},
		{"ai title only", "Claude refactor", 10, 1, 0.7, true},
		{"large only", "Big change", 1001, 1, 0.2, false},
		{"large and many files", "Big change", 5000, 51, 0.3, false},
		{"boundaries are exclusive", "Big change", 1000, 50, 0.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter()
			res, err := r.Route(context.Background(), "pull_request", prPayload("synchronize", tt.title, tt.additions, tt.files))
			require.NoError(t, err)
			pr := res.(webhook.PullRequestAnalysis)
			assert.Equal(t, tt.wantScore, pr.Analysis.RiskScore)
			assert.Equal(t, tt.wantReview, pr.Analysis.RequiresReview)
		})
	}
}

func TestRoutePullRequestClosedIsIgnored(t *testing.T) {
	r, tr := newRouter()

	res, err := r.Route(context.Background(), "pull_request", prPayload("closed", "AI generated feature", 1500, 60))
	require.NoError(t, err)

	m := toMap(t, res)
	assert.Equal(t, "ignored", m["status"])
	assert.Equal(t, "closed", m["action"])
	assert.Equal(t, 0, tr.Snapshot().PRsAnalyzed)
}

func TestRoutePush(t *testing.T) {
	r, tr := newRouter()
	body := json.RawMessage(`{
		"ref": "refs/heads/main",
		"repository": {"full_name": "octo/repo"},
		"commits": [
			{"id": "a", "message": "fix bug"},
			{"id": "b", "message": "Generated by Claude"},
			{"id": "c", "message": "update docs"}
		]
	}`)

	res, err := r.Route(context.Background(), "push", body)
	require.NoError(t, err)

	push := res.(webhook.PushAnalysis)
	assert.Equal(t, 3, push.CommitsAnalyzed)
	assert.Equal(t, 1, push.AICommitsDetected)
	assert.Equal(t, "octo/repo", push.Repo)

	m := toMap(t, res)
	assert.EqualValues(t, 1, m["ai_commits_detected"])
	assert.EqualValues(t, 3, m["commits_analyzed"])
	assert.Equal(t, 1, tr.Snapshot().AICommits)
}

func TestRoutePushWithoutCommits(t *testing.T) {
	r, _ := newRouter()
	res, err := r.Route(context.Background(), "push", json.RawMessage(`{}`))
	require.NoError(t, err)

	m := toMap(t, res)
	assert.EqualValues(t, 0, m["commits_analyzed"])
	assert.EqualValues(t, 0, m["ai_commits_detected"])
}

func TestRoutePing(t *testing.T) {
	r, _ := newRouter()

	res, err := r.Route(context.Background(), "ping", json.RawMessage(`{"zen":"Design for failure.","hook_id":123}`))
	require.NoError(t, err)
	pong := res.(webhook.Pong)
	assert.Equal(t, webhook.OutcomePong, pong.Outcome())
	assert.Equal(t, int64(123), pong.HookID)
	assert.Equal(t, "Design for failure.", pong.Zen)

	res, err = r.Route(context.Background(), "ping", json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "No zen provided", res.(webhook.Pong).Zen)
}

func TestRouteUnknownEvent(t *testing.T) {
	r, _ := newRouter()

	res, err := r.Route(context.Background(), "issues", json.RawMessage(`{"action":"opened"}`))
	require.NoError(t, err)

	m := toMap(t, res)
	assert.Equal(t, "ignored", m["status"])
	assert.Equal(t, "issues", m["event"])
	assert.Equal(t, "Event type issues not processed", m["message"])
}

func TestRouteShapeMismatchIsInvalidPayload(t *testing.T) {
	r, _ := newRouter()

	_, err := r.Route(context.Background(), "pull_request", json.RawMessage(`{"action":"opened","pull_request":{"title":5}}`))
	assert.ErrorIs(t, err, webhook.ErrInvalidPayload)

	_, err = r.Route(context.Background(), "push", json.RawMessage(`[]`))
	assert.ErrorIs(t, err, webhook.ErrInvalidPayload)
}

func TestReplayRejectsInvalidJSON(t *testing.T) {
	r, _ := newRouter()
	_, err := r.Replay(context.Background(), "push", json.RawMessage(`{`))
	assert.ErrorIs(t, err, webhook.ErrInvalidPayload)
}

func TestEvents(t *testing.T) {
	r, _ := newRouter()
	assert.Equal(t, []string{"ping", "pull_request", "push"}, r.Events())
}

func TestAssessIsPure(t *testing.T) {
	s := webhook.PullRequestSummary{Title: "gpt helper", Additions: 2000}
	first := webhook.Assess(s)
	second := webhook.Assess(s)
	assert.Equal(t, first, second)
	assert.Equal(t, 0.9, first.RiskScore)
}
