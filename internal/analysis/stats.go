package analysis

import (
	"sync"
	"time"
)

// HighScoreThreshold is the risk score from which a PR counts as high AI content.
const HighScoreThreshold = 0.5

// Recorder receives analysis outcomes from the webhook router and file scans.
type Recorder interface {
	RecordPullRequest(title string, aiDetected bool, riskScore float64)
	RecordPush(messages []string, aiCommits int)
	RecordFiles(total, aiDetected int)
}

// Snapshot is a point-in-time copy of the tracker counters.
type Snapshot struct {
	StartedAt      time.Time
	PRsAnalyzed    int
	PRsAIDetected  int
	HighRiskPRs    int
	AvgRiskScore   float64
	PushesAnalyzed int
	CommitsSeen    int
	AICommits      int
	FilesScanned   int
	AIFiles        int
	ModelCounts    map[string]int
}

// AIPercentage is the share of analyzed PRs flagged as AI, 0-100.
func (s Snapshot) AIPercentage() float64 {
	if s.PRsAnalyzed == 0 {
		return 0
	}
	return float64(s.PRsAIDetected) / float64(s.PRsAnalyzed) * 100
}

// Tracker accumulates process-lifetime analysis counters.
type Tracker struct {
	mu      sync.Mutex
	riskSum float64
	snap    Snapshot
}

var _ Recorder = (*Tracker)(nil)

// NewTracker creates an empty tracker started at now.
func NewTracker(now time.Time) *Tracker {
	return &Tracker{
		snap: Snapshot{StartedAt: now, ModelCounts: make(map[string]int, len(Models))},
	}
}

func (t *Tracker) RecordPullRequest(title string, aiDetected bool, riskScore float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.PRsAnalyzed++
	if aiDetected {
		t.snap.PRsAIDetected++
	}
	if riskScore > HighScoreThreshold {
		t.snap.HighRiskPRs++
	}
	t.riskSum += riskScore
	t.snap.ModelCounts[Attribute(title)]++
}

func (t *Tracker) RecordPush(messages []string, aiCommits int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.PushesAnalyzed++
	t.snap.CommitsSeen += len(messages)
	t.snap.AICommits += aiCommits
	for _, m := range messages {
		t.snap.ModelCounts[Attribute(m)]++
	}
}

func (t *Tracker) RecordFiles(total, aiDetected int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.FilesScanned += total
	t.snap.AIFiles += aiDetected
}

// Snapshot returns a copy safe to read without the lock.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.snap
	s.ModelCounts = make(map[string]int, len(t.snap.ModelCounts))
	for k, v := range t.snap.ModelCounts {
		s.ModelCounts[k] = v
	}
	if s.PRsAnalyzed > 0 {
		s.AvgRiskScore = t.riskSum / float64(s.PRsAnalyzed)
	}
	return s
}
