package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret for signature verification; empty rejects every delivery
	AllowedIPs      []string // IP/CIDR whitelist (optional)
	RateLimitPerMin int      // Max deliveries per minute, <= 0 disables limiting
}

// Outcome is the status discriminator of a routed event.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeIgnored   Outcome = "ignored"
	OutcomePong      Outcome = "pong"
)

// Result is one of Pong, PushAnalysis, PullRequestAnalysis or Ignored.
type Result interface {
	Outcome() Outcome
}

// Pong acknowledges a ping delivery.
type Pong struct {
	Status  Outcome `json:"status"`
	HookID  int64   `json:"hook_id"`
	Zen     string  `json:"zen"`
	Message string  `json:"message"`
}

func (p Pong) Outcome() Outcome { return p.Status }

// PushAnalysis summarises the commits of a push.
type PushAnalysis struct {
	Status            Outcome `json:"status"`
	Repo              string  `json:"repo"`
	CommitsAnalyzed   int     `json:"commits_analyzed"`
	AICommitsDetected int     `json:"ai_commits_detected"`
	Message           string  `json:"message"`
}

func (p PushAnalysis) Outcome() Outcome { return p.Status }

// PRAction is the pull request action as far as the router cares.
type PRAction string

const (
	PRActionOpened      PRAction = "opened"
	PRActionSynchronize PRAction = "synchronize"
	PRActionReopened    PRAction = "reopened"
	PRActionOther       PRAction = "other"
)

// PullRequestSummary is the read-only view of a pull_request payload.
type PullRequestSummary struct {
	Number       int      `json:"number"`
	Title        string   `json:"title"`
	Author       string   `json:"user"`
	Repo         string   `json:"repo"`
	Additions    int      `json:"additions"`
	Deletions    int      `json:"deletions"`
	ChangedFiles int      `json:"changed_files"`
	Commits      int      `json:"commits"`
	Action       PRAction `json:"action"`
}

// RiskAssessment is derived from a PullRequestSummary.
type RiskAssessment struct {
	AIDetected     bool    `json:"ai_detected"`
	RiskScore      float64 `json:"risk_score"`
	RequiresReview bool    `json:"requires_review"`
}

// PullRequestReport is the analysis block of a processed pull request.
type PullRequestReport struct {
	PRInfo PullRequestSummary `json:"pr_info"`
	RiskAssessment
	ProcessingTimeMS int64 `json:"processing_time_ms"`
}

// PullRequestAnalysis is the result for an opened/synchronize/reopened pull request.
type PullRequestAnalysis struct {
	Status   Outcome           `json:"status"`
	Action   string            `json:"action"`
	PRNumber int               `json:"pr_number"`
	Analysis PullRequestReport `json:"analysis"`
	Message  string            `json:"message"`
}

func (p PullRequestAnalysis) Outcome() Outcome { return p.Status }

// Ignored is returned for events or actions the router does not process.
type Ignored struct {
	Status  Outcome `json:"status"`
	Event   string  `json:"event,omitempty"`
	Action  string  `json:"action,omitempty"`
	Message string  `json:"message"`
}

func (i Ignored) Outcome() Outcome { return i.Status }
