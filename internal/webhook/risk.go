package webhook

import (
	"math"

	"command-bridge/internal/analysis"
)

// Risk weights, summed and clamped to [0, 1]
const (
	weightAITitle       = 0.7
	weightLargeAddition = 0.2
	weightManyFiles     = 0.1

	largeAdditionThreshold = 1000
	manyFilesThreshold     = 50
	reviewThreshold        = 0.5
)

// Assess scores a pull request summary. It is a pure function of s.
func Assess(s PullRequestSummary) RiskAssessment {
	aiDetected := analysis.ContainsIndicator(s.Title, analysis.TitleIndicators)

	score := 0.0
	if aiDetected {
		score += weightAITitle
	}
	if s.Additions > largeAdditionThreshold {
		score += weightLargeAddition
	}
	if s.ChangedFiles > manyFilesThreshold {
		score += weightManyFiles
	}

	// Round away float drift (0.7+0.2+0.1 != 1.0) before clamping
	score = math.Round(score*1000) / 1000
	score = math.Max(0, math.Min(score, 1))

	return RiskAssessment{
		AIDetected:     aiDetected,
		RiskScore:      score,
		RequiresReview: score > reviewThreshold,
	}
}

func parseAction(action string) PRAction {
	switch PRAction(action) {
	case PRActionOpened, PRActionSynchronize, PRActionReopened:
		return PRAction(action)
	default:
		return PRActionOther
	}
}
