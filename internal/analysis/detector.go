package analysis

import "strings"

// ContainsIndicator reports whether text contains any of indicators, case-insensitively.
// Matching is by substring, so "ai" also matches inside longer words.
func ContainsIndicator(text string, indicators []string) bool {
	lower := strings.ToLower(text)
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// ContentScore scores file content for AI-generation hints.
func ContentScore(content string) int {
	lower := strings.ToLower(content)
	score := 0

	for _, ind := range contentIndicators {
		if strings.Contains(lower, ind) {
			score += contentIndicatorWeight
		}
	}

	if strings.Contains(lower, "function") && strings.Contains(lower, "map") {
		score += mapFunctionWeight
	}
	if strings.Contains(lower, "const") && strings.Contains(lower, "await") {
		score += asyncConstWeight
	}
	if strings.Contains(content, "// ") && CountLines(content) < shortContentMaxLines {
		score += shortCommentedWeight
	}

	return score
}

// IsAIContent reports whether content scores above ContentThreshold.
func IsAIContent(content string) bool {
	return ContentScore(content) > ContentThreshold
}

// CountLines counts newline separated lines; empty content is one line.
func CountLines(content string) int {
	return strings.Count(content, "\n") + 1
}

// Attribute names the model a piece of text most likely came from.
func Attribute(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "claude"):
		return ModelClaude
	case strings.Contains(lower, "gpt"):
		return ModelGPT
	case strings.Contains(lower, "copilot"):
		return ModelCopilot
	default:
		return ModelHuman
	}
}
