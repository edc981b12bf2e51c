package analysis

// Indicator sets used by the webhook router.
var (
	// CommitIndicators flag an AI-assisted commit message.
	CommitIndicators = []string{"ai", "generated", "claude", "gpt"}

	// TitleIndicators flag an AI-assisted pull request title.
	TitleIndicators = []string{"ai", "generated", "claude", "gpt", "copilot", "automated"}

	// contentIndicators are explicit AI mentions inside file content, worth contentIndicatorWeight each.
	contentIndicators = []string{
		"claude", "gpt", "copilot", "ai-generated", "generated by",
		"artificial intelligence", "machine learning model",
		"auto-generated", "ai assistant", "language model",
	}
)

// Content scoring weights
const (
	contentIndicatorWeight = 10
	mapFunctionWeight      = 3
	asyncConstWeight       = 2
	shortCommentedWeight   = 1
	shortContentMaxLines   = 10

	// ContentThreshold is the score above which content counts as AI generated.
	ContentThreshold = 5
)

// Model attribution labels
const (
	ModelClaude  = "Claude"
	ModelGPT     = "GPT"
	ModelCopilot = "Copilot"
	ModelHuman   = "Human"
)

// Models is the fixed attribution order reported to clients.
var Models = []string{ModelClaude, ModelGPT, ModelCopilot, ModelHuman}
