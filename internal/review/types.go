package review

// Sentinel review texts returned without contacting the model.
const (
	NoRelevantFiles = "No relevant files to review (all changed files were excluded by filters)"
	NoChanges       = "No changes detected in relevant files"
)

// GenerationErrorPrefix starts the placeholder review returned when the
// generation service cannot be reached.
const GenerationErrorPrefix = "Error generating review: "

// DefaultBase and DefaultModel apply when a Request leaves them empty.
const (
	DefaultBase  = "main"
	DefaultModel = "llama3.2"
)

// Request describes one branch review.
type Request struct {
	RepoPath string
	Branch   string
	Base     string
	Model    string
}

// InputInfo describes what was reviewed.
type InputInfo struct {
	Repo     string   `json:"repo"`
	Base     string   `json:"base"`
	Branch   string   `json:"branch"`
	Model    string   `json:"model"`
	Excluded []string `json:"excluded,omitempty"`
}

// Timing contains performance metrics.
type Timing struct {
	GitMs   int64 `json:"gitMs"`
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// Result is the outcome of a review run. Review is either model output, a
// sentinel, or a transport-failure placeholder.
type Result struct {
	Files  []string  `json:"files"`
	Review string    `json:"review"`
	Inputs InputInfo `json:"inputs"`
	Timing Timing    `json:"timing"`
}

// Error wraps any failure that aborts a review run.
type Error struct {
	Err error
}

func (e *Error) Error() string { return "review failed: " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }
