package types

type (
	// FindResult contains the matched paths and traversal errors of a bounded find.
	FindResult struct {
		Matches   []string `json:"matches"`
		Errors    []string `json:"errors,omitempty"`
		Truncated bool     `json:"truncated,omitempty"`
	}
)
