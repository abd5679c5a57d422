package core

import "context"

// Analysis is the strictly-typed result of the query analysis collaborator.
// Adapters are responsible for any leniency when decoding provider output;
// the router only ever sees this struct or a typed failure.
type Analysis struct {
	Category       string   `json:"category"`
	Location       string   `json:"location,omitempty"`
	Intent         string   `json:"intent"`
	Keywords       []string `json:"keywords,omitempty"`
	SearchQuery    string   `json:"searchQuery"`
	NeedsRetrieval bool     `json:"needsSearch"`
}

// SearchResult is one retrieved document from the search collaborator.
type SearchResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Analyzer classifies a user query against the bounded context window.
type Analyzer interface {
	Analyze(ctx context.Context, query string, history []Message) (*Analysis, error)
}

// Retriever fetches documents for a search query. The router truncates the
// result sequence to its configured maximum before use.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]SearchResult, error)
}

// Generator composes the assistant reply from the query, the context window
// and any retrieval results (nil when retrieval was skipped).
type Generator interface {
	Generate(ctx context.Context, query string, history []Message, results []SearchResult) (string, error)
}

// FollowUpChecker is a lightweight heuristic deciding whether the assistant
// should ask for more information. A failure here must never discard an
// already-drafted response.
type FollowUpChecker interface {
	CheckFollowUp(ctx context.Context, state *TurnState) (bool, error)
}
