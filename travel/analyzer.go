package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
)

// Compile time check to ensure Analyzer satisfies the core.Analyzer interface.
var _ core.Analyzer = (*Analyzer)(nil)

// promptWindowSize bounds how much of the context window is rendered into
// provider prompts. Smaller than the selector default on purpose: analysis
// only needs the immediate conversational thread.
const promptWindowSize = 6

var validCategories = map[string]struct{}{
	"food":           {},
	"accommodation":  {},
	"attractions":    {},
	"weather":        {},
	"transportation": {},
	"general":        {},
}

// AnalyzerOptions configures the travel query analyzer.
type AnalyzerOptions struct {
	// WindowSize is the number of trailing messages rendered into the
	// analysis prompt.
	WindowSize int
}

// Analyzer classifies travel queries into a typed core.Analysis using an
// underlying language model. Non-travel queries are rejected with an error.
type Analyzer struct {
	model  model.Model
	window core.WindowSelector
}

// NewAnalyzer creates a new travel query analyzer on top of the given model.
func NewAnalyzer(m model.Model, optFns ...func(o *AnalyzerOptions)) *Analyzer {
	opts := AnalyzerOptions{WindowSize: promptWindowSize}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Analyzer{
		model:  m,
		window: core.NewWindowSelector(opts.WindowSize),
	}
}

// Analyze implements core.Analyzer. It renders the query plus the trailing
// conversation window into the analysis prompt and decodes the model's JSON
// reply strictly; the only leniency applied is stripping markdown code fences.
func (a *Analyzer) Analyze(ctx context.Context, query string, history []core.Message) (*core.Analysis, error) {
	prompt := strings.ReplaceAll(analysisPrompt, "{query}", query)
	if rendered := renderHistory(a.window.Select(history)); rendered != "" {
		prompt = contextHeader + "\n" + rendered + "\n\n" + prompt
	}

	raw, err := a.model.Complete(ctx, model.Request{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("analysis completion: %w", err)
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	if analysis.Category == "non_travel" {
		return nil, fmt.Errorf("query is not travel-related")
	}
	if _, ok := validCategories[analysis.Category]; !ok {
		return nil, fmt.Errorf("invalid analysis category %q", analysis.Category)
	}

	return analysis, nil
}

// parseAnalysis decodes the model output into a typed analysis. Markdown code
// fences around the JSON body are tolerated, nothing else is repaired.
func parseAnalysis(raw string) (*core.Analysis, error) {
	cleaned := stripCodeFences(raw)

	var analysis core.Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("malformed analysis payload: %w", err)
	}
	if analysis.Category == "" {
		return nil, fmt.Errorf("malformed analysis payload: missing category")
	}

	return &analysis, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

// renderHistory flattens a message window into role-prefixed lines for
// inclusion in provider prompts.
func renderHistory(window []core.Message) string {
	if len(window) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, msg := range window {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch msg.Role {
		case core.RoleUser:
			sb.WriteString("User: ")
		case core.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString(string(msg.Role) + ": ")
		}
		sb.WriteString(msg.Content)
	}

	return sb.String()
}
