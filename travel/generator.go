package travel

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
)

// Compile time check to ensure Generator satisfies the core.Generator interface.
var _ core.Generator = (*Generator)(nil)

// GeneratorOptions configures the travel response generator.
type GeneratorOptions struct {
	// WindowSize is the number of trailing messages rendered into the
	// generation prompt.
	WindowSize int
}

// Generator composes the assistant reply from the user query, the context
// window and optional retrieval results.
type Generator struct {
	model  model.Model
	window core.WindowSelector
}

// NewGenerator creates a new travel response generator on top of the given model.
func NewGenerator(m model.Model, optFns ...func(o *GeneratorOptions)) *Generator {
	opts := GeneratorOptions{WindowSize: promptWindowSize}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Generator{
		model:  m,
		window: core.NewWindowSelector(opts.WindowSize),
	}
}

// Generate implements core.Generator. With retrieval results the reply is
// grounded in them; without, the model answers conversationally from the
// context window alone.
func (g *Generator) Generate(ctx context.Context, query string, history []core.Message, results []core.SearchResult) (string, error) {
	var prompt string
	if len(results) > 0 {
		prompt = strings.ReplaceAll(generationPrompt, "{query}", query)
		prompt = strings.ReplaceAll(prompt, "{results}", renderResults(results))
	} else {
		prompt = query
	}

	if rendered := renderHistory(g.window.Select(history)); rendered != "" {
		prompt = contextHeader + "\n" + rendered + "\n\n" + prompt
	}

	text, err := g.model.Complete(ctx, model.Request{
		System: systemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("generation completion: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion")
	}

	return text, nil
}

// renderResults flattens retrieval results into numbered source blocks.
func renderResults(results []core.SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%d. %s\n%s\nSource: %s", i+1, r.Title, r.Content, r.URL)
	}

	return sb.String()
}
