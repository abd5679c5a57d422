package travel

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/core"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("grounded prompt includes numbered results", func(t *testing.T) {
		m := &stubModel{response: "Ichiran and Sukiyabashi Jiro are standouts."}
		gen := NewGenerator(m)

		results := []core.SearchResult{
			{Title: "Tokyo dining guide", Content: "Ichiran is famous for ramen.", URL: "https://example.com/tokyo"},
			{Title: "Sushi spots", Content: "Sukiyabashi Jiro is legendary.", URL: "https://example.com/sushi"},
		}

		text, err := gen.Generate(context.Background(), "Best restaurants in Tokyo?", nil, results)
		require.NoError(t, err)

		assert.Equal(t, "Ichiran and Sukiyabashi Jiro are standouts.", text)
		assert.Equal(t, systemPrompt, m.lastReq.System)
		assert.Contains(t, m.lastReq.Prompt, "1. Tokyo dining guide")
		assert.Contains(t, m.lastReq.Prompt, "2. Sushi spots")
		assert.Contains(t, m.lastReq.Prompt, "Source: https://example.com/tokyo")
		assert.Contains(t, m.lastReq.Prompt, "Best restaurants in Tokyo?")
	})

	t.Run("without results the prompt is conversational", func(t *testing.T) {
		m := &stubModel{response: "Japan is wonderful in spring."}
		gen := NewGenerator(m)

		history := []core.Message{
			core.NewUserMessage("I want to visit Japan"),
		}

		text, err := gen.Generate(context.Background(), "When should I go?", history, nil)
		require.NoError(t, err)

		assert.Equal(t, "Japan is wonderful in spring.", text)
		assert.NotContains(t, m.lastReq.Prompt, "Search results:")
		assert.Contains(t, m.lastReq.Prompt, contextHeader)
		assert.Contains(t, m.lastReq.Prompt, "User: I want to visit Japan")
		assert.Contains(t, m.lastReq.Prompt, "When should I go?")
	})

	t.Run("empty completion is an error", func(t *testing.T) {
		m := &stubModel{response: "   \n"}
		gen := NewGenerator(m)

		_, err := gen.Generate(context.Background(), "Best restaurants in Tokyo?", nil, nil)
		require.Error(t, err)

		assert.Contains(t, err.Error(), "empty completion")
	})

	t.Run("model failure is propagated", func(t *testing.T) {
		m := &stubModel{err: fmt.Errorf("upstream timeout")}
		gen := NewGenerator(m)

		_, err := gen.Generate(context.Background(), "Best restaurants in Tokyo?", nil, nil)
		require.Error(t, err)

		assert.Contains(t, err.Error(), "upstream timeout")
	})
}

func TestRenderResults(t *testing.T) {
	rendered := renderResults([]core.SearchResult{
		{Title: "A", Content: "alpha", URL: "https://a.example"},
		{Title: "B", Content: "beta", URL: "https://b.example"},
	})

	assert.Contains(t, rendered, "1. A\nalpha\nSource: https://a.example")
	assert.Contains(t, rendered, "2. B\nbeta\nSource: https://b.example")
}
