package travel

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
)

// stubModel captures the last request and returns a fixed completion.
type stubModel struct {
	response string
	err      error
	lastReq  model.Request
}

func (s *stubModel) Complete(_ context.Context, req model.Request) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubModel) Info() model.Info {
	return model.Info{Name: "stub", Provider: "mock"}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Run("travel query yields typed analysis", func(t *testing.T) {
		m := &stubModel{response: `{"category": "food", "location": "Tokyo", "intent": "restaurant_recommendation", "keywords": ["restaurants", "Tokyo"], "searchQuery": "best restaurants in Tokyo", "needsSearch": true}`}
		analyzer := NewAnalyzer(m)

		analysis, err := analyzer.Analyze(context.Background(), "Best restaurants in Tokyo?", nil)
		require.NoError(t, err)

		assert.Equal(t, "food", analysis.Category)
		assert.Equal(t, "Tokyo", analysis.Location)
		assert.Equal(t, "best restaurants in Tokyo", analysis.SearchQuery)
		assert.True(t, analysis.NeedsRetrieval)
	})

	t.Run("code fences around payload are tolerated", func(t *testing.T) {
		m := &stubModel{response: "```json\n{\"category\": \"weather\", \"location\": \"Paris\", \"intent\": \"forecast\", \"searchQuery\": \"Paris weather\", \"needsSearch\": true}\n```"}
		analyzer := NewAnalyzer(m)

		analysis, err := analyzer.Analyze(context.Background(), "Weather in Paris?", nil)
		require.NoError(t, err)

		assert.Equal(t, "weather", analysis.Category)
		assert.Equal(t, "Paris", analysis.Location)
	})

	t.Run("non-travel query is rejected", func(t *testing.T) {
		m := &stubModel{response: `{"category": "non_travel", "intent": "not_travel_related", "searchQuery": "", "needsSearch": false}`}
		analyzer := NewAnalyzer(m)

		analysis, err := analyzer.Analyze(context.Background(), "Write me a poem", nil)
		require.Error(t, err)

		assert.Nil(t, analysis)
		assert.Contains(t, err.Error(), "not travel-related")
	})

	t.Run("malformed payload is a typed failure, not repaired", func(t *testing.T) {
		m := &stubModel{response: `{"category": "food", "location":`}
		analyzer := NewAnalyzer(m)

		_, err := analyzer.Analyze(context.Background(), "Best restaurants in Tokyo?", nil)
		require.Error(t, err)

		assert.Contains(t, err.Error(), "malformed analysis payload")
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		m := &stubModel{response: `{"category": "shopping", "intent": "buy", "searchQuery": "malls", "needsSearch": true}`}
		analyzer := NewAnalyzer(m)

		_, err := analyzer.Analyze(context.Background(), "Where to shop?", nil)
		require.Error(t, err)

		assert.Contains(t, err.Error(), "invalid analysis category")
	})

	t.Run("model failure is propagated", func(t *testing.T) {
		m := &stubModel{err: fmt.Errorf("rate limited")}
		analyzer := NewAnalyzer(m)

		_, err := analyzer.Analyze(context.Background(), "Best restaurants in Tokyo?", nil)
		require.Error(t, err)

		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("window is rendered into the prompt", func(t *testing.T) {
		m := &stubModel{response: `{"category": "general", "intent": "planning", "searchQuery": "", "needsSearch": false}`}
		analyzer := NewAnalyzer(m)

		history := []core.Message{
			core.NewUserMessage("I want to visit Japan"),
			core.NewAssistantMessage("Great choice!", nil),
		}

		_, err := analyzer.Analyze(context.Background(), "What should I plan first?", history)
		require.NoError(t, err)

		assert.Contains(t, m.lastReq.Prompt, contextHeader)
		assert.Contains(t, m.lastReq.Prompt, "User: I want to visit Japan")
		assert.Contains(t, m.lastReq.Prompt, "Assistant: Great choice!")
		assert.Contains(t, m.lastReq.Prompt, "What should I plan first?")
	})

	t.Run("prompt window is bounded", func(t *testing.T) {
		m := &stubModel{response: `{"category": "general", "intent": "planning", "searchQuery": "", "needsSearch": false}`}
		analyzer := NewAnalyzer(m, func(o *AnalyzerOptions) {
			o.WindowSize = 2
		})

		var history []core.Message
		for i := 0; i < 6; i++ {
			history = append(history, core.NewUserMessage(fmt.Sprintf("message %d", i)))
		}

		_, err := analyzer.Analyze(context.Background(), "Anything else?", history)
		require.NoError(t, err)

		assert.NotContains(t, m.lastReq.Prompt, "message 3")
		assert.Contains(t, m.lastReq.Prompt, "message 4")
		assert.Contains(t, m.lastReq.Prompt, "message 5")
	})
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("  ```json\n{\"a\":1}\n```  "))
}

func TestRenderHistory(t *testing.T) {
	assert.Empty(t, renderHistory(nil))

	rendered := renderHistory([]core.Message{
		core.NewUserMessage("hello"),
		core.NewAssistantMessage("hi there", nil),
	})

	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "User: hello", lines[0])
	assert.Equal(t, "Assistant: hi there", lines[1])
}
