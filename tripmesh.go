// Package tripmesh provides a session-aware travel chatbot engine: a staged
// turn router over pluggable collaborators (analysis, retrieval, generation,
// follow-up) combined with bounded, expiring conversation memory.
//
// The top-level Chatbot is the façade intended for transports and embedders.
// It owns session key minting, the context window snapshot, transcript
// persistence and graceful degradation when the memory backend is down; the
// staged processing itself lives in the router package.
package tripmesh

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/router"
	"github.com/hupe1980/tripmesh/session"
)

// blankInputReply is returned for whitespace-only input without starting a
// turn or touching the session store.
const blankInputReply = "Please enter a message so I can help with your travel plans."

// Options holds configuration overrides passed to New.
type Options struct {
	// Store is the session memory backend.
	Store core.SessionStore
	// WindowSize bounds the context window snapshot taken at turn start.
	WindowSize int
	// CallTimeout bounds every collaborator call inside a turn.
	CallTimeout time.Duration
	// MaxSearchResults truncates retrieval output before generation.
	MaxSearchResults int
	// Logger receives structured diagnostics.
	Logger logging.Logger
}

// Chatbot is the conversational engine façade. A single instance is safe for
// concurrent turns; per-turn state is never shared.
type Chatbot struct {
	store      core.SessionStore
	router     *router.Router
	windowSize int
	logger     logging.Logger

	// memReady latches after the first successful store ping so the probe
	// is not repeated on every turn.
	memReady atomic.Bool
}

// New creates a Chatbot over the four collaborator capabilities. Without an
// explicit store it keeps sessions in process memory.
func New(
	analyzer core.Analyzer,
	retriever core.Retriever,
	generator core.Generator,
	followUp core.FollowUpChecker,
	optFns ...func(o *Options),
) *Chatbot {
	opts := Options{
		WindowSize:       core.DefaultWindowSize,
		CallTimeout:      30 * time.Second,
		MaxSearchResults: 5,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Store == nil {
		opts.Store = session.NewInMemoryStore()
	}

	r := router.New(analyzer, retriever, generator, followUp, func(o *router.Options) {
		o.CallTimeout = opts.CallTimeout
		o.MaxResults = opts.MaxSearchResults
		o.Logger = opts.Logger
	})

	return &Chatbot{
		store:      opts.Store,
		router:     r,
		windowSize: opts.WindowSize,
		logger:     opts.Logger,
	}
}

// TurnMetadata is the per-turn diagnostic block returned to callers.
type TurnMetadata struct {
	Category           string `json:"category,omitempty"`
	Location           string `json:"location,omitempty"`
	SearchResultsCount int    `json:"searchResultsCount"`
	NeedsMoreInfo      bool   `json:"needsMoreInfo"`
	MemoryEnabled      bool   `json:"memoryEnabled"`
	Error              string `json:"error,omitempty"`
}

// TurnResult is the outcome of one HandleTurn call.
type TurnResult struct {
	Response   string       `json:"response"`
	SessionKey string       `json:"sessionId"`
	Metadata   TurnMetadata `json:"metadata"`
}

// HandleTurn processes one user message end to end: session resolution,
// context window snapshot, transcript append, the staged turn itself and the
// post-turn persistence. It returns an error only when ctx is cancelled;
// every collaborator or store fault degrades into the result instead.
//
// An empty sessionKey mints a fresh session. Whitespace-only input is
// rejected up front without touching the store.
func (c *Chatbot) HandleTurn(ctx context.Context, sessionKey, userText string) (*TurnResult, error) {
	query := strings.TrimSpace(userText)
	if query == "" {
		return &TurnResult{
			Response:   blankInputReply,
			SessionKey: sessionKey,
			Metadata:   TurnMetadata{Error: "empty input"},
		}, nil
	}

	if sessionKey == "" {
		sessionKey = mintSessionKey()
		c.logger.Debug("minted session key", "session_key", sessionKey)
	}

	memOK := c.memoryReady(ctx)

	var history []core.Message
	if memOK {
		snapshot, err := c.store.ReadRecent(ctx, sessionKey, c.windowSize)
		if err != nil {
			c.logger.Warn("context window read failed, continuing stateless", "session_key", sessionKey, "error", err.Error())
			memOK = false
		} else {
			history = snapshot
		}
	}

	st := core.NewTurnState(sessionKey, query, history)

	if memOK {
		if err := c.store.Append(ctx, sessionKey, core.NewUserMessage(query)); err != nil {
			c.logger.Warn("user message append failed, continuing stateless", "session_key", sessionKey, "error", err.Error())
			memOK = false
		}
	}

	if err := c.router.Run(ctx, st); err != nil {
		return nil, err
	}

	response := st.Response
	if response == "" {
		response = router.Apology
	}

	md := TurnMetadata{
		SearchResultsCount: len(st.Retrieval),
		NeedsMoreInfo:      st.NeedsFollowUp,
		MemoryEnabled:      memOK,
	}
	if st.Analysis != nil {
		md.Category = st.Analysis.Category
		md.Location = st.Analysis.Location
	}
	if err := st.Err(); err != nil {
		md.Error = err.Error()
	}

	if memOK {
		assistant := core.NewAssistantMessage(response, &core.MessageMetadata{
			Category:           md.Category,
			Location:           md.Location,
			SearchResultsCount: md.SearchResultsCount,
			NeedsMoreInfo:      md.NeedsMoreInfo,
			Error:              md.Error,
		})
		if err := c.store.Append(ctx, sessionKey, assistant); err != nil {
			c.logger.Warn("assistant message append failed", "session_key", sessionKey, "error", err.Error())
			md.MemoryEnabled = false
		} else if err := c.store.RefreshTTL(ctx, sessionKey); err != nil {
			c.logger.Warn("session ttl refresh failed", "session_key", sessionKey, "error", err.Error())
		}
	}

	return &TurnResult{
		Response:   response,
		SessionKey: sessionKey,
		Metadata:   md,
	}, nil
}

// EnsureReady probes the session store eagerly so embedders can fail fast at
// startup instead of degrading on the first turn.
func (c *Chatbot) EnsureReady(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("session store not ready: %w", err)
	}
	c.memReady.Store(true)
	return nil
}

// memoryReady reports whether the store is usable, probing it once per call
// until the first success latches.
func (c *Chatbot) memoryReady(ctx context.Context) bool {
	if c.memReady.Load() {
		return true
	}
	if err := c.store.Ping(ctx); err != nil {
		c.logger.Warn("session store unavailable, memory disabled for this turn", "error", err.Error())
		return false
	}
	c.memReady.Store(true)
	return true
}

// GetHistory returns the full transcript for a session in insertion order.
func (c *Chatbot) GetHistory(ctx context.Context, sessionKey string) ([]core.Message, error) {
	return c.store.ReadAll(ctx, sessionKey)
}

// ClearHistory removes the session transcript. Clearing an unknown session
// succeeds.
func (c *Chatbot) ClearHistory(ctx context.Context, sessionKey string) error {
	return c.store.Delete(ctx, sessionKey)
}

// SessionSummary aggregates a session transcript without replaying turns.
type SessionSummary struct {
	SessionKey        string    `json:"sessionId"`
	MessageCount      int       `json:"messageCount"`
	UserMessages      int       `json:"userMessages"`
	AssistantMessages int       `json:"assistantMessages"`
	Categories        []string  `json:"categories,omitempty"`
	Locations         []string  `json:"locations,omitempty"`
	FirstMessageAt    time.Time `json:"firstMessageAt,omitzero"`
	LastMessageAt     time.Time `json:"lastMessageAt,omitzero"`
	MemoryEnabled     bool      `json:"memoryEnabled"`
}

// GetSummary derives a summary from the stored transcript. Categories and
// locations are listed in first-seen order, deduplicated.
func (c *Chatbot) GetSummary(ctx context.Context, sessionKey string) (*SessionSummary, error) {
	log, err := c.store.ReadAll(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	summary := &SessionSummary{
		SessionKey:    sessionKey,
		MessageCount:  len(log),
		MemoryEnabled: true,
	}

	seenCategories := make(map[string]struct{})
	seenLocations := make(map[string]struct{})
	for i, msg := range log {
		if i == 0 {
			summary.FirstMessageAt = msg.Timestamp
		}
		summary.LastMessageAt = msg.Timestamp

		switch msg.Role {
		case core.RoleUser:
			summary.UserMessages++
		case core.RoleAssistant:
			summary.AssistantMessages++
		}

		if msg.Metadata == nil {
			continue
		}
		if cat := msg.Metadata.Category; cat != "" {
			if _, ok := seenCategories[cat]; !ok {
				seenCategories[cat] = struct{}{}
				summary.Categories = append(summary.Categories, cat)
			}
		}
		if loc := msg.Metadata.Location; loc != "" {
			if _, ok := seenLocations[loc]; !ok {
				seenLocations[loc] = struct{}{}
				summary.Locations = append(summary.Locations, loc)
			}
		}
	}

	return summary, nil
}

// Health describes the engine's dependency status.
type Health struct {
	Status  string `json:"status"` // "healthy" or "unhealthy"
	Message string `json:"message,omitempty"`
}

// HealthCheck probes the session store and reports overall engine health.
func (c *Chatbot) HealthCheck(ctx context.Context) Health {
	if err := c.store.Ping(ctx); err != nil {
		return Health{Status: "unhealthy", Message: err.Error()}
	}
	return Health{Status: "healthy"}
}

// Close releases the session store.
func (c *Chatbot) Close() error {
	return c.store.Close()
}

// mintSessionKey creates a unique session identifier with a sortable
// millisecond prefix.
func mintSessionKey() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
