package core

// TurnState is the mutable record threaded through one turn's processing.
// It is owned exclusively by one in-flight turn and never shared across
// concurrent turns, even for the same session key.
//
// Field invariants (one writer stage each, set at most once):
//   - Query and History are fixed at construction; History is the context
//     window snapshot taken at turn start and is read-only during the turn.
//   - Analysis is set only by the analyze stage; its absence afterwards
//     signals a non-actionable query.
//   - Retrieval is set only by the retrieve stage; an empty slice with
//     RetrievalDone true means retrieval was attempted and found nothing.
//   - Response is set only by the generate stage (or, as a fallback, by the
//     error handler).
//   - The error is sticky: the first failure wins and dominates all
//     subsequent routing decisions.
type TurnState struct {
	SessionKey string
	Query      string
	History    []Message

	Analysis      *Analysis
	Retrieval     []SearchResult
	RetrievalDone bool
	Response      string

	NeedsRetrieval bool
	NeedsFollowUp  bool

	err *StageError
}

// NewTurnState builds the state for one turn from the raw query and the
// context window snapshot.
func NewTurnState(sessionKey, query string, history []Message) *TurnState {
	return &TurnState{SessionKey: sessionKey, Query: query, History: history}
}

// Fail records a stage failure. Only the first failure is kept; later calls
// are no-ops so that the original fault is never masked.
func (t *TurnState) Fail(err *StageError) {
	if t.err == nil {
		t.err = err
	}
}

// Err returns the recorded stage failure, or nil.
func (t *TurnState) Err() *StageError { return t.err }

// Failed reports whether any stage has failed.
func (t *TurnState) Failed() bool { return t.err != nil }

// Drafted reports whether a response has been produced. Once true, the turn
// is on the path to completion and later-stage failures must not discard it.
func (t *TurnState) Drafted() bool { return t.Response != "" }
