package router

// Stage identifies one named unit of work in the turn state machine. The set
// is closed; Next is total over it.
type Stage int

const (
	// StageAnalyze classifies the query against the context window.
	StageAnalyze Stage = iota
	// StageDecideRetrieval decides whether external retrieval is required.
	StageDecideRetrieval
	// StageRetrieve fetches documents for the analyzed search query.
	StageRetrieve
	// StageGenerate composes the assistant reply.
	StageGenerate
	// StageCheckFollowUp runs the follow-up heuristic on the drafted reply.
	StageCheckFollowUp
	// StageHandleError is the sink for any stage failure; it always succeeds
	// in producing a user-safe message.
	StageHandleError
	// StageDone terminates the turn.
	StageDone
)

// String returns the stage name used in logs.
func (s Stage) String() string {
	switch s {
	case StageAnalyze:
		return "analyze"
	case StageDecideRetrieval:
		return "decide_retrieval"
	case StageRetrieve:
		return "retrieve"
	case StageGenerate:
		return "generate"
	case StageCheckFollowUp:
		return "check_follow_up"
	case StageHandleError:
		return "handle_error"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
