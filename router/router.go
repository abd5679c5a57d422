package router

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
)

// Apology is the fixed user-safe reply for turns that end on the error path
// without a drafted response. Internal fault detail travels in metadata only.
const Apology = "Sorry, I ran into a problem while handling your request. Please try again or ask something else."

// Next is the transition function of the state machine. It is a pure function
// of (current stage, turn state): the error is sticky and checked first at
// every junction. The one exception is a DecideRetrieval failure after a
// response was already drafted, which short-circuits to Done so the partial
// answer is preferred over discarding it.
func Next(s Stage, st *core.TurnState) Stage {
	switch s {
	case StageAnalyze:
		if st.Failed() {
			return StageHandleError
		}
		return StageDecideRetrieval
	case StageDecideRetrieval:
		if st.Failed() {
			if st.Drafted() {
				return StageDone
			}
			return StageHandleError
		}
		if st.NeedsRetrieval {
			return StageRetrieve
		}
		return StageGenerate
	case StageRetrieve:
		if st.Failed() {
			return StageHandleError
		}
		return StageGenerate
	case StageGenerate:
		if st.Failed() {
			return StageHandleError
		}
		return StageCheckFollowUp
	case StageCheckFollowUp:
		if st.Failed() {
			return StageHandleError
		}
		return StageDone
	case StageHandleError:
		return StageDone
	default:
		return StageDone
	}
}

// Options holds configuration overrides passed to New.
type Options struct {
	// CallTimeout bounds every collaborator call; expiry surfaces as the
	// stage's typed failure.
	CallTimeout time.Duration
	// MaxResults truncates the retrieval result sequence before use.
	MaxResults int
	// Logger receives per-stage debug output.
	Logger logging.Logger
}

// Router drives one turn through the stage graph. It holds only immutable
// collaborator references and configuration; all per-turn state lives in the
// TurnState, so a single Router is safe for concurrent turns.
type Router struct {
	analyzer  core.Analyzer
	retriever core.Retriever
	generator core.Generator
	followUp  core.FollowUpChecker

	callTimeout time.Duration
	maxResults  int
	logger      logging.Logger
}

// New constructs a Router over the four collaborator capabilities with
// optional overrides.
func New(
	analyzer core.Analyzer,
	retriever core.Retriever,
	generator core.Generator,
	followUp core.FollowUpChecker,
	optFns ...func(o *Options),
) *Router {
	opts := Options{
		CallTimeout: 30 * time.Second,
		MaxResults:  5,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Router{
		analyzer:    analyzer,
		retriever:   retriever,
		generator:   generator,
		followUp:    followUp,
		callTimeout: opts.CallTimeout,
		maxResults:  opts.MaxResults,
		logger:      opts.Logger,
	}
}

// Run executes the stage sequence for one turn, mutating st until the machine
// reaches Done. Collaborator faults are captured into st and routed through
// the error handler; the only error Run itself returns is cancellation of the
// ambient context.
func (r *Router) Run(ctx context.Context, st *core.TurnState) error {
	for stage := StageAnalyze; stage != StageDone; stage = Next(stage, st) {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Debug("router stage starting", "stage", stage.String(), "session_key", st.SessionKey)
		r.runStage(ctx, stage, st)
	}
	return nil
}

func (r *Router) runStage(ctx context.Context, stage Stage, st *core.TurnState) {
	switch stage {
	case StageAnalyze:
		r.analyze(ctx, st)
	case StageDecideRetrieval:
		r.decideRetrieval(st)
	case StageRetrieve:
		r.retrieve(ctx, st)
	case StageGenerate:
		r.generate(ctx, st)
	case StageCheckFollowUp:
		r.checkFollowUp(ctx, st)
	case StageHandleError:
		r.handleError(st)
	}
}

func (r *Router) analyze(ctx context.Context, st *core.TurnState) {
	cctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	analysis, err := r.analyzer.Analyze(cctx, st.Query, st.History)
	if err != nil {
		st.Fail(core.NewAnalysisError(err))
		return
	}
	st.Analysis = analysis
}

func (r *Router) decideRetrieval(st *core.TurnState) {
	if st.Analysis == nil {
		st.Fail(core.NewAnalysisError(errors.New("no actionable intent extracted")))
		return
	}
	st.NeedsRetrieval = st.Analysis.NeedsRetrieval && st.Analysis.SearchQuery != ""
}

func (r *Router) retrieve(ctx context.Context, st *core.TurnState) {
	cctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	results, err := r.retriever.Retrieve(cctx, st.Analysis.SearchQuery)
	if err != nil {
		st.Fail(core.NewRetrievalError(err))
		return
	}
	if len(results) > r.maxResults {
		results = results[:r.maxResults]
	}
	st.Retrieval = results
	st.RetrievalDone = true
	r.logger.Debug("retrieval completed", "session_key", st.SessionKey, "results", len(results))
}

func (r *Router) generate(ctx context.Context, st *core.TurnState) {
	cctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	var results []core.SearchResult
	if st.RetrievalDone {
		results = st.Retrieval
	}
	text, err := r.generator.Generate(cctx, st.Query, st.History, results)
	if err != nil {
		st.Fail(core.NewGenerationError(err))
		return
	}
	if text == "" {
		st.Fail(core.NewGenerationError(errors.New("empty completion")))
		return
	}
	st.Response = text
}

func (r *Router) checkFollowUp(ctx context.Context, st *core.TurnState) {
	cctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	more, err := r.followUp.CheckFollowUp(cctx, st)
	if err != nil {
		st.Fail(core.NewFollowUpError(err))
		return
	}
	st.NeedsFollowUp = more
}

// handleError is terminal and always succeeds: it guarantees a user-safe
// response without overwriting one that was already drafted.
func (r *Router) handleError(st *core.TurnState) {
	if err := st.Err(); err != nil {
		r.logger.Warn("turn failed", "session_key", st.SessionKey, "kind", string(err.Kind), "error", err.Err.Error())
	}
	if !st.Drafted() {
		st.Response = Apology
	}
}
