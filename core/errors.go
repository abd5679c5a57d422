package core

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable signals that the session store could not be reached.
// Store implementations wrap their transport errors with this sentinel so
// callers can degrade to stateless operation instead of aborting the turn.
var ErrStoreUnavailable = errors.New("session store unavailable")

// ErrorKind classifies which stage of a turn failed. The router treats all
// kinds identically (any failure routes to the error handler); the kind is
// surfaced in result metadata for diagnostics.
type ErrorKind string

const (
	// KindAnalysis covers failures of the query analysis collaborator,
	// including "not on-topic" as a classification outcome.
	KindAnalysis ErrorKind = "analysis"
	// KindRetrieval covers failures of the search collaborator.
	KindRetrieval ErrorKind = "retrieval"
	// KindGeneration covers failures of the generation collaborator,
	// including empty output.
	KindGeneration ErrorKind = "generation"
	// KindFollowUp covers failures of the follow-up heuristic.
	KindFollowUp ErrorKind = "follow_up"
	// KindStore covers degraded persistence.
	KindStore ErrorKind = "store"
)

// StageError wraps a collaborator failure with its stage classification. It
// is captured into TurnState and never thrown past the router.
type StageError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface.
func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *StageError) Unwrap() error { return e.Err }

// NewAnalysisError classifies err as an analysis stage failure.
func NewAnalysisError(err error) *StageError { return &StageError{Kind: KindAnalysis, Err: err} }

// NewRetrievalError classifies err as a retrieval stage failure.
func NewRetrievalError(err error) *StageError { return &StageError{Kind: KindRetrieval, Err: err} }

// NewGenerationError classifies err as a generation stage failure.
func NewGenerationError(err error) *StageError { return &StageError{Kind: KindGeneration, Err: err} }

// NewFollowUpError classifies err as a follow-up stage failure.
func NewFollowUpError(err error) *StageError { return &StageError{Kind: KindFollowUp, Err: err} }
