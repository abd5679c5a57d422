package core

import (
	"errors"
	"testing"
)

func TestTurnState_FirstErrorWins(t *testing.T) {
	st := NewTurnState("s1", "hello", nil)
	if st.Failed() {
		t.Fatal("fresh state should not be failed")
	}

	first := NewAnalysisError(errors.New("boom"))
	st.Fail(first)
	st.Fail(NewGenerationError(errors.New("later")))

	if st.Err() != first {
		t.Fatalf("expected first error to stick, got %v", st.Err())
	}
	if st.Err().Kind != KindAnalysis {
		t.Errorf("expected analysis kind, got %s", st.Err().Kind)
	}
}

func TestTurnState_Drafted(t *testing.T) {
	st := NewTurnState("s1", "hello", nil)
	if st.Drafted() {
		t.Error("no response yet")
	}
	st.Response = "hi there"
	if !st.Drafted() {
		t.Error("response should mark the turn as drafted")
	}
}

func TestStageError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewRetrievalError(cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	var se *StageError
	if !errors.As(error(err), &se) || se.Kind != KindRetrieval {
		t.Errorf("expected retrieval StageError, got %v", err)
	}
}
