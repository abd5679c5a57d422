package core

import (
	"fmt"
	"testing"
)

func TestWindowSelector_Select(t *testing.T) {
	log := make([]Message, 15)
	for i := range log {
		log[i] = NewUserMessage(fmt.Sprintf("m%d", i))
	}

	w := NewWindowSelector(10)
	got := w.Select(log)
	if len(got) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(got))
	}
	if got[0].Content != "m5" || got[9].Content != "m14" {
		t.Errorf("window should keep the most recent messages, got %s..%s", got[0].Content, got[9].Content)
	}

	short := w.Select(log[:3])
	if len(short) != 3 {
		t.Errorf("short transcripts pass through unchanged, got %d", len(short))
	}
}

func TestNewWindowSelector_Default(t *testing.T) {
	if w := NewWindowSelector(0); w.Size != DefaultWindowSize {
		t.Errorf("expected default size %d, got %d", DefaultWindowSize, w.Size)
	}
}
