package testutil

import (
	"time"

	"github.com/hupe1980/tripmesh/core"
)

// TranscriptBuilder assembles message transcripts for tests with sequential
// timestamps so ordering assertions are deterministic.
type TranscriptBuilder struct {
	messages []core.Message
	at       time.Time
}

// NewTranscript creates a builder whose first message is stamped at base.
func NewTranscript(base time.Time) *TranscriptBuilder {
	return &TranscriptBuilder{at: base}
}

// User appends a user message.
func (b *TranscriptBuilder) User(content string) *TranscriptBuilder {
	return b.append(core.NewUserMessage(content))
}

// Assistant appends an assistant message without metadata.
func (b *TranscriptBuilder) Assistant(content string) *TranscriptBuilder {
	return b.append(core.NewAssistantMessage(content, nil))
}

// AssistantWithMeta appends an assistant message carrying turn metadata.
func (b *TranscriptBuilder) AssistantWithMeta(content string, md *core.MessageMetadata) *TranscriptBuilder {
	return b.append(core.NewAssistantMessage(content, md))
}

// Build returns the assembled transcript.
func (b *TranscriptBuilder) Build() []core.Message {
	out := make([]core.Message, len(b.messages))
	copy(out, b.messages)
	return out
}

func (b *TranscriptBuilder) append(msg core.Message) *TranscriptBuilder {
	msg.Timestamp = b.at
	b.at = b.at.Add(time.Second)
	b.messages = append(b.messages, msg)
	return b
}
