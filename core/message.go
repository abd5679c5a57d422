package core

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks a message authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a message authored by the assistant.
	RoleAssistant Role = "assistant"
)

// MessageMetadata carries per-message diagnostic fields. It is attached to
// assistant messages so that summaries can be derived from the transcript
// alone, without replaying turns.
type MessageMetadata struct {
	Category           string `json:"category,omitempty"`
	Location           string `json:"location,omitempty"`
	SearchResultsCount int    `json:"searchResultsCount,omitempty"`
	NeedsMoreInfo      bool   `json:"needsMoreInfo,omitempty"`
	Error              string `json:"error,omitempty"`
}

// Message is a single transcript entry. Messages are immutable once appended;
// the Timestamp is stamped server-side by the SessionStore on append, and
// insertion order is the chronological order of the conversation.
type Message struct {
	Role      Role             `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// NewUserMessage creates a user transcript entry. The timestamp is left zero
// and assigned by the store on append.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant transcript entry with optional
// metadata. The timestamp is assigned by the store on append.
func NewAssistantMessage(content string, md *MessageMetadata) Message {
	return Message{Role: RoleAssistant, Content: content, Metadata: md}
}
