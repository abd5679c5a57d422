package core

// DefaultWindowSize bounds the recency window handed to reasoning calls when
// no explicit size is configured.
const DefaultWindowSize = 10

// WindowSelector derives the bounded-recency subset of a transcript supplied
// to reasoning calls. It is deliberately decoupled from the store's own
// retention bound: a collaborator may run on a tighter window than the store
// keeps, and the store may keep more than any collaborator reads.
type WindowSelector struct {
	Size int
}

// NewWindowSelector returns a selector for the last size messages. A size of
// zero or less falls back to DefaultWindowSize.
func NewWindowSelector(size int) WindowSelector {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return WindowSelector{Size: size}
}

// Select returns the last Size messages of log without copying. The returned
// slice must be treated as read-only, like the transcript it views.
func (w WindowSelector) Select(log []Message) []Message {
	if len(log) <= w.Size {
		return log
	}
	return log[len(log)-w.Size:]
}
