// Package core provides the foundational domain types and interfaces used by
// TripMesh. It defines the core abstractions for:
//
//   - Messages (immutable transcript entries with role, content and metadata)
//   - TurnState (the mutable record threaded through one turn's processing)
//   - SessionStore (bounded, TTL-scoped transcript persistence)
//   - Collaborator capabilities (analysis, retrieval, generation, follow-up)
//   - The stage error taxonomy routed through TurnState
//
// The package intentionally keeps implementation concerns (persistence
// backends, the routing state machine, concrete collaborators) out of scope,
// exposing small interfaces to enable custom backends and extensions.
package core
