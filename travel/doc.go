// Package travel implements the travel-assistant collaborators consumed by
// the turn router: a query analyzer producing a strictly-typed classification,
// a retrieval-grounded response generator and a follow-up heuristic.
//
// Any leniency toward provider output (e.g. markdown code fences around JSON)
// lives here in the adapters; the router core only ever sees a typed
// core.Analysis or a typed failure.
package travel
