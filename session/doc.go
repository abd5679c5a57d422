// Package session houses concrete implementations of core.SessionStore. The
// interface itself lives in the core package to centralize domain contracts;
// keeping only implementations here prevents higher level packages from
// depending on concrete storage.
//
// Two backends are provided: an in-process store with real TTL semantics for
// tests and single-node deployments, and a Redis store for durable shared
// memory. Both enforce the same bounded-transcript contract, so the wiring
// layer alone decides which one to instantiate.
package session
