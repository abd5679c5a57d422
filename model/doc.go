// Package model defines the provider-agnostic abstraction for the language
// model calls TripMesh's collaborators are built on.
//
// Core goals:
//   - Keep request/response shapes minimal: a blocking completion of a
//     system + user prompt is all the turn engine needs
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the collaborators remain decoupled from vendor SDKs.
package model
