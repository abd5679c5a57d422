// Package router implements the turn-routing state machine: a small directed
// graph of named stages with conditional edges driven by the TurnState.
//
// The transition function Next is pure and total over the closed Stage
// enumeration, so the full routing behavior can be tested without invoking
// any collaborator. The Router executes stages strictly sequentially for one
// turn; it holds no state of its own between turns.
package router
