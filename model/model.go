package model

import (
	"context"
	"fmt"
)

// Request captures the normalized model input produced by collaborators.
type Request struct {
	// System is the optional system prompt.
	System string `json:"system,omitempty"`
	// Prompt is the user-facing prompt text.
	Prompt string `json:"prompt"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by collaborators to drive
// generation. Complete blocks until the provider returns the full text.
type Model interface {
	Complete(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
	calls     int
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every subsequent Complete call return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Calls returns how many times Complete was invoked.
func (m *MockModel) Calls() int { return m.calls }

// Complete implements Model; returns the canned completion for the prompt or
// a deterministic echo when none was registered.
func (m *MockModel) Complete(ctx context.Context, req Request) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if resp, ok := m.responses[req.Prompt]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", req.Prompt), nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
