// Package testutil provides shared helpers for tests across the module.
package testutil
