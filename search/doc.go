// Package search provides retrieval collaborators backed by web search APIs.
package search
