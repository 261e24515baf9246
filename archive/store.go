// Package archive persists negotiation artifacts: product descriptors that
// seed new sessions and transcripts left behind by finished ones. Artifacts
// live in a flat key-value namespace where keys are /-separated paths under
// a per-kind prefix, so a filesystem store maps them 1:1 onto files.
package archive

import (
	"context"
	"path"
)

// Top-level namespaces in the artifact key hierarchy.
const (
	NamespaceProducts    = "products"
	NamespaceTranscripts = "transcripts"
)

// Entry is a key-value pair in the artifact namespace. Keys are /-separated
// paths and values are raw bytes, JSON for the built-in artifact types.
type Entry struct {
	Key   string
	Value []byte
}

// Store translates between external storage and the artifact namespace.
// Implementations are stateless and perform I/O on each call.
type Store interface {
	// List returns all available keys in the store.
	List(ctx context.Context) ([]string, error)
	// Load retrieves entries for the specified keys.
	Load(ctx context.Context, keys ...string) ([]Entry, error)
	// Save persists entries, creating or overwriting as needed.
	Save(ctx context.Context, entries ...Entry) error
	// Delete removes entries. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// ProductKey returns the store key for a named product descriptor.
func ProductKey(name string) string {
	return path.Join(NamespaceProducts, name+".json")
}

// TranscriptKey returns the store key for a session's transcript.
func TranscriptKey(sessionID string) string {
	return path.Join(NamespaceTranscripts, sessionID+".json")
}
