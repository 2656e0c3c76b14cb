// Package store persists quiz session snapshots as JSON values under fixed key
// names, one namespace per session.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Key names for the values that make up a session snapshot.
const (
	KeyAdjectives         = "adjectives"
	KeySubjects           = "subjects"
	KeyAdjectiveSelection = "adjectiveSelection"
	KeySubjectSelection   = "subjectSelection"
	KeyAdjectiveInput     = "adjectiveInput"
	KeySubjectInput       = "subjectInput"
	KeyHintCount          = "hintCount"
	KeyRevealCount        = "revealCount"
	KeyTimer              = "timer"
	KeyGaveUp             = "gaveUp"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// MinSessionIDLength guards against writing snapshots for junk cookie values.
const MinSessionIDLength = 10

var (
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrUnknownBackend   = errors.New("unknown store backend")
)

// Cache is a get/set key-value cache with JSON serialization, namespaced by session.
type Cache interface {
	// Get decodes the value stored under key into dst. It reports false when
	// the session or key does not exist.
	Get(ctx context.Context, sessionID, key string, dst any) (bool, error)
	Set(ctx context.Context, sessionID, key string, value any) error
	// SetMany stores several keys in one write.
	SetMany(ctx context.Context, sessionID string, values map[string]any) error
	Delete(ctx context.Context, sessionID string) error
	// Cleanup removes sessions not written within maxAge and returns how many were removed.
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)
	Close() error
}

// Open returns the cache for backend rooted at path. Sessions older than
// timeout are treated as missing.
func Open(backend, path string, timeout time.Duration) (Cache, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileCache(path, timeout), nil
	case BackendSQLite:
		return NewSQLiteCache(path, timeout)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

func validSessionID(id string) bool {
	if len(id) < MinSessionIDLength {
		return false
	}
	// Session IDs become file names.
	return !strings.ContainsAny(id, `/\.`)
}
