package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileCache keeps one JSON document per session under dir.
type FileCache struct {
	dir     string
	timeout time.Duration
	mu      sync.Mutex
}

// NewFileCache returns a FileCache writing to dir.
func NewFileCache(dir string, timeout time.Duration) *FileCache {
	if dir == "" {
		dir = "data/sessions"
	}
	return &FileCache{dir: dir, timeout: timeout}
}

func (c *FileCache) sessionFile(sessionID string) string {
	return filepath.Join(c.dir, sessionID+".json")
}

// load reads the session document. Expired and corrupted documents are removed
// and reported as missing.
func (c *FileCache) load(sessionID string) (map[string]json.RawMessage, error) {
	sessionFile := c.sessionFile(sessionID)

	info, err := os.Stat(sessionFile)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		if age := time.Since(info.ModTime()); age > c.timeout {
			log.Printf("Session file is too old (%v, max: %v), removing: %s", age, c.timeout, sessionFile)
			_ = os.Remove(sessionFile)
			return nil, os.ErrNotExist
		}
	}

	data, err := os.ReadFile(sessionFile)
	if err != nil {
		log.Printf("Failed to read session file %s: %v", sessionFile, err)
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Failed to unmarshal session file %s (corrupted), removing: %v", sessionFile, err)
		_ = os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}
	return doc, nil
}

func (c *FileCache) Get(_ context.Context, sessionID, key string, dst any) (bool, error) {
	if !validSessionID(sessionID) {
		return false, nil
	}

	c.mu.Lock()
	doc, err := c.load(sessionID)
	c.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	raw, ok := doc[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s for session %s: %w", key, sessionID, err)
	}
	return true, nil
}

func (c *FileCache) Set(ctx context.Context, sessionID, key string, value any) error {
	return c.SetMany(ctx, sessionID, map[string]any{key: value})
}

func (c *FileCache) SetMany(_ context.Context, sessionID string, values map[string]any) error {
	if !validSessionID(sessionID) {
		log.Printf("Skipping save for invalid session ID: %s", sessionID)
		return ErrInvalidSessionID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	doc, err := c.load(sessionID)
	if err != nil {
		doc = make(map[string]json.RawMessage, len(values))
	}
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s for session %s: %w", key, sessionID, err)
		}
		doc[key] = raw
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionID, err)
	}

	sessionFile := c.sessionFile(sessionID)
	tmp := sessionFile + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session file %s: %w", sessionFile, err)
	}
	if err := os.Rename(tmp, sessionFile); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session file %s: %w", sessionFile, err)
	}
	return nil
}

func (c *FileCache) Delete(_ context.Context, sessionID string) error {
	if !validSessionID(sessionID) {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.Remove(c.sessionFile(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *FileCache) Cleanup(_ context.Context, maxAge time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log.Printf("Starting cleanup of sessions older than %v in directory: %s", maxAge, c.dir)
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read sessions directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed, errorCount := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			errorCount++
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		sessionFile := filepath.Join(c.dir, entry.Name())
		if err := os.Remove(sessionFile); err != nil {
			log.Printf("Failed to remove old session file %s: %v", sessionFile, err)
			errorCount++
			continue
		}
		removed++
	}

	log.Printf("Session cleanup completed: removed %d files, %d errors", removed, errorCount)
	return removed, nil
}

func (c *FileCache) Close() error {
	return nil
}
