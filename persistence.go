package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
)

// saveSnapshot writes a session through to the snapshot store. Failures are
// logged; the in-memory session stays authoritative.
func (app *App) saveSnapshot(ctx context.Context, sessionID string, s *quiz.Session) {
	if err := store.SaveSession(ctx, app.Cache, sessionID, s); err != nil {
		logWarn("Failed to save snapshot for session %s: %v", sessionID, err)
	}
}

// loadSnapshot restores a session from the snapshot store, or returns a fresh
// one when nothing usable is stored.
func (app *App) loadSnapshot(ctx context.Context, sessionID string) (*quiz.Session, bool) {
	return store.LoadSession(ctx, app.Cache, sessionID, app.newQuiz())
}

func (app *App) deleteSnapshot(ctx context.Context, sessionID string) {
	if err := app.Cache.Delete(ctx, sessionID); err != nil {
		logWarn("Failed to delete snapshot for session %s: %v", sessionID, err)
	}
}

// cleanupSessions evicts idle in-memory sessions and removes stale snapshots.
func (app *App) cleanupSessions(ctx context.Context) {
	logInfo("Starting cleanup of sessions older than %v", app.SessionTimeout)
	evicted := app.evictIdleSessions(time.Now())

	removed, err := app.Cache.Cleanup(ctx, app.SessionTimeout)
	if err != nil {
		logWarn("Snapshot cleanup failed: %v", err)
	}
	logInfo("Session cleanup completed: evicted %d in-memory sessions, removed %d snapshots", evicted, removed)
}

// startCleanupScheduler runs cleanupSessions on CleanupSchedule.
func (app *App) startCleanupScheduler() (*cron.Cron, error) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(app.CleanupSchedule, func() {
		app.cleanupSessions(context.Background())
	}); err != nil {
		return nil, err
	}
	scheduler.Start()
	logInfo("Session cleanup scheduled: %s", app.CleanupSchedule)
	return scheduler, nil
}
