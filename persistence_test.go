package main

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
)

// TestSaveLoadSnapshot checks write-through and restore over the app's cache
func TestSaveLoadSnapshot(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	id := "session-0123456789"

	s := app.newQuiz()
	if _, err := s.CheckInput(quiz.SideSubject, "octopus"); err != nil {
		t.Fatal(err)
	}
	app.saveSnapshot(ctx, id, s)

	loaded, ok := app.loadSnapshot(ctx, id)
	if !ok {
		t.Fatal("expected snapshot to load")
	}
	if found, _ := quiz.Progress(loaded.Subjects); found != 1 {
		t.Errorf("restored subjects found = %d, want 1", found)
	}

	app.deleteSnapshot(ctx, id)
	if _, ok := app.loadSnapshot(ctx, id); ok {
		t.Error("snapshot should be gone after delete")
	}
}

// TestLoadSnapshotAfterListChange checks stale snapshots are discarded when the word lists change
func TestLoadSnapshotAfterListChange(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	id := "session-0123456789"
	app.saveSnapshot(ctx, id, app.newQuiz())

	app.Subjects = append(app.Subjects, "Jellyfish")
	s, ok := app.loadSnapshot(ctx, id)
	if ok {
		t.Error("snapshot over old lists should be discarded")
	}
	if len(s.Subjects) != 3 {
		t.Errorf("fresh session has %d subjects, want 3", len(s.Subjects))
	}
}

// TestCleanupSessions checks idle in-memory sessions are evicted
func TestCleanupSessions(t *testing.T) {
	app := newTestApp(t)
	app.GameSessions["idle-session-id"] = &GameState{Quiz: app.newQuiz(), LastAccessTime: time.Now().Add(-2 * time.Hour)}
	app.GameSessions["fresh-session-id"] = &GameState{Quiz: app.newQuiz(), LastAccessTime: time.Now()}

	app.cleanupSessions(context.Background())

	if _, ok := app.GameSessions["idle-session-id"]; ok {
		t.Error("idle session should be evicted")
	}
	if _, ok := app.GameSessions["fresh-session-id"]; !ok {
		t.Error("fresh session should be kept")
	}
}

// TestCleanupRemovesStaleSnapshots checks the scheduled job also clears the store
func TestCleanupRemovesStaleSnapshots(t *testing.T) {
	app := newTestApp(t)
	app.Cache = store.NewFileCache(t.TempDir(), 0)
	c := newClient(t, app.setupRouter())
	c.post(RouteGuess, url.Values{"side": {"subject"}, "text": {"squid"}})

	app.SessionTimeout = time.Nanosecond
	time.Sleep(5 * time.Millisecond)
	app.cleanupSessions(context.Background())

	var stored any
	if ok, _ := app.Cache.Get(context.Background(), c.cookie.Value, store.KeySubjects, &stored); ok {
		t.Error("stale snapshot should be removed")
	}
	if len(app.GameSessions) != 0 {
		t.Errorf("in-memory sessions = %d, want 0", len(app.GameSessions))
	}
}

// TestStartCleanupScheduler checks schedules are validated
func TestStartCleanupScheduler(t *testing.T) {
	app := newTestApp(t)
	scheduler, err := app.startCleanupScheduler()
	if err != nil {
		t.Fatalf("default schedule rejected: %v", err)
	}
	<-scheduler.Stop().Done()

	app.CleanupSchedule = "every now and then"
	if _, err := app.startCleanupScheduler(); err == nil {
		t.Error("expected error for invalid schedule")
	}
}
