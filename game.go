package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/types"
)

// newQuiz returns a session in its initial state over the canonical lists.
func (app *App) newQuiz() *quiz.Session {
	return quiz.NewSession(app.Adjectives, app.Subjects)
}

// getGameState returns the session for sessionID, restoring it from the
// snapshot store or creating it when it is not in memory. The caller must hold
// SessionMutex for writing.
func (app *App) getGameState(ctx context.Context, sessionID string) *GameState {
	reqID, _ := ctx.Value(requestIDKey).(string)

	if game, ok := app.GameSessions[sessionID]; ok {
		game.LastAccessTime = time.Now()
		return game
	}

	s, restored := app.loadSnapshot(ctx, sessionID)
	if restored {
		logInfo("[request_id=%v] Restored session %s from snapshot store", reqID, sessionID)
	} else {
		logInfo("[request_id=%v] Creating new quiz for session: %s", reqID, sessionID)
	}
	game := &GameState{Quiz: s, LastAccessTime: time.Now()}
	app.GameSessions[sessionID] = game
	return game
}

// withSession runs fn against the caller's session under the session lock and
// writes the result through to the snapshot store when fn succeeds. The
// returned state is rendered under the same lock.
func (app *App) withSession(c *gin.Context, fn func(s *quiz.Session) error) (types.StateResponse, error) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	game := app.getGameState(ctx, sessionID)
	err := fn(game.Quiz)
	if err == nil {
		app.saveSnapshot(ctx, sessionID, game.Quiz)
	}
	return buildStateResponse(game.Quiz), err
}

// viewSession runs fn against the caller's session without persisting it.
func (app *App) viewSession(c *gin.Context, fn func(s *quiz.Session)) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	fn(app.getGameState(ctx, sessionID).Quiz)
}

// resetSession discards the caller's session and starts a fresh one under a new cookie.
func (app *App) resetSession(c *gin.Context) types.StateResponse {
	ctx := c.Request.Context()
	reqID, _ := ctx.Value(requestIDKey).(string)
	oldID, _ := c.Cookie(SessionCookieName)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	if oldID != "" {
		delete(app.GameSessions, oldID)
		app.deleteSnapshot(ctx, oldID)
		logInfo("[request_id=%v] Cleared old session data for: %s", reqID, oldID)
	}

	newID := app.newSessionCookie(c)
	s := app.newQuiz()
	app.GameSessions[newID] = &GameState{Quiz: s, LastAccessTime: time.Now()}
	app.saveSnapshot(ctx, newID, s)
	logInfo("[request_id=%v] Created new session ID: %s", reqID, newID)
	return buildStateResponse(s)
}

// evictIdleSessions drops in-memory sessions that have not been touched
// within SessionTimeout. Their snapshots stay in the store.
func (app *App) evictIdleSessions(now time.Time) int {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	idle := lo.PickBy(app.GameSessions, func(_ string, game *GameState) bool {
		return now.Sub(game.LastAccessTime) > app.SessionTimeout
	})
	for id := range idle {
		delete(app.GameSessions, id)
	}
	return len(idle)
}

// buildStateResponse renders a session into the page's view model.
func buildStateResponse(s *quiz.Session) types.StateResponse {
	return types.StateResponse{
		Adjectives:  buildSideState(s, quiz.SideAdjective),
		Subjects:    buildSideState(s, quiz.SideSubject),
		HintCount:   s.HintCount,
		RevealCount: s.RevealCount,
		Time:        quiz.FormatTime(s.Elapsed()),
		Running:     s.Timer.Running,
		Complete:    s.Complete(),
		GaveUp:      s.GaveUp,
	}
}

func buildSideState(s *quiz.Session, side quiz.Side) types.SideState {
	titles := s.Titles(side)
	selection := s.Selection(side)
	found, total := quiz.Progress(titles)
	return types.SideState{
		Side: side,
		Titles: lo.Map(titles, func(t quiz.TitleRecord, i int) types.TitleView {
			return types.TitleView{
				Display:  quiz.DisplayTitle(t),
				Found:    t.Found,
				Hinted:   t.Hinted,
				Revealed: t.Revealed,
				GaveUp:   t.GaveUp,
				Selected: i == selection.Index,
			}
		}),
		Selection: selection,
		Input:     s.Input(side),
		Found:     found,
		Total:     total,
		Started:   quiz.Started(titles),
	}
}
