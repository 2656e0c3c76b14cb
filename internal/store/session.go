package store

import (
	"context"
	"log"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
)

// SaveSession writes every snapshot key for s.
func SaveSession(ctx context.Context, c Cache, sessionID string, s *quiz.Session) error {
	return c.SetMany(ctx, sessionID, map[string]any{
		KeyAdjectives:         s.Adjectives,
		KeySubjects:           s.Subjects,
		KeyAdjectiveSelection: s.AdjectiveSelection,
		KeySubjectSelection:   s.SubjectSelection,
		KeyAdjectiveInput:     s.AdjectiveInput,
		KeySubjectInput:       s.SubjectInput,
		KeyHintCount:          s.HintCount,
		KeyRevealCount:        s.RevealCount,
		KeyTimer:              s.Timer,
		KeyGaveUp:             s.GaveUp,
	})
}

// LoadSession restores a snapshot on top of fresh, the session a new player
// would get. Keys that are missing or fail to decode keep fresh's value. It
// reports false when no usable title lists were stored, or when they no longer
// line up with fresh's lists.
func LoadSession(ctx context.Context, c Cache, sessionID string, fresh *quiz.Session) (*quiz.Session, bool) {
	s := *fresh
	lists := []struct {
		key  string
		dst  *[]quiz.TitleRecord
		want []quiz.TitleRecord
	}{
		{KeyAdjectives, &s.Adjectives, fresh.Adjectives},
		{KeySubjects, &s.Subjects, fresh.Subjects},
	}
	for _, l := range lists {
		var stored []quiz.TitleRecord
		ok, err := c.Get(ctx, sessionID, l.key, &stored)
		if err != nil {
			log.Printf("[WARN] Failed to load %s for session %s: %v", l.key, sessionID, err)
			return fresh, false
		}
		if !ok || !sameTitles(stored, l.want) {
			return fresh, false
		}
		*l.dst = stored
	}

	values := []struct {
		key string
		dst any
	}{
		{KeyAdjectiveSelection, &s.AdjectiveSelection},
		{KeySubjectSelection, &s.SubjectSelection},
		{KeyAdjectiveInput, &s.AdjectiveInput},
		{KeySubjectInput, &s.SubjectInput},
		{KeyHintCount, &s.HintCount},
		{KeyRevealCount, &s.RevealCount},
		{KeyTimer, &s.Timer},
		{KeyGaveUp, &s.GaveUp},
	}
	for _, v := range values {
		if _, err := c.Get(ctx, sessionID, v.key, v.dst); err != nil {
			log.Printf("[WARN] Using default %s for session %s: %v", v.key, sessionID, err)
		}
	}
	return &s, true
}

func sameTitles(stored, canonical []quiz.TitleRecord) bool {
	if len(stored) != len(canonical) {
		return false
	}
	for i := range stored {
		if stored[i].Text != canonical[i].Text {
			return false
		}
	}
	return true
}
