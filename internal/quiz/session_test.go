package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func useFakeClock(t *testing.T) *fakeClock {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	orig := nowFunc
	nowFunc = func() time.Time { return clock.now }
	t.Cleanup(func() { nowFunc = orig })
	return clock
}

func newTestSession() *Session {
	return NewSession(
		[]string{"Ink Zealot", "Ink Lover", "Ink Master"},
		[]string{"Squid", "Octopus"},
	)
}

func TestNewSessionSortsAndInitializes(t *testing.T) {
	s := newTestSession()
	require.Len(t, s.Adjectives, 3)
	assert.Equal(t, "Ink Lover", s.Adjectives[0].Text)
	assert.Equal(t, "Ink Master", s.Adjectives[1].Text)
	assert.Equal(t, "Ink Zealot", s.Adjectives[2].Text)
	assert.Equal(t, "Octopus", s.Subjects[0].Text)
	for _, rec := range s.Adjectives {
		assert.Equal(t, NewTitle(rec.Text), rec)
	}
}

func TestNewTitlesCaseInsensitiveOrder(t *testing.T) {
	titles := NewTitles([]string{"banana", "Apple", "cherry", "apricot"})
	got := []string{titles[0].Text, titles[1].Text, titles[2].Text, titles[3].Text}
	assert.Equal(t, []string{"Apple", "apricot", "banana", "cherry"}, got)
}

func TestSessionEndToEndHint(t *testing.T) {
	useFakeClock(t)
	s := newTestSession()

	_, err := s.Reveal(SideAdjective, 0)
	require.NoError(t, err)
	_, err = s.Reveal(SideAdjective, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.RevealCount)

	res, err := s.Hint(SideAdjective, 1)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 4, s.Adjectives[1].LastRevealedIndex)
	assert.False(t, s.Adjectives[1].Found)
	assert.True(t, s.Adjectives[1].Hinted)
	assert.Equal(t, 1, s.HintCount)
	assert.Equal(t, "Ink M_____", DisplayTitle(s.Adjectives[1]))
	assert.Equal(t, Focus(1), s.AdjectiveSelection)
}

func TestSessionHintOnFoundOnlyFocuses(t *testing.T) {
	s := newTestSession()
	s.Adjectives[2].Found = true
	before := s.Adjectives[2]

	res, err := s.Hint(SideAdjective, 2)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, 0, s.HintCount)
	assert.Equal(t, before, s.Adjectives[2])
	assert.Equal(t, Focus(2), s.AdjectiveSelection)

	res, err = s.Reveal(SideAdjective, 2)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, 0, s.RevealCount)
}

func TestSessionRejectsBadInput(t *testing.T) {
	s := newTestSession()
	_, err := s.Hint(SideSubject, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.Reveal(SideAdjective, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.Hint(Side("verb"), 0)
	assert.ErrorIs(t, err, ErrUnknownSide)
	_, err = s.CheckInput(Side("verb"), "x")
	assert.ErrorIs(t, err, ErrUnknownSide)
}

func TestSessionCheckInput(t *testing.T) {
	clock := useFakeClock(t)
	s := newTestSession()

	res, err := s.CheckInput(SideAdjective, "ink mast")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Equal(t, "ink mast", s.AdjectiveInput)
	assert.False(t, s.Timer.Running)

	res, err = s.CheckInput(SideAdjective, "ink master")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, 1, res.Index)
	assert.True(t, s.Adjectives[1].Found)
	assert.Empty(t, s.AdjectiveInput)
	assert.True(t, s.Timer.Running)

	clock.advance(90 * time.Second)
	assert.Equal(t, 90*time.Second, s.Elapsed())

	res, err = s.CheckInput(SideAdjective, "Ink Master")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.True(t, res.Duplicate)
	assert.Equal(t, "Ink Master", s.AdjectiveInput)

	res, err = s.CheckInput(SideSubject, "   ")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Equal(t, -1, res.Index)
}

func TestSessionCheckInputHintedStillNeedsFullTitle(t *testing.T) {
	s := newTestSession()
	_, err := s.Hint(SideSubject, 0)
	require.NoError(t, err)

	res, err := s.CheckInput(SideSubject, DisplayTitle(s.Subjects[0]))
	require.NoError(t, err)
	assert.False(t, res.Matched)

	res, err = s.CheckInput(SideSubject, "octopus")
	require.NoError(t, err)
	assert.True(t, res.Matched)
}

func TestSessionEasterEgg(t *testing.T) {
	s := newTestSession()
	res, err := s.CheckInput(SideSubject, "booyah")
	require.NoError(t, err)
	assert.Equal(t, "Booyah", res.EasterEgg)
	assert.False(t, res.Matched)
}

func TestSessionRandomActions(t *testing.T) {
	useFakeClock(t)
	s := newTestSession()

	results, err := s.RandomHint()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, SideAdjective, results[0].Side)
	assert.Equal(t, SideSubject, results[1].Side)
	assert.Equal(t, 2, s.HintCount)

	for i := range s.Adjectives {
		s.Adjectives[i].Found = true
	}
	results, err = s.RandomReveal()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, SideSubject, results[0].Side)
	assert.Equal(t, 1, s.RevealCount)

	results, err = s.RandomReveal()
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = s.RandomHint()
	assert.ErrorIs(t, err, ErrNoEligibleTitle)
	assert.True(t, s.Complete())
	assert.False(t, s.Timer.Running)
}

func TestSessionGiveUpAll(t *testing.T) {
	clock := useFakeClock(t)
	s := newTestSession()
	_, err := s.CheckInput(SideSubject, "Squid")
	require.NoError(t, err)
	clock.advance(time.Minute)

	count := s.GiveUpAll()
	assert.Equal(t, 4, count)
	assert.True(t, s.Complete())
	assert.True(t, s.GaveUp)
	assert.False(t, s.Subjects[1].GaveUp, "already-found titles keep their state")
	assert.True(t, s.Subjects[0].GaveUp)

	clock.advance(time.Hour)
	assert.Equal(t, time.Minute, s.Elapsed())
	s.Resume()
	assert.False(t, s.Timer.Running)
}

func TestSessionNavigate(t *testing.T) {
	s := newTestSession()

	cur, err := s.Navigate(SideAdjective, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, cur.Index, "navigation waits for the list to start")

	_, err = s.Hint(SideAdjective, 0)
	require.NoError(t, err)
	cur, err = s.Navigate(SideAdjective, PageStep)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Index)
	assert.Equal(t, TransitionStep, cur.TransitionTime)

	cur, err = s.Navigate(SideAdjective, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, cur.Index)
	assert.Equal(t, cur, s.Selection(SideAdjective))
}

func TestSessionPauseResume(t *testing.T) {
	clock := useFakeClock(t)
	s := newTestSession()

	s.Resume()
	assert.False(t, s.Timer.Running, "timer waits for the first action")

	_, err := s.Hint(SideAdjective, 0)
	require.NoError(t, err)
	clock.advance(10 * time.Second)
	s.Pause()
	clock.advance(time.Hour)
	assert.Equal(t, 10*time.Second, s.Elapsed())

	s.Resume()
	clock.advance(5 * time.Second)
	assert.Equal(t, 15*time.Second, s.Elapsed())
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{
		"adjective": SideAdjective, "A": SideAdjective, " subjects ": SideSubject, "s": SideSubject,
	} {
		got, err := ParseSide(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSide("verb")
	assert.ErrorIs(t, err, ErrUnknownSide)
}
