package quiz

import "time"

// Timer accumulates elapsed play time across pauses.
type Timer struct {
	Elapsed   time.Duration `json:"elapsed"`
	StartedAt time.Time     `json:"startedAt"`
	Running   bool          `json:"running"`
}

// Start resumes accumulation at now. Starting a running timer does nothing.
func (t *Timer) Start(now time.Time) {
	if t.Running {
		return
	}
	t.StartedAt = now
	t.Running = true
}

// Stop folds the running interval into Elapsed.
func (t *Timer) Stop(now time.Time) {
	if !t.Running {
		return
	}
	t.Elapsed += now.Sub(t.StartedAt)
	t.Running = false
}

// Total returns the elapsed time as of now.
func (t Timer) Total(now time.Time) time.Duration {
	if !t.Running {
		return t.Elapsed
	}
	return t.Elapsed + now.Sub(t.StartedAt)
}
