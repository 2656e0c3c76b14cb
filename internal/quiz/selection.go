package quiz

// Cursor transition hints, in seconds. Presentation only.
const (
	TransitionStep  = 0.1
	TransitionFocus = 2.0
)

// PageStep is how far a page navigation moves the cursor.
const PageStep = 10

// SelectionCursor is the highlighted position within one list.
type SelectionCursor struct {
	Index          int     `json:"index"`
	TransitionTime float64 `json:"transitionTime"`
}

// Translate moves c by delta entries, clamped to a list of the given length.
func Translate(c SelectionCursor, delta, length int) SelectionCursor {
	return SelectionCursor{
		Index:          max(min(c.Index+delta, length-1), 0),
		TransitionTime: TransitionStep,
	}
}

// Focus points the cursor at index after a mutation.
func Focus(index int) SelectionCursor {
	return SelectionCursor{Index: index, TransitionTime: TransitionFocus}
}
