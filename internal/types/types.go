package types

import "github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"

// TitleData is the JSON structure of the canonical title word lists.
type TitleData struct {
	Adjective []string `json:"Adjective"`
	Subject   []string `json:"Subject"`
}

// TitleView is one entry as the page renders it.
type TitleView struct {
	Display  string `json:"display"`
	Found    bool   `json:"found"`
	Hinted   bool   `json:"hinted"`
	Revealed bool   `json:"revealed"`
	GaveUp   bool   `json:"gaveUp"`
	Selected bool   `json:"selected"`
}

// SideState is the rendered state of one title list.
type SideState struct {
	Side      quiz.Side            `json:"side"`
	Titles    []TitleView          `json:"titles"`
	Selection quiz.SelectionCursor `json:"selection"`
	Input     string               `json:"input"`
	Found     int                  `json:"found"`
	Total     int                  `json:"total"`
	Started   bool                 `json:"started"`
}

// StateResponse is the full session state sent to the page.
type StateResponse struct {
	Adjectives  SideState `json:"adjectives"`
	Subjects    SideState `json:"subjects"`
	HintCount   int       `json:"hintCount"`
	RevealCount int       `json:"revealCount"`
	Time        string    `json:"time"`
	Running     bool      `json:"running"`
	Complete    bool      `json:"complete"`
	GaveUp      bool      `json:"gaveUp"`
}
