package ui

import (
	"gdx/internal/course"
	"gdx/internal/session"
)

// Controller receives user intents from the view. Calls arrive on their own
// goroutine and must not block the render loop.
type Controller interface {
	OnSelectTab(tab session.Tab)
	OnClickHole(hole course.HoleNumber)
	OnSelectHole(hole course.HoleNumber)
	OnSelectArea(area course.Area)
	OnSelectLayer(layer course.Layer)
	OnSubmitChat(text string)
	OnSuggestion(index int)
	OnFollowAlert()
	OnPrint()
	OnCycleTheme()
	OnCycleMotion()
	OnCycleMouse()
	OnQuit()
	OnResize(cols, rows int)
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetSnapshot(Snapshot)
	SetTheme(variant string)
	SetMotionLevel(level string)
	SetMouseScope(scope string)
	SetSessionLabel(label string)
	ShowPopup(p Popup)
	SetHelpOpen(open bool)
	FlashStatus(msg string)
	// Capture renders the active screen without overlays or colour.
	Capture() string
}

// Snapshot is everything the screens need from the session.
type Snapshot = session.Snapshot

// Popup is a bordered info box. Left and Top place it from the top-left
// corner when Anchored is set; otherwise it is centred.
type Popup struct {
	Title    string
	Text     string
	Width    int
	Height   int
	Left     int
	Top      int
	Anchored bool
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutTooSmall
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutWide:
		return "wide"
	case LayoutMedium:
		return "medium"
	default:
		return "too_small"
	}
}

type focusArea int

const (
	focusMap focusArea = iota
	focusChat
)
