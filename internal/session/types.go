package session

import (
	"errors"
	"fmt"
	"strings"

	"gdx/internal/analyst"
	"gdx/internal/course"
)

var (
	ErrInvalidTab = errors.New("invalid tab")
	// ErrWrongTab reports an action issued from a screen that does not offer it.
	ErrWrongTab = errors.New("action not available on the active tab")
)

type Tab string

const (
	TabDashboard  Tab = "dashboard"
	TabCourse     Tab = "course"
	TabDetail     Tab = "detail"
	TabPrediction Tab = "prediction"
	TabTasks      Tab = "tasks"
)

// Tabs is the navigation order.
var Tabs = []Tab{TabDashboard, TabCourse, TabDetail, TabPrediction, TabTasks}

func ParseTab(raw string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidTab, raw)
	}
	return t, nil
}

func (t Tab) Valid() bool {
	switch t {
	case TabDashboard, TabCourse, TabDetail, TabPrediction, TabTasks:
		return true
	}
	return false
}

// Index is the 0-based nav position, or -1.
func (t Tab) Index() int {
	for i, v := range Tabs {
		if v == t {
			return i
		}
	}
	return -1
}

// Title is the header title shown for the screen.
func (t Tab) Title() string {
	switch t {
	case TabCourse:
		return "Course Overview & AI"
	case TabDetail:
		return "Hole Detail Analysis"
	case TabPrediction:
		return "AI Prediction"
	case TabTasks:
		return "Work Order Management"
	default:
		return "Integrated Dashboard"
	}
}

// NavLabel is the sidebar caption.
func (t Tab) NavLabel() string {
	switch t {
	case TabCourse:
		return "전체 코스 관제"
	case TabDetail:
		return "홀별 정밀 분석"
	case TabPrediction:
		return "AI 예측 및 매뉴얼"
	case TabTasks:
		return "작업 관리"
	default:
		return "통합 대시보드"
	}
}

type ViewState struct {
	Tab   Tab
	Hole  course.HoleNumber
	Area  course.Area
	Layer course.Layer
}

func DefaultViewState() ViewState {
	return ViewState{
		Tab:   TabDashboard,
		Hole:  4,
		Area:  course.AreaGreen,
		Layer: course.LayerSatellite,
	}
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role Role
	Text string
	// Kind is set on assistant replies produced by the responder.
	Kind analyst.Kind
}

type EventKind string

const (
	EventTab   EventKind = "tab"
	EventHole  EventKind = "hole"
	EventArea  EventKind = "area"
	EventLayer EventKind = "layer"
	EventClick EventKind = "click"
	EventChat  EventKind = "chat"
	EventReply EventKind = "reply"
)

// Event is delivered to observers after every state change.
type Event struct {
	Kind    EventKind
	Seq     uint64
	State   ViewState
	Message ChatMessage
	Pending int
}

// Snapshot is a consistent copy of everything a view renders.
type Snapshot struct {
	Seq      uint64
	State    ViewState
	Messages []ChatMessage
	Pending  int
}
