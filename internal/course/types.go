package course

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidHole     = errors.New("invalid hole number")
	ErrInvalidArea     = errors.New("invalid area type")
	ErrInvalidLayer    = errors.New("invalid overlay layer")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidFixture  = errors.New("invalid course fixture")
	ErrUnknownPriority = errors.New("invalid priority")
)

const (
	FirstHole = 1
	LastHole  = 18
	HoleCount = LastHole - FirstHole + 1
)

// HoleNumber identifies one of the 18 holes. Use ParseHole to build one from
// untrusted input.
type HoleNumber int

func ParseHole(n int) (HoleNumber, error) {
	h := HoleNumber(n)
	if !h.Valid() {
		return 0, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidHole, n, FirstHole, LastHole)
	}
	return h, nil
}

func (h HoleNumber) Valid() bool {
	return h >= FirstHole && h <= LastHole
}

func (h HoleNumber) String() string {
	return fmt.Sprintf("Hole %d", int(h))
}

type Status string

const (
	StatusStable   Status = "Stable"
	StatusWarning  Status = "Warning"
	StatusCritical Status = "Critical"
)

func (s Status) Valid() bool {
	switch s {
	case StatusStable, StatusWarning, StatusCritical:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Area is a sub-zone of a hole shown by the detail view.
type Area string

const (
	AreaGreen   Area = "Green"
	AreaFairway Area = "Fairway"
	AreaTee     Area = "Tee"
)

var Areas = []Area{AreaGreen, AreaFairway, AreaTee}

func ParseArea(raw string) (Area, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "green":
		return AreaGreen, nil
	case "fairway":
		return AreaFairway, nil
	case "tee", "teeing ground":
		return AreaTee, nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidArea, raw)
}

func (a Area) Valid() bool {
	switch a {
	case AreaGreen, AreaFairway, AreaTee:
		return true
	}
	return false
}

func (a Area) Label() string {
	switch a {
	case AreaFairway:
		return "Fairway"
	case AreaTee:
		return "Teeing Ground"
	default:
		return "Green"
	}
}

// Layer is one of the mutually exclusive overlay modes of the detail view.
type Layer string

const (
	LayerSatellite   Layer = "satellite"
	LayerMoisture    Layer = "moisture"
	LayerPerformance Layer = "performance"
)

var Layers = []Layer{LayerSatellite, LayerMoisture, LayerPerformance}

func ParseLayer(raw string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "satellite":
		return LayerSatellite, nil
	case "moisture":
		return LayerMoisture, nil
	case "performance", "deacon":
		return LayerPerformance, nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidLayer, raw)
}

func (l Layer) Valid() bool {
	switch l {
	case LayerSatellite, LayerMoisture, LayerPerformance:
		return true
	}
	return false
}

// Label is the short toggle caption used by the layer switcher.
func (l Layer) Label() string {
	switch l {
	case LayerMoisture:
		return "수분"
	case LayerPerformance:
		return "경기력"
	default:
		return "위성"
	}
}

type Hole struct {
	Number   HoleNumber
	Par      int
	NDVI     float64
	Moisture float64
	Status   Status
	Issue    string
}

// Tag is the first word of the issue, used for the marker label on the map.
func (h Hole) Tag() string {
	fields := strings.Fields(h.Issue)
	if len(fields) == 0 || h.Status == StatusStable {
		return ""
	}
	return fields[0]
}

type HealthAxis struct {
	Label string
	Score int
	Max   int
}

type PredictionPoint struct {
	Day       string
	Observed  *float64
	Predicted float64
	Threshold float64
}

func (p PredictionPoint) Future() bool {
	return p.Observed == nil
}

func (p PredictionPoint) OverThreshold() bool {
	return p.Predicted > p.Threshold
}

type Task struct {
	ID          string
	Type        string
	Area        string
	Description string
	Status      TaskStatus
	Assignee    string
	Priority    Priority
}

type Replies struct {
	Greeting      string
	DroughtStress string
	DiseaseRisk   string
	Overview      string
	Fallback      string
}

type KPI struct {
	TQI            float64
	TQIStatus      string
	GreenSpeedM    float64
	GreenSpeedNote string
	GreenTarget    string
	TaskPercent    int
	TaskDone       int
	TaskTotal      int
}

type AlertLevel string

const (
	AlertCritical AlertLevel = "CRITICAL"
	AlertWarning  AlertLevel = "WARNING"
	AlertInfo     AlertLevel = "INFO"
)

type Alert struct {
	Level      AlertLevel
	AgeMinutes int
	Text       string
}

type Forecast struct {
	Title    string
	Target   string
	Analysis string
}

type Weather struct {
	TemperatureC float64
	HumidityPct  int
}

// Progress is a done/total ratio computed from the task table.
type Progress struct {
	Done    int
	Total   int
	Percent int
}
