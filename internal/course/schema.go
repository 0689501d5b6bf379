package course

import (
	"fmt"
	"strings"
)

const (
	FixtureKind            = "course_fixture"
	SupportedSchemaVersion = 1
	HealthAxisCount        = 6
	PredictionCount        = 7
)

// Fixture is the on-disk shape of course.yaml.
type Fixture struct {
	Kind          string           `yaml:"kind"`
	SchemaVersion int              `yaml:"schema_version"`
	Course        CourseSpec       `yaml:"course"`
	Readings      ReadingSpec      `yaml:"readings"`
	Holes         []HoleSpec       `yaml:"holes"`
	Health        []HealthSpec     `yaml:"health"`
	Predictions   []PredictionSpec `yaml:"predictions"`
	Tasks         []TaskSpec       `yaml:"tasks"`
	KPI           KPISpec          `yaml:"kpi"`
	Alerts        []AlertSpec      `yaml:"alerts"`
	Chat          ChatSpec         `yaml:"chat"`
	Forecast      ForecastSpec     `yaml:"forecast"`
	ManualMD      string           `yaml:"manual_md"`
}

type CourseSpec struct {
	Name         string  `yaml:"name"`
	Operator     string  `yaml:"operator"`
	TemperatureC float64 `yaml:"temperature_c"`
	HumidityPct  int     `yaml:"humidity_pct"`
}

// ReadingSpec bounds the randomised vegetation and moisture readings.
type ReadingSpec struct {
	NDVIMin      float64 `yaml:"ndvi_min"`
	NDVISpan     float64 `yaml:"ndvi_span"`
	MoistureMin  float64 `yaml:"moisture_min"`
	MoistureSpan float64 `yaml:"moisture_span"`
}

type HoleSpec struct {
	Hole     int      `yaml:"hole"`
	Par      int      `yaml:"par"`
	Status   string   `yaml:"status"`
	Issue    string   `yaml:"issue"`
	NDVI     *float64 `yaml:"ndvi"`
	Moisture *float64 `yaml:"moisture"`
}

type HealthSpec struct {
	Label string `yaml:"label"`
	Score int    `yaml:"score"`
	Max   int    `yaml:"max"`
}

type PredictionSpec struct {
	Day       string   `yaml:"day"`
	Observed  *float64 `yaml:"observed"`
	Predicted float64  `yaml:"predicted"`
	Threshold float64  `yaml:"threshold"`
}

type TaskSpec struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Area        string `yaml:"area"`
	Description string `yaml:"desc"`
	Status      string `yaml:"status"`
	Assignee    string `yaml:"assignee"`
	Priority    string `yaml:"priority"`
}

type KPISpec struct {
	TQI            float64 `yaml:"tqi"`
	TQIStatus      string  `yaml:"tqi_status"`
	GreenSpeedM    float64 `yaml:"green_speed_m"`
	GreenSpeedNote string  `yaml:"green_speed_note"`
	GreenTarget    string  `yaml:"green_target"`
	TaskPercent    int     `yaml:"task_percent"`
	TaskDone       int     `yaml:"task_done"`
	TaskTotal      int     `yaml:"task_total"`
}

type AlertSpec struct {
	Level      string `yaml:"level"`
	AgeMinutes int    `yaml:"age_minutes"`
	Text       string `yaml:"text"`
}

type ChatSpec struct {
	Greeting      string   `yaml:"greeting"`
	DroughtStress string   `yaml:"drought_stress"`
	DiseaseRisk   string   `yaml:"disease_risk"`
	Overview      string   `yaml:"overview"`
	Fallback      string   `yaml:"fallback"`
	Suggestions   []string `yaml:"suggestions"`
}

type ForecastSpec struct {
	Title    string `yaml:"title"`
	Target   string `yaml:"target"`
	Analysis string `yaml:"analysis"`
}

func (f Fixture) Validate() error {
	if f.Kind != FixtureKind {
		return fmt.Errorf("kind must be %q", FixtureKind)
	}
	if f.SchemaVersion != SupportedSchemaVersion {
		return fmt.Errorf("unsupported schema_version %d", f.SchemaVersion)
	}

	if len(f.Holes) != HoleCount {
		return fmt.Errorf("expected %d holes, got %d", HoleCount, len(f.Holes))
	}
	seen := make(map[int]bool, HoleCount)
	for _, h := range f.Holes {
		if _, err := ParseHole(h.Hole); err != nil {
			return err
		}
		if seen[h.Hole] {
			return fmt.Errorf("duplicate hole %d", h.Hole)
		}
		seen[h.Hole] = true
		if h.Par < 3 || h.Par > 5 {
			return fmt.Errorf("hole %d: par %d out of range", h.Hole, h.Par)
		}
		if !Status(h.Status).Valid() {
			return fmt.Errorf("hole %d: %w %q", h.Hole, ErrInvalidStatus, h.Status)
		}
	}

	if len(f.Health) != HealthAxisCount {
		return fmt.Errorf("expected %d health axes, got %d", HealthAxisCount, len(f.Health))
	}
	for _, a := range f.Health {
		if strings.TrimSpace(a.Label) == "" {
			return fmt.Errorf("health axis label is required")
		}
		if a.Max != 100 {
			return fmt.Errorf("health axis %q: max must be 100", a.Label)
		}
		if a.Score < 0 || a.Score > a.Max {
			return fmt.Errorf("health axis %q: score %d outside 0-%d", a.Label, a.Score, a.Max)
		}
	}

	if len(f.Predictions) != PredictionCount {
		return fmt.Errorf("expected %d prediction points, got %d", PredictionCount, len(f.Predictions))
	}
	future := false
	for _, p := range f.Predictions {
		if strings.TrimSpace(p.Day) == "" {
			return fmt.Errorf("prediction day label is required")
		}
		if p.Observed == nil {
			future = true
		} else if future {
			return fmt.Errorf("prediction %q: observed value after a future day", p.Day)
		}
	}

	ids := map[string]bool{}
	for _, t := range f.Tasks {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("task id is required")
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate task id %q", t.ID)
		}
		ids[t.ID] = true
		if !TaskStatus(t.Status).Valid() {
			return fmt.Errorf("task %s: %w %q", t.ID, ErrInvalidStatus, t.Status)
		}
		if !Priority(t.Priority).Valid() {
			return fmt.Errorf("task %s: %w %q", t.ID, ErrUnknownPriority, t.Priority)
		}
	}

	for _, a := range f.Alerts {
		switch AlertLevel(a.Level) {
		case AlertCritical, AlertWarning, AlertInfo:
		default:
			return fmt.Errorf("alert level %q is not supported", a.Level)
		}
	}

	c := f.Chat
	for name, text := range map[string]string{
		"greeting":       c.Greeting,
		"drought_stress": c.DroughtStress,
		"disease_risk":   c.DiseaseRisk,
		"overview":       c.Overview,
		"fallback":       c.Fallback,
	} {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("chat.%s is required", name)
		}
	}
	return nil
}
