package course

import (
	_ "embed"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed course.yaml
var builtinFixture []byte

// DefaultSeed keeps the randomised readings stable between sessions.
const DefaultSeed uint64 = 1

type LoadOptions struct {
	// Seed drives the NDVI and moisture readings. Zero seeds from the clock,
	// which reproduces the mock's per-load regeneration.
	Seed uint64
}

// Load builds the store from the embedded course fixture.
func Load(opts LoadOptions) (*Store, error) {
	return LoadBytes(builtinFixture, opts)
}

// LoadFile builds the store from an override fixture on disk.
func LoadFile(path string, opts LoadOptions) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := LoadBytes(b, opts)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	return s, nil
}

func LoadBytes(b []byte, opts LoadOptions) (*Store, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	applyDefaults(&f)
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return build(f, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))), nil
}

func applyDefaults(f *Fixture) {
	if f.Readings.NDVIMin <= 0 {
		f.Readings.NDVIMin = 0.7
	}
	if f.Readings.NDVISpan <= 0 {
		f.Readings.NDVISpan = 0.2
	}
	if f.Readings.MoistureMin <= 0 {
		f.Readings.MoistureMin = 18
	}
	if f.Readings.MoistureSpan <= 0 {
		f.Readings.MoistureSpan = 15
	}
	for i := range f.Health {
		if f.Health[i].Max == 0 {
			f.Health[i].Max = 100
		}
	}
	for i := range f.Holes {
		if f.Holes[i].Issue == "" {
			f.Holes[i].Issue = "-"
		}
	}
	if f.Chat.Fallback == "" {
		f.Chat.Fallback = "죄송합니다. 현재 분석 중인 데이터가 부족합니다."
	}
}

func build(f Fixture, rng *rand.Rand) *Store {
	specs := append([]HoleSpec(nil), f.Holes...)
	sort.Slice(specs, func(i, j int) bool { return specs[i].Hole < specs[j].Hole })

	holes := make([]Hole, 0, len(specs))
	for _, h := range specs {
		// Draw both readings for every hole so pinned values do not shift the
		// sequence for the holes after them.
		ndvi := round(f.Readings.NDVIMin+rng.Float64()*f.Readings.NDVISpan, 2)
		moisture := round(f.Readings.MoistureMin+rng.Float64()*f.Readings.MoistureSpan, 1)
		if h.NDVI != nil {
			ndvi = *h.NDVI
		}
		if h.Moisture != nil {
			moisture = *h.Moisture
		}
		holes = append(holes, Hole{
			Number:   HoleNumber(h.Hole),
			Par:      h.Par,
			NDVI:     ndvi,
			Moisture: moisture,
			Status:   Status(h.Status),
			Issue:    h.Issue,
		})
	}

	health := make([]HealthAxis, 0, len(f.Health))
	for _, a := range f.Health {
		health = append(health, HealthAxis{Label: a.Label, Score: a.Score, Max: a.Max})
	}

	predictions := make([]PredictionPoint, 0, len(f.Predictions))
	for _, p := range f.Predictions {
		var observed *float64
		if p.Observed != nil {
			v := *p.Observed
			observed = &v
		}
		predictions = append(predictions, PredictionPoint{
			Day:       p.Day,
			Observed:  observed,
			Predicted: p.Predicted,
			Threshold: p.Threshold,
		})
	}

	tasks := make([]Task, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		tasks = append(tasks, Task{
			ID:          t.ID,
			Type:        t.Type,
			Area:        t.Area,
			Description: t.Description,
			Status:      TaskStatus(t.Status),
			Assignee:    t.Assignee,
			Priority:    Priority(t.Priority),
		})
	}

	alerts := make([]Alert, 0, len(f.Alerts))
	for _, a := range f.Alerts {
		alerts = append(alerts, Alert{Level: AlertLevel(a.Level), AgeMinutes: a.AgeMinutes, Text: a.Text})
	}

	return &Store{
		name:        f.Course.Name,
		operator:    f.Course.Operator,
		weather:     Weather{TemperatureC: f.Course.TemperatureC, HumidityPct: f.Course.HumidityPct},
		holes:       holes,
		health:      health,
		predictions: predictions,
		tasks:       tasks,
		alerts:      alerts,
		kpi: KPI{
			TQI:            f.KPI.TQI,
			TQIStatus:      f.KPI.TQIStatus,
			GreenSpeedM:    f.KPI.GreenSpeedM,
			GreenSpeedNote: f.KPI.GreenSpeedNote,
			GreenTarget:    f.KPI.GreenTarget,
			TaskPercent:    f.KPI.TaskPercent,
			TaskDone:       f.KPI.TaskDone,
			TaskTotal:      f.KPI.TaskTotal,
		},
		replies: Replies{
			Greeting:      f.Chat.Greeting,
			DroughtStress: f.Chat.DroughtStress,
			DiseaseRisk:   f.Chat.DiseaseRisk,
			Overview:      f.Chat.Overview,
			Fallback:      f.Chat.Fallback,
		},
		suggestions: append([]string(nil), f.Chat.Suggestions...),
		forecast:    Forecast{Title: f.Forecast.Title, Target: f.Forecast.Target, Analysis: f.Forecast.Analysis},
		manualMD:    f.ManualMD,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
