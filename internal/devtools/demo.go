// Package devtools holds deterministic demo scenarios used by --demo and the
// dev HTTP hook.
package devtools

import (
	"context"
	"fmt"
	"sort"

	"gdx/internal/course"
	"gdx/internal/session"
)

// Driver is the subset of session transitions a scenario may use.
type Driver interface {
	SetTab(t session.Tab) error
	ClickHole(h course.HoleNumber) error
	SetArea(a course.Area) error
	SetLayer(l course.Layer) error
	SubmitChat(text string) (bool, error)
}

type Scenario struct {
	Name string
	// Hole is clicked on the course map when set.
	Hole  course.HoleNumber
	Area  course.Area
	Layer course.Layer
	Chat  []string
	// Tab is selected last.
	Tab      session.Tab
	HelpOpen bool
}

const (
	DefaultScenario = "dashboard"
	// CustomScenario names scenarios built from a ViewRequest.
	CustomScenario = "custom"
)

// ViewRequest describes a target view in plain strings, as the dev hook
// receives it. Zero fields are skipped.
type ViewRequest struct {
	Tab   string `json:"tab"`
	Hole  int    `json:"hole"`
	Area  string `json:"area"`
	Layer string `json:"layer"`
}

// Scenario parses r into a scenario named CustomScenario.
func (r ViewRequest) Scenario() (Scenario, error) {
	s := Scenario{Name: CustomScenario}
	var err error
	if r.Hole != 0 {
		if s.Hole, err = course.ParseHole(r.Hole); err != nil {
			return Scenario{}, err
		}
	}
	if r.Area != "" {
		if s.Area, err = course.ParseArea(r.Area); err != nil {
			return Scenario{}, err
		}
	}
	if r.Layer != "" {
		if s.Layer, err = course.ParseLayer(r.Layer); err != nil {
			return Scenario{}, err
		}
	}
	if r.Tab != "" {
		if s.Tab, err = session.ParseTab(r.Tab); err != nil {
			return Scenario{}, err
		}
	}
	return s, nil
}

var scenarios = map[string]Scenario{
	"dashboard": {Tab: session.TabDashboard},
	"course":    {Tab: session.TabCourse},
	"course_chat": {
		Tab:  session.TabCourse,
		Chat: []string{"수분 상태 요약", "위험 지역?", "코스 브리핑"},
	},
	"hole4_green": {Hole: 4, Layer: course.LayerSatellite},
	"hole7_fairway_moisture": {
		Hole:  7,
		Layer: course.LayerMoisture,
	},
	"tee_performance": {
		Hole:  9,
		Area:  course.AreaTee,
		Layer: course.LayerPerformance,
	},
	"prediction": {Tab: session.TabPrediction},
	"tasks":      {Tab: session.TabTasks},
	"help":       {Tab: session.TabDashboard, HelpOpen: true},
}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

// Resolve returns the named scenario, or the dashboard for unknown names.
func (m *Manager) Resolve(name string) Scenario {
	s, ok := scenarios[name]
	if !ok {
		name = DefaultScenario
		s = scenarios[name]
	}
	s.Name = name
	s.Chat = append([]string(nil), s.Chat...)
	return s
}

func (m *Manager) Known(name string) bool {
	_, ok := scenarios[name]
	return ok
}

func (m *Manager) Names() []string {
	out := make([]string, 0, len(scenarios))
	for name := range scenarios {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Apply drives d through public transitions only, so every step honours the
// same preconditions a user would hit.
func (m *Manager) Apply(ctx context.Context, d Driver, s Scenario) error {
	steps := []func() error{}
	if s.Hole != 0 {
		steps = append(steps,
			func() error { return d.SetTab(session.TabCourse) },
			func() error { return d.ClickHole(s.Hole) },
		)
	}
	if s.Area != "" {
		steps = append(steps,
			func() error { return d.SetTab(session.TabDetail) },
			func() error { return d.SetArea(s.Area) },
		)
	}
	if s.Layer != "" {
		steps = append(steps,
			func() error { return d.SetTab(session.TabDetail) },
			func() error { return d.SetLayer(s.Layer) },
		)
	}
	if len(s.Chat) > 0 {
		steps = append(steps, func() error { return d.SetTab(session.TabCourse) })
		for _, text := range s.Chat {
			steps = append(steps, func() error {
				_, err := d.SubmitChat(text)
				return err
			})
		}
	}
	if s.Tab != "" {
		steps = append(steps, func() error { return d.SetTab(s.Tab) })
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return fmt.Errorf("scenario %s step %d: %w", s.Name, i+1, err)
		}
	}
	return nil
}
