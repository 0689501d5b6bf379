package devtools

import (
	"context"
	"errors"
	"testing"

	"gdx/internal/analyst"
	"gdx/internal/course"
	"gdx/internal/session"
)

func newSession(t *testing.T) *session.Controller {
	t.Helper()
	store, err := course.Load(course.LoadOptions{Seed: course.DefaultSeed})
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	c, err := session.New(session.Options{
		Responder:   analyst.New(store.Replies()),
		Suggestions: store.Suggestions(),
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return c
}

func TestResolveFallsBackToDashboard(t *testing.T) {
	m := NewManager()
	s := m.Resolve("no-such-demo")
	if s.Name != DefaultScenario || s.Tab != session.TabDashboard {
		t.Fatalf("unexpected fallback: %+v", s)
	}
	if m.Known("no-such-demo") || !m.Known("tasks") {
		t.Fatalf("unexpected Known results")
	}
}

func TestScenariosReachExpectedState(t *testing.T) {
	cases := map[string]session.ViewState{
		"hole4_green":            {Tab: session.TabDetail, Hole: 4, Area: course.AreaGreen, Layer: course.LayerSatellite},
		"hole7_fairway_moisture": {Tab: session.TabDetail, Hole: 7, Area: course.AreaFairway, Layer: course.LayerMoisture},
		"tee_performance":        {Tab: session.TabDetail, Hole: 9, Area: course.AreaTee, Layer: course.LayerPerformance},
		"prediction":             {Tab: session.TabPrediction, Hole: 4, Area: course.AreaGreen, Layer: course.LayerSatellite},
	}
	m := NewManager()
	for name, want := range cases {
		c := newSession(t)
		if err := m.Apply(context.Background(), c, m.Resolve(name)); err != nil {
			t.Fatalf("%s: apply: %v", name, err)
		}
		if got := c.State(); got != want {
			t.Fatalf("%s: got %+v, want %+v", name, got, want)
		}
	}
}

func TestCourseChatScenarioSendsSuggestions(t *testing.T) {
	m := NewManager()
	c := newSession(t)
	if err := m.Apply(context.Background(), c, m.Resolve("course_chat")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	msgs := c.Messages()
	if len(msgs) != 6 {
		t.Fatalf("expected 3 questions and 3 replies, got %d", len(msgs))
	}
	// Only the first prompt hits a keyword; the other two fall through.
	if msgs[1].Kind != analyst.KindDroughtStress || msgs[3].Kind != analyst.KindFallback || msgs[5].Kind != analyst.KindFallback {
		t.Fatalf("unexpected reply kinds: %+v", msgs)
	}
}

func TestApplyStopsOnCancelledContext(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Apply(ctx, newSession(t), m.Resolve("hole4_green"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNamesAreSorted(t *testing.T) {
	names := NewManager().Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestViewRequestScenario(t *testing.T) {
	s, err := ViewRequest{Tab: "Detail", Hole: 12, Area: "teeing ground", Layer: "deacon"}.Scenario()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != CustomScenario || s.Hole != 12 || s.Area != course.AreaTee || s.Layer != course.LayerPerformance || s.Tab != session.TabDetail {
		t.Fatalf("unexpected scenario %+v", s)
	}

	empty, err := ViewRequest{}.Scenario()
	if err != nil || empty.Hole != 0 || empty.Area != "" || empty.Tab != "" {
		t.Fatalf("empty request should yield an empty scenario: %+v %v", empty, err)
	}

	bad := []struct {
		req  ViewRequest
		want error
	}{
		{ViewRequest{Hole: 19}, course.ErrInvalidHole},
		{ViewRequest{Area: "bunker"}, course.ErrInvalidArea},
		{ViewRequest{Layer: "thermal"}, course.ErrInvalidLayer},
		{ViewRequest{Tab: "settings"}, session.ErrInvalidTab},
	}
	for _, tc := range bad {
		if _, err := tc.req.Scenario(); !errors.Is(err, tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc.req, tc.want, err)
		}
	}
}
