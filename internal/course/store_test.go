package course

import (
	"errors"
	"strings"
	"testing"
)

func mustLoad(t *testing.T) *Store {
	t.Helper()
	s, err := Load(LoadOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestParseHoleBounds(t *testing.T) {
	for n := FirstHole; n <= LastHole; n++ {
		h, err := ParseHole(n)
		if err != nil {
			t.Fatalf("hole %d: %v", n, err)
		}
		if int(h) != n {
			t.Fatalf("hole %d: got %d", n, h)
		}
	}
	for _, n := range []int{0, -1, 19, 100} {
		if _, err := ParseHole(n); !errors.Is(err, ErrInvalidHole) {
			t.Fatalf("hole %d: expected ErrInvalidHole, got %v", n, err)
		}
	}
}

func TestParseAreaAndLayer(t *testing.T) {
	if a, err := ParseArea("Teeing Ground"); err != nil || a != AreaTee {
		t.Fatalf("expected tee, got %q %v", a, err)
	}
	if _, err := ParseArea("bunker"); !errors.Is(err, ErrInvalidArea) {
		t.Fatalf("expected ErrInvalidArea, got %v", err)
	}
	if l, err := ParseLayer("deacon"); err != nil || l != LayerPerformance {
		t.Fatalf("expected deacon alias to map to performance, got %q %v", l, err)
	}
	if _, err := ParseLayer("thermal"); !errors.Is(err, ErrInvalidLayer) {
		t.Fatalf("expected ErrInvalidLayer, got %v", err)
	}
	if AreaTee.Label() != "Teeing Ground" {
		t.Fatalf("unexpected tee label %q", AreaTee.Label())
	}
}

func TestTaskProgressKeepsReportedFigure(t *testing.T) {
	s := mustLoad(t)
	got := s.TaskProgress()
	if got.Done != 1 || got.Total != 3 || got.Percent != 33 {
		t.Fatalf("unexpected computed progress %+v", got)
	}
	reported := s.ReportedProgress()
	if reported.Percent != 45 || reported.Done != 9 || reported.Total != 20 {
		t.Fatalf("unexpected reported progress %+v", reported)
	}
	if len(s.Tasks()) != 3 {
		t.Fatalf("no tasks may be inferred, got %d", len(s.Tasks()))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := mustLoad(t)
	holes := s.Holes()
	holes[0].Status = StatusCritical
	if h, _ := s.Hole(1); h.Status != StatusStable {
		t.Fatalf("store mutated through Holes copy")
	}
	preds := s.Predictions()
	*preds[0].Observed = 999
	if v := *s.Predictions()[0].Observed; v != 15 {
		t.Fatalf("store mutated through prediction pointer, got %v", v)
	}
	tasks := s.Tasks()
	tasks[0].Status = TaskDone
	if s.TaskProgress().Done != 1 {
		t.Fatalf("store mutated through Tasks copy")
	}
}

func TestPredictionSeries(t *testing.T) {
	s := mustLoad(t)
	preds := s.Predictions()
	if len(preds) != PredictionCount {
		t.Fatalf("expected %d points, got %d", PredictionCount, len(preds))
	}
	future := 0
	over := 0
	for _, p := range preds {
		if p.Future() {
			future++
		}
		if p.OverThreshold() {
			over++
		}
	}
	if future != 3 {
		t.Fatalf("expected 3 future points, got %d", future)
	}
	if over != 4 {
		t.Fatalf("expected 4 points over threshold, got %d", over)
	}
}

func TestHoleTagAndFirstCritical(t *testing.T) {
	s := mustLoad(t)
	h, ok := s.FirstCritical()
	if !ok || h.Number != 4 {
		t.Fatalf("expected hole 4 as first critical, got %+v", h)
	}
	if h.Tag() != "라지패치" {
		t.Fatalf("unexpected tag %q", h.Tag())
	}
	h1, _ := s.Hole(1)
	if h1.Tag() != "" {
		t.Fatalf("stable hole should have no tag, got %q", h1.Tag())
	}
	if _, ok := s.Hole(19); ok {
		t.Fatalf("hole 19 must not resolve")
	}
}

func TestRepliesCarryKeyFacts(t *testing.T) {
	r := mustLoad(t).Replies()
	if !strings.Contains(r.DroughtStress, "7번 홀 페어웨이 (VWC 12%)") {
		t.Fatalf("drought reply missing hole 7 fact: %q", r.DroughtStress)
	}
	if !strings.Contains(r.DiseaseRisk, "4번 홀 그린") || !strings.Contains(r.DiseaseRisk, "85%") {
		t.Fatalf("disease reply missing hole 4 fact: %q", r.DiseaseRisk)
	}
	if r.Fallback != "죄송합니다. 현재 분석 중인 데이터가 부족합니다." {
		t.Fatalf("unexpected fallback %q", r.Fallback)
	}
}
