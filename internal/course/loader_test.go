package course

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func builtinSpec(t *testing.T) Fixture {
	t.Helper()
	var f Fixture
	if err := yaml.Unmarshal(builtinFixture, &f); err != nil {
		t.Fatalf("unmarshal builtin fixture: %v", err)
	}
	return f
}

func loadMutated(t *testing.T, mutate func(*Fixture)) error {
	t.Helper()
	f := builtinSpec(t)
	mutate(&f)
	b, err := yaml.Marshal(f)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	_, err = LoadBytes(b, LoadOptions{Seed: DefaultSeed})
	return err
}

func TestLoadBuiltinFixture(t *testing.T) {
	s, err := Load(LoadOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	holes := s.Holes()
	if len(holes) != HoleCount {
		t.Fatalf("expected %d holes, got %d", HoleCount, len(holes))
	}
	wantPars := []int{4, 3, 5, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4, 4, 3, 5, 4, 4}
	for i, h := range holes {
		if int(h.Number) != i+1 {
			t.Fatalf("hole order mismatch at %d: got %d", i, h.Number)
		}
		if h.Par != wantPars[i] {
			t.Fatalf("hole %d: par got %d want %d", h.Number, h.Par, wantPars[i])
		}
		if h.NDVI < 0.70 || h.NDVI > 0.90 {
			t.Fatalf("hole %d: ndvi %v outside [0.70, 0.90]", h.Number, h.NDVI)
		}
		if h.Moisture < 18 || h.Moisture > 33 {
			t.Fatalf("hole %d: moisture %v outside [18, 33]", h.Number, h.Moisture)
		}
	}
	if got := s.CountByStatus(StatusCritical); got != 1 {
		t.Fatalf("expected 1 critical hole, got %d", got)
	}
	if got := s.CountByStatus(StatusWarning); got != 1 {
		t.Fatalf("expected 1 warning hole, got %d", got)
	}
	if got := s.CountByStatus(StatusStable); got != 16 {
		t.Fatalf("expected 16 stable holes, got %d", got)
	}
	h4, ok := s.Hole(4)
	if !ok || h4.Status != StatusCritical || h4.Issue != "라지패치 위험" {
		t.Fatalf("unexpected hole 4: %+v", h4)
	}
	h7, ok := s.Hole(7)
	if !ok || h7.Status != StatusWarning || h7.Issue != "페어웨이 수분 부족" {
		t.Fatalf("unexpected hole 7: %+v", h7)
	}
	if len(s.Health()) != HealthAxisCount {
		t.Fatalf("expected %d health axes", HealthAxisCount)
	}
	if len(s.Suggestions()) != 3 {
		t.Fatalf("expected 3 suggestions, got %v", s.Suggestions())
	}
}

func TestSeededLoadsAreReproducible(t *testing.T) {
	a, err := Load(LoadOptions{Seed: 42})
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	b, err := Load(LoadOptions{Seed: 42})
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if diff := cmp.Diff(a.Holes(), b.Holes()); diff != "" {
		t.Fatalf("seeded holes differ (-a +b):\n%s", diff)
	}
	c, err := Load(LoadOptions{Seed: 43})
	if err != nil {
		t.Fatalf("load c: %v", err)
	}
	if cmp.Equal(a.Holes(), c.Holes()) {
		t.Fatalf("expected different readings for a different seed")
	}
}

func TestPinnedReadingsOverrideRandomValues(t *testing.T) {
	f := builtinSpec(t)
	ndvi, moisture := 0.5, 12.0
	f.Holes[6].NDVI = &ndvi
	f.Holes[6].Moisture = &moisture
	b, err := yaml.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	pinned, err := LoadBytes(b, LoadOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("load pinned: %v", err)
	}
	plain, err := Load(LoadOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("load plain: %v", err)
	}
	h7, _ := pinned.Hole(7)
	if h7.NDVI != 0.5 || h7.Moisture != 12 {
		t.Fatalf("pinned readings ignored: %+v", h7)
	}
	p8, _ := pinned.Hole(8)
	q8, _ := plain.Hole(8)
	if p8 != q8 {
		t.Fatalf("pinning hole 7 shifted hole 8: %+v vs %+v", p8, q8)
	}
}

func TestLoadRejectsInvalidFixtures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Fixture)
	}{
		{"wrong kind", func(f *Fixture) { f.Kind = "level" }},
		{"wrong schema", func(f *Fixture) { f.SchemaVersion = 2 }},
		{"seventeen holes", func(f *Fixture) { f.Holes = f.Holes[:17] }},
		{"duplicate hole", func(f *Fixture) { f.Holes[17].Hole = 1 }},
		{"hole out of range", func(f *Fixture) { f.Holes[17].Hole = 19 }},
		{"bad par", func(f *Fixture) { f.Holes[0].Par = 7 }},
		{"bad status", func(f *Fixture) { f.Holes[0].Status = "Unknown" }},
		{"score over max", func(f *Fixture) { f.Health[0].Score = 101 }},
		{"negative score", func(f *Fixture) { f.Health[0].Score = -1 }},
		{"missing axis", func(f *Fixture) { f.Health = f.Health[:5] }},
		{"six predictions", func(f *Fixture) { f.Predictions = f.Predictions[:6] }},
		{"observed after future", func(f *Fixture) {
			v := 10.0
			f.Predictions[6].Observed = &v
		}},
		{"duplicate task", func(f *Fixture) { f.Tasks[1].ID = f.Tasks[0].ID }},
		{"bad task status", func(f *Fixture) { f.Tasks[0].Status = "Blocked" }},
		{"bad priority", func(f *Fixture) { f.Tasks[0].Priority = "Urgent" }},
		{"bad alert level", func(f *Fixture) { f.Alerts[0].Level = "DEBUG" }},
		{"missing greeting", func(f *Fixture) { f.Chat.Greeting = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := loadMutated(t, tc.mutate)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.Is(err, ErrInvalidFixture) {
				t.Fatalf("expected ErrInvalidFixture, got %v", err)
			}
		})
	}
}

func TestLoadFileReadsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	if err := os.WriteFile(path, builtinFixture, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := LoadFile(path, LoadOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if s.Name() != "GDX Platform" {
		t.Fatalf("unexpected course name %q", s.Name())
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("kind: [unclosed"), 0o644); err != nil {
		t.Fatalf("write bad fixture: %v", err)
	}
	if _, err := LoadFile(bad, LoadOptions{}); !errors.Is(err, ErrInvalidFixture) {
		t.Fatalf("expected ErrInvalidFixture for malformed yaml, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), LoadOptions{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
