package analyst

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gdx/internal/course"
)

func newResponder(t *testing.T) *Responder {
	t.Helper()
	s, err := course.Load(course.LoadOptions{Seed: course.DefaultSeed})
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	return New(s.Replies())
}

func TestRespondScenarios(t *testing.T) {
	r := newResponder(t)

	got := r.Respond("수분 상태 알려줘")
	if got.Kind != KindDroughtStress {
		t.Fatalf("expected drought reply, got %s", got.Kind)
	}
	if !strings.Contains(got.Text, "7번 홀 페어웨이 (VWC 12%)") {
		t.Fatalf("drought reply missing hole 7: %q", got.Text)
	}

	got = r.Respond("라지패치 위험도는?")
	if got.Kind != KindDiseaseRisk {
		t.Fatalf("expected disease reply, got %s", got.Kind)
	}
	if !strings.Contains(got.Text, "4번 홀 그린") || !strings.Contains(got.Text, "85%") {
		t.Fatalf("disease reply missing hole 4: %q", got.Text)
	}

	got = r.Respond("안녕")
	if got.Kind != KindFallback || got.Text != "죄송합니다. 현재 분석 중인 데이터가 부족합니다." {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestRespondPrecedence(t *testing.T) {
	cases := []struct {
		input string
		want  Kind
	}{
		{"수분", KindDroughtStress},
		{"건조한 곳", KindDroughtStress},
		{"병해 상태 그리고 수분", KindDroughtStress},
		{"병 상태", KindDiseaseRisk},
		{"라지패치 전체", KindDiseaseRisk},
		{"전체 상태", KindOverview},
		{"코스 상태", KindOverview},
		{"코스 브리핑", KindFallback},
		{"위험 지역?", KindFallback},
		{"", KindFallback},
		{"WATER", KindFallback},
	}
	for _, tc := range cases {
		if got := Classify(tc.input); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	r := newResponder(t)
	for _, input := range []string{"수분 상태 요약", "위험 지역?", "코스 브리핑", "병"} {
		first := r.Respond(input)
		for i := 0; i < 5; i++ {
			if diff := cmp.Diff(first, r.Respond(input)); diff != "" {
				t.Fatalf("reply for %q changed (-first +again):\n%s", input, diff)
			}
		}
	}
}

func TestKeywordsInMatchOrder(t *testing.T) {
	if diff := cmp.Diff([]string{"수분", "건조"}, Keywords(KindDroughtStress)); diff != "" {
		t.Fatalf("drought keywords (-want +got):\n%s", diff)
	}
	if Keywords(KindFallback) != nil {
		t.Fatalf("fallback has no keywords")
	}
}

func TestSegments(t *testing.T) {
	got := Segments("현재 **7번 홀** 입니다.")
	want := []Segment{
		{Text: "현재 "},
		{Text: "7번 홀", Emphasis: true},
		{Text: " 입니다."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("segments (-want +got):\n%s", diff)
	}

	got = Segments("**4번(병해)**과 **7번(건조)** 홀")
	want = []Segment{
		{Text: "4번(병해)", Emphasis: true},
		{Text: "과 "},
		{Text: "7번(건조)", Emphasis: true},
		{Text: " 홀"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("segments (-want +got):\n%s", diff)
	}
	if Plain("**a** b") != "a b" {
		t.Fatalf("unexpected plain text %q", Plain("**a** b"))
	}
}
