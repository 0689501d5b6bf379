package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"gdx/internal/analyst"
	"gdx/internal/course"
)

type countingResponder struct {
	mu    sync.Mutex
	calls []string
	inner *analyst.Responder
}

func (r *countingResponder) Respond(input string) analyst.Reply {
	r.mu.Lock()
	r.calls = append(r.calls, input)
	r.mu.Unlock()
	return r.inner.Respond(input)
}

func (r *countingResponder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type manualScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	queue  []func()
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) {
	m.mu.Lock()
	m.delays = append(m.delays, d)
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
}

func (m *manualScheduler) runAll() {
	m.mu.Lock()
	q := m.queue
	m.queue = nil
	m.mu.Unlock()
	for _, fn := range q {
		fn()
	}
}

type fixture struct {
	ctrl      *Controller
	responder *countingResponder
	sched     *manualScheduler
	store     *course.Store
}

func newFixture(t *testing.T, delay time.Duration) fixture {
	t.Helper()
	store, err := course.Load(course.LoadOptions{Seed: course.DefaultSeed})
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	resp := &countingResponder{inner: analyst.New(store.Replies())}
	sched := &manualScheduler{}
	ctrl, err := New(Options{
		Responder:   resp,
		Greeting:    store.Replies().Greeting,
		Suggestions: store.Suggestions(),
		ReplyDelay:  delay,
		Scheduler:   sched.schedule,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return fixture{ctrl: ctrl, responder: resp, sched: sched, store: store}
}

func TestDefaultViewState(t *testing.T) {
	f := newFixture(t, 0)
	want := ViewState{Tab: TabDashboard, Hole: 4, Area: course.AreaGreen, Layer: course.LayerSatellite}
	if diff := cmp.Diff(want, f.ctrl.State()); diff != "" {
		t.Fatalf("initial state (-want +got):\n%s", diff)
	}
	msgs := f.ctrl.Messages()
	if len(msgs) != 1 || msgs[0].Role != RoleAssistant {
		t.Fatalf("chat log should start with the greeting, got %+v", msgs)
	}
}

func TestClickHoleEveryHole(t *testing.T) {
	f := newFixture(t, 0)
	for n := course.FirstHole; n <= course.LastHole; n++ {
		h := course.HoleNumber(n)
		if err := f.ctrl.SetTab(TabCourse); err != nil {
			t.Fatalf("set tab: %v", err)
		}
		before := f.ctrl.State()
		if err := f.ctrl.ClickHole(h); err != nil {
			t.Fatalf("click hole %d: %v", n, err)
		}
		got := f.ctrl.State()
		wantArea := course.AreaGreen
		if n == 7 {
			wantArea = course.AreaFairway
		}
		want := ViewState{Tab: TabDetail, Hole: h, Area: wantArea, Layer: before.Layer}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("hole %d (-want +got):\n%s", n, diff)
		}
	}
}

func TestClickHoleRequiresCourseTab(t *testing.T) {
	f := newFixture(t, 0)
	before := f.ctrl.State()
	if err := f.ctrl.ClickHole(7); !errors.Is(err, ErrWrongTab) {
		t.Fatalf("expected ErrWrongTab, got %v", err)
	}
	if f.ctrl.State() != before {
		t.Fatalf("state changed on rejected click")
	}
	_ = f.ctrl.SetTab(TabCourse)
	if err := f.ctrl.ClickHole(19); !errors.Is(err, course.ErrInvalidHole) {
		t.Fatalf("expected ErrInvalidHole, got %v", err)
	}
	if f.ctrl.State().Tab != TabCourse {
		t.Fatalf("invalid click must leave the tab alone")
	}
}

func TestTabSwitchesLeaveSelectionAlone(t *testing.T) {
	f := newFixture(t, 0)
	_ = f.ctrl.SetTab(TabDetail)
	if err := f.ctrl.SelectHole(12); err != nil {
		t.Fatalf("select hole: %v", err)
	}
	if err := f.ctrl.SetArea(course.AreaTee); err != nil {
		t.Fatalf("set area: %v", err)
	}
	if err := f.ctrl.SetLayer(course.LayerPerformance); err != nil {
		t.Fatalf("set layer: %v", err)
	}
	for _, tab := range []Tab{TabDashboard, TabPrediction, TabTasks, TabCourse, TabDetail} {
		if err := f.ctrl.SetTab(tab); err != nil {
			t.Fatalf("set tab %s: %v", tab, err)
		}
		got := f.ctrl.State()
		want := ViewState{Tab: tab, Hole: 12, Area: course.AreaTee, Layer: course.LayerPerformance}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("tab %s (-want +got):\n%s", tab, diff)
		}
	}
}

func TestAreaAndLayerRequireDetailTab(t *testing.T) {
	f := newFixture(t, 0)
	if err := f.ctrl.SetArea(course.AreaFairway); !errors.Is(err, ErrWrongTab) {
		t.Fatalf("expected ErrWrongTab for area, got %v", err)
	}
	if err := f.ctrl.SetLayer(course.LayerMoisture); !errors.Is(err, ErrWrongTab) {
		t.Fatalf("expected ErrWrongTab for layer, got %v", err)
	}
	_ = f.ctrl.SetTab(TabDetail)
	if err := f.ctrl.SetArea(course.Area("bunker")); !errors.Is(err, course.ErrInvalidArea) {
		t.Fatalf("expected ErrInvalidArea, got %v", err)
	}
	if err := f.ctrl.SetLayer(course.Layer("thermal")); !errors.Is(err, course.ErrInvalidLayer) {
		t.Fatalf("expected ErrInvalidLayer, got %v", err)
	}
	if err := f.ctrl.SetTab(Tab("settings")); !errors.Is(err, ErrInvalidTab) {
		t.Fatalf("expected ErrInvalidTab, got %v", err)
	}
	if diff := cmp.Diff(ViewState{Tab: TabDetail, Hole: 4, Area: course.AreaGreen, Layer: course.LayerSatellite}, f.ctrl.State()); diff != "" {
		t.Fatalf("rejected writes changed state (-want +got):\n%s", diff)
	}
}

func TestEmptyChatIsIgnored(t *testing.T) {
	f := newFixture(t, 0)
	_ = f.ctrl.SetTab(TabCourse)
	for _, text := range []string{"", " ", "\t\n", "   "} {
		ok, err := f.ctrl.SubmitChat(text)
		if err != nil || ok {
			t.Fatalf("blank %q: ok=%v err=%v", text, ok, err)
		}
	}
	if got := len(f.ctrl.Messages()); got != 1 {
		t.Fatalf("blank input appended messages: %d", got)
	}
	if f.responder.count() != 0 {
		t.Fatalf("blank input reached the responder")
	}
}

func TestSubmitChatDefersReply(t *testing.T) {
	f := newFixture(t, DefaultReplyDelay)
	_ = f.ctrl.SetTab(TabCourse)

	ok, err := f.ctrl.SubmitChat("수분 상태 알려줘")
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}
	msgs := f.ctrl.Messages()
	if len(msgs) != 2 || msgs[1].Role != RoleUser || msgs[1].Text != "수분 상태 알려줘" {
		t.Fatalf("user message not appended verbatim: %+v", msgs)
	}
	if f.ctrl.Pending() != 1 {
		t.Fatalf("expected one pending reply, got %d", f.ctrl.Pending())
	}
	if len(f.sched.delays) != 1 || f.sched.delays[0] != 800*time.Millisecond {
		t.Fatalf("unexpected reply delays %v", f.sched.delays)
	}

	f.sched.runAll()
	msgs = f.ctrl.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected reply appended, got %d messages", len(msgs))
	}
	if msgs[2].Role != RoleAssistant || msgs[2].Kind != analyst.KindDroughtStress {
		t.Fatalf("unexpected reply %+v", msgs[2])
	}
	if f.ctrl.Pending() != 0 {
		t.Fatalf("pending should drain, got %d", f.ctrl.Pending())
	}
}

func TestSubmitChatRequiresCourseTab(t *testing.T) {
	f := newFixture(t, 0)
	if _, err := f.ctrl.SubmitChat("how is hole 7"); !errors.Is(err, ErrWrongTab) {
		t.Fatalf("expected ErrWrongTab, got %v", err)
	}
	if len(f.ctrl.Messages()) != 1 {
		t.Fatalf("rejected chat must not append")
	}
}

func TestRapidMessagesAllGetReplies(t *testing.T) {
	f := newFixture(t, time.Second)
	_ = f.ctrl.SetTab(TabCourse)
	for _, q := range []string{"안녕", "라지패치?", "전체 상태"} {
		if _, err := f.ctrl.SubmitChat(q); err != nil {
			t.Fatalf("submit %q: %v", q, err)
		}
	}
	if f.ctrl.Pending() != 3 {
		t.Fatalf("expected 3 pending, got %d", f.ctrl.Pending())
	}
	f.sched.runAll()
	var kinds []analyst.Kind
	for _, m := range f.ctrl.Messages() {
		if m.Role == RoleAssistant && m.Kind != "" {
			kinds = append(kinds, m.Kind)
		}
	}
	want := []analyst.Kind{analyst.KindFallback, analyst.KindDiseaseRisk, analyst.KindOverview}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("reply kinds (-want +got):\n%s", diff)
	}
}

func TestSuggestSubmitsLiteralText(t *testing.T) {
	f := newFixture(t, 0)
	_ = f.ctrl.SetTab(TabCourse)
	ok, err := f.ctrl.Suggest(0)
	if err != nil || !ok {
		t.Fatalf("suggest: ok=%v err=%v", ok, err)
	}
	msgs := f.ctrl.Messages()
	if msgs[1].Text != "수분 상태 요약" {
		t.Fatalf("suggestion text not submitted verbatim: %q", msgs[1].Text)
	}
	if msgs[2].Kind != analyst.KindDroughtStress {
		t.Fatalf("unexpected reply kind %s", msgs[2].Kind)
	}
	if _, err := f.ctrl.Suggest(3); err == nil {
		t.Fatalf("expected out-of-range suggestion error")
	}
}

func TestObserversSeeEveryTransition(t *testing.T) {
	f := newFixture(t, 0)
	var kinds []EventKind
	cancel := f.ctrl.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	_ = f.ctrl.SetTab(TabCourse)
	_, _ = f.ctrl.SubmitChat("병")
	_ = f.ctrl.ClickHole(4)
	_ = f.ctrl.SetLayer(course.LayerMoisture)
	_ = f.ctrl.SetArea(course.AreaTee)
	_ = f.ctrl.SelectHole(9)
	cancel()
	_ = f.ctrl.SetTab(TabTasks)

	want := []EventKind{EventTab, EventChat, EventReply, EventClick, EventLayer, EventArea, EventHole}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestCloseDropsLateReplies(t *testing.T) {
	f := newFixture(t, time.Second)
	_ = f.ctrl.SetTab(TabCourse)
	_, _ = f.ctrl.SubmitChat("수분")
	f.ctrl.Close()
	f.sched.runAll()
	if got := len(f.ctrl.Messages()); got != 2 {
		t.Fatalf("late reply appended after close: %d messages", got)
	}
}

func TestNewRejectsInvalidInitialState(t *testing.T) {
	resp := analyst.New(course.Replies{Fallback: "x"})
	bad := ViewState{Tab: TabCourse, Hole: 0, Area: course.AreaGreen, Layer: course.LayerSatellite}
	if _, err := New(Options{Responder: resp, Initial: &bad}); !errors.Is(err, course.ErrInvalidHole) {
		t.Fatalf("expected ErrInvalidHole, got %v", err)
	}
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without responder")
	}
}

func TestParseTab(t *testing.T) {
	for i, tab := range Tabs {
		got, err := ParseTab(string(tab))
		if err != nil || got != tab {
			t.Fatalf("parse %s: %v", tab, err)
		}
		if tab.Index() != i {
			t.Fatalf("index %s: got %d want %d", tab, tab.Index(), i)
		}
	}
	if _, err := ParseTab("settings"); !errors.Is(err, ErrInvalidTab) {
		t.Fatalf("expected ErrInvalidTab, got %v", err)
	}
	if TabDashboard.NavLabel() != "통합 대시보드" || TabTasks.Title() != "Work Order Management" {
		t.Fatalf("unexpected labels")
	}
}

func TestSnapshotSequenceGrowsWithEveryChange(t *testing.T) {
	f := newFixture(t, time.Second)
	var events []Event
	cancel := f.ctrl.Subscribe(func(ev Event) { events = append(events, ev) })
	defer cancel()

	if got := f.ctrl.Snapshot().Seq; got != 0 {
		t.Fatalf("fresh controller should start at seq 0, got %d", got)
	}
	_ = f.ctrl.SetTab(TabCourse)
	_, _ = f.ctrl.SubmitChat("how is hole 7")
	if err := f.ctrl.SetArea(course.AreaTee); err == nil {
		t.Fatalf("area change off the detail tab should be rejected")
	}

	snap := f.ctrl.Snapshot()
	if snap.Seq != 2 || snap.Pending != 1 || len(snap.Messages) != 2 || snap.State.Tab != TabCourse {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	f.sched.runAll()
	snap = f.ctrl.Snapshot()
	if snap.Seq != 3 || snap.Pending != 0 || len(snap.Messages) != 3 {
		t.Fatalf("reply should bump the sequence, got %+v", snap)
	}
	for i, ev := range events {
		if ev.Seq != uint64(i+1) {
			t.Fatalf("event %d carries seq %d", i, ev.Seq)
		}
	}

	snap.Messages[0].Text = "changed"
	if f.ctrl.Messages()[0].Text == "changed" {
		t.Fatalf("snapshot must copy the log")
	}
}
