package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gdx/internal/analyst"
	"gdx/internal/course"
)

// DefaultReplyDelay is the simulated analysis latency before a reply lands.
const DefaultReplyDelay = 800 * time.Millisecond

// ClickAreaFor is the area opened when a hole marker is clicked on the course
// map: hole 7 opens its fairway, every other hole its green.
func ClickAreaFor(h course.HoleNumber) course.Area {
	if h == 7 {
		return course.AreaFairway
	}
	return course.AreaGreen
}

type Responder interface {
	Respond(input string) analyst.Reply
}

// Scheduler runs fn after d. The default is time.AfterFunc.
type Scheduler func(d time.Duration, fn func())

func afterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

type Options struct {
	Responder   Responder
	Greeting    string
	Suggestions []string
	// ReplyDelay is used as given; zero appends replies synchronously.
	ReplyDelay time.Duration
	Scheduler  Scheduler
	Initial    *ViewState
}

type Controller struct {
	responder   Responder
	suggestions []string
	delay       time.Duration
	schedule    Scheduler

	mu        sync.Mutex
	state     ViewState
	messages  []ChatMessage
	pending   int
	seq       uint64
	closed    bool
	observers map[int]func(Event)
	nextObs   int
}

func New(opts Options) (*Controller, error) {
	if opts.Responder == nil {
		return nil, fmt.Errorf("session: responder is required")
	}
	if opts.ReplyDelay < 0 {
		return nil, fmt.Errorf("session: negative reply delay %s", opts.ReplyDelay)
	}
	state := DefaultViewState()
	if opts.Initial != nil {
		if err := validateState(*opts.Initial); err != nil {
			return nil, err
		}
		state = *opts.Initial
	}
	c := &Controller{
		responder:   opts.Responder,
		suggestions: append([]string(nil), opts.Suggestions...),
		delay:       opts.ReplyDelay,
		schedule:    opts.Scheduler,
		state:       state,
		observers:   map[int]func(Event){},
	}
	if c.schedule == nil {
		c.schedule = afterFunc
	}
	if strings.TrimSpace(opts.Greeting) != "" {
		c.messages = append(c.messages, ChatMessage{Role: RoleAssistant, Text: opts.Greeting})
	}
	return c, nil
}

func validateState(s ViewState) error {
	if !s.Tab.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidTab, s.Tab)
	}
	if _, err := course.ParseHole(int(s.Hole)); err != nil {
		return err
	}
	if !s.Area.Valid() {
		return fmt.Errorf("%w %q", course.ErrInvalidArea, s.Area)
	}
	if !s.Layer.Valid() {
		return fmt.Errorf("%w %q", course.ErrInvalidLayer, s.Layer)
	}
	return nil
}

func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ChatMessage(nil), c.messages...)
}

// Snapshot returns state, log and pending count read under one lock. Seq
// grows with every change, so a consumer can discard a snapshot older than
// one it already holds.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Seq:      c.seq,
		State:    c.state,
		Messages: append([]ChatMessage(nil), c.messages...),
		Pending:  c.pending,
	}
}

// Pending is the number of replies scheduled but not yet appended.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Controller) Suggestions() []string {
	return append([]string(nil), c.suggestions...)
}

// Subscribe registers fn for every subsequent event. Observers run outside
// the controller lock, on whichever goroutine made the change.
func (c *Controller) Subscribe(fn func(Event)) (cancel func()) {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

func (c *Controller) SetTab(t Tab) error {
	if !t.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidTab, t)
	}
	c.mutate(EventTab, func(s *ViewState) { s.Tab = t })
	return nil
}

func (c *Controller) SelectHole(h course.HoleNumber) error {
	if _, err := course.ParseHole(int(h)); err != nil {
		return err
	}
	c.mutate(EventHole, func(s *ViewState) { s.Hole = h })
	return nil
}

func (c *Controller) SetArea(a course.Area) error {
	if !a.Valid() {
		return fmt.Errorf("%w %q", course.ErrInvalidArea, a)
	}
	return c.mutateOn(TabDetail, EventArea, func(s *ViewState) { s.Area = a })
}

func (c *Controller) SetLayer(l course.Layer) error {
	if !l.Valid() {
		return fmt.Errorf("%w %q", course.ErrInvalidLayer, l)
	}
	return c.mutateOn(TabDetail, EventLayer, func(s *ViewState) { s.Layer = l })
}

// ClickHole handles a marker click on the course map: it selects the hole,
// picks its default area and opens the detail tab in one step.
func (c *Controller) ClickHole(h course.HoleNumber) error {
	if _, err := course.ParseHole(int(h)); err != nil {
		return err
	}
	return c.mutateOn(TabCourse, EventClick, func(s *ViewState) {
		s.Hole = h
		s.Area = ClickAreaFor(h)
		s.Tab = TabDetail
	})
}

// SubmitChat appends text as a user message and schedules the responder
// reply. Blank input is ignored and reports false.
func (c *Controller) SubmitChat(text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	c.mu.Lock()
	if c.state.Tab != TabCourse {
		tab := c.state.Tab
		c.mu.Unlock()
		return false, fmt.Errorf("%w: chat on %s", ErrWrongTab, tab)
	}
	msg := ChatMessage{Role: RoleUser, Text: text}
	c.messages = append(c.messages, msg)
	c.pending++
	c.seq++
	ev := Event{Kind: EventChat, Seq: c.seq, State: c.state, Message: msg, Pending: c.pending}
	obs := c.snapshotObservers()
	c.mu.Unlock()
	notify(obs, ev)

	reply := func() { c.deliver(text) }
	if c.delay == 0 {
		reply()
	} else {
		c.schedule(c.delay, reply)
	}
	return true, nil
}

// Suggest submits the i-th suggested prompt exactly as if it were typed.
func (c *Controller) Suggest(i int) (bool, error) {
	if i < 0 || i >= len(c.suggestions) {
		return false, fmt.Errorf("suggestion %d out of range (have %d)", i, len(c.suggestions))
	}
	return c.SubmitChat(c.suggestions[i])
}

// Close drops replies that have not landed yet.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.observers = map[int]func(Event){}
	c.mu.Unlock()
}

func (c *Controller) deliver(question string) {
	r := c.responder.Respond(question)
	msg := ChatMessage{Role: RoleAssistant, Text: r.Text, Kind: r.Kind}

	c.mu.Lock()
	c.pending--
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, msg)
	c.seq++
	ev := Event{Kind: EventReply, Seq: c.seq, State: c.state, Message: msg, Pending: c.pending}
	obs := c.snapshotObservers()
	c.mu.Unlock()
	notify(obs, ev)
}

func (c *Controller) mutate(kind EventKind, fn func(*ViewState)) {
	c.mu.Lock()
	fn(&c.state)
	c.seq++
	ev := Event{Kind: kind, Seq: c.seq, State: c.state, Pending: c.pending}
	obs := c.snapshotObservers()
	c.mu.Unlock()
	notify(obs, ev)
}

func (c *Controller) mutateOn(tab Tab, kind EventKind, fn func(*ViewState)) error {
	c.mu.Lock()
	if c.state.Tab != tab {
		cur := c.state.Tab
		c.mu.Unlock()
		return fmt.Errorf("%w: %s needs %s, active %s", ErrWrongTab, kind, tab, cur)
	}
	fn(&c.state)
	c.seq++
	ev := Event{Kind: kind, Seq: c.seq, State: c.state, Pending: c.pending}
	obs := c.snapshotObservers()
	c.mu.Unlock()
	notify(obs, ev)
	return nil
}

func (c *Controller) snapshotObservers() []func(Event) {
	out := make([]func(Event), 0, len(c.observers))
	for i := 0; i < c.nextObs; i++ {
		if fn, ok := c.observers[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(obs []func(Event), ev Event) {
	for _, fn := range obs {
		fn(ev)
	}
}
