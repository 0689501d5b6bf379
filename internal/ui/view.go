package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"gdx/internal/course"
	"gdx/internal/session"
)

type applyMsg struct {
	fn func(*Root)
}

const flashTTL = 5 * time.Second

type clockMsg time.Time
type animateMsg time.Time

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	store        *course.Store
	ctrl         Controller
	styleVariant string
	motionLevel  string
	mouseScope   string
	now          func() time.Time

	mu      sync.Mutex
	program *tea.Program
	running bool

	actMu   sync.Mutex
	actions []func()
	actBusy bool

	layout LayoutMode
	cols   int
	rows   int

	snap         Snapshot
	sessionLabel string
	statusFlash  string
	flashUntil   time.Time

	popup     Popup
	popupOpen bool
	helpOpen  bool

	focus      focusArea
	cursor     course.HoleNumber
	chatInput  []rune
	chatScroll int

	hits []hitbox

	help       help.Model
	keymap     keyMap
	meter      progress.Model
	replySpin  spinner.Model
	markdown   *glamour.TermRenderer
	manual     string
	manualW    int
	logger     *clog.Logger
	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring

	lastInputEvent string
}

type Options struct {
	Store        *course.Store
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
	MouseScope   string
	Logger       *clog.Logger
	// Now overrides the clock used for alert ages and the header time.
	Now func() time.Time
}

func New(opts Options) *Root {
	logger := opts.Logger
	if logger == nil {
		logger = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "gdx-ui", Level: clog.WarnLevel})
		if opts.Debug {
			logger.SetLevel(clog.DebugLevel)
		}
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		store:        opts.Store,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		mouseScope:   normalizeMouseScope(opts.MouseScope),
		now:          now,
		layout:       LayoutWide,
		cols:         WideCols,
		rows:         WideRows,
		snap:         Snapshot{State: session.DefaultViewState()},
		cursor:       session.DefaultViewState().Hole,
		help:         h,
		keymap:       defaultKeyMap(),
		logger:       logger,
		spring:       springFor(motionLevel),
	}
	r.applyTheme(theme)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		logger.Warn("ui.markdown_unavailable", "err", err)
		renderer = nil
	}
	r.markdown = renderer
	return r
}

func (r *Root) applyTheme(theme Theme) {
	r.theme = theme
	r.meter = progress.New(
		progress.WithWidth(20),
		progress.WithColors(theme.BarFrom, theme.BarTo),
		progress.WithScaled(true),
		progress.WithoutPercentage(),
	)
	if r.replySpin.ID() != 0 {
		// Keep the running tick chain alive.
		r.replySpin.Style = theme.Accent
		return
	}
	r.replySpin = spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), spinnerTickCmd(r.replySpin))
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	// apply runs directly under mu before the program starts.
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		r.dispatchController(func(c Controller) { c.OnResize(msg.Width, msg.Height) })
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case clockMsg:
		if r.flashText() == "" {
			r.statusFlash = ""
		}
		return r, clockTickCmd()
	case animateMsg:
		target := r.overlayTarget()
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.overlayPos = target
		r.overlayVel = 0
		return r, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.replySpin, cmd = r.replySpin.Update(msg)
		return r, cmd
	case tea.PasteMsg:
		return r.handlePaste(msg)
	case tea.MouseClickMsg:
		return r.handleMouseClick(msg)
	case tea.MouseWheelMsg:
		return r.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			if r.statusFlash == "" {
				r.statusFlash = "Recovered UI panic"
			}
			view = tea.NewView(r.theme.Critical.Width(width).Render(trimForWidth("UI recovered from a rendering panic. Check logs.", max(1, width-1))))
		}
	}()

	if r.cols < 1 {
		r.cols = WideCols
	}
	if r.rows < 1 {
		r.rows = WideRows
	}

	base := r.renderScreen()
	if ov, ok := r.overlaySpec(); ok {
		// Slide in from below while the spring settles.
		offset := int((1 - r.overlayPos) * 4)
		base = composeOverlay(base, r.drawPanel(ov.title, ov.lines, ov.width, ov.height), r.cols, r.rows, ov.startRow+offset, ov.startCol)
	}
	v := tea.NewView(base)
	v.AltScreen = true
	v.MouseMode = r.currentMouseMode()
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetSnapshot(s Snapshot) {
	r.apply(func(m *Root) {
		if s.Seq < m.snap.Seq {
			return
		}
		if s.State.Hole != m.snap.State.Hole && s.State.Hole.Valid() {
			m.cursor = s.State.Hole
		}
		if len(s.Messages) != len(m.snap.Messages) {
			m.chatScroll = 0
		}
		m.snap = s
	})
}

func (r *Root) SetTheme(variant string) {
	r.apply(func(m *Root) {
		m.styleVariant = normalizeStyleVariant(variant)
		m.applyTheme(ThemeForVariant(m.styleVariant))
	})
}

func (r *Root) SetSessionLabel(label string) {
	r.apply(func(m *Root) {
		m.sessionLabel = label
	})
}

func (r *Root) SetMotionLevel(level string) {
	r.apply(func(m *Root) {
		m.motionLevel = normalizeMotionLevel(level)
		m.spring = springFor(m.motionLevel)
		m.snapOverlay()
	})
}

func (r *Root) SetMouseScope(scope string) {
	r.apply(func(m *Root) {
		m.mouseScope = normalizeMouseScope(scope)
	})
}

func (r *Root) ShowPopup(p Popup) {
	r.apply(func(m *Root) {
		m.popup = p
		m.popupOpen = true
		m.snapOverlay()
	})
}

func (r *Root) SetHelpOpen(open bool) {
	r.apply(func(m *Root) {
		m.helpOpen = open
		m.snapOverlay()
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
		m.flashUntil = m.now().Add(flashTTL)
	})
}

// flashText is the status message while it is still fresh.
func (r *Root) flashText() string {
	if !r.flashUntil.IsZero() && !r.now().Before(r.flashUntil) {
		return ""
	}
	return r.statusFlash
}

// Capture renders the current screen as plain text.
func (r *Root) Capture() string {
	out := make(chan string, 1)
	r.apply(func(m *Root) {
		out <- ansi.Strip(m.renderScreen())
	})
	select {
	case s := <-out:
		return s
	case <-time.After(time.Second):
		return ""
	}
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

// dispatchController queues fn for the controller. One worker drains the
// queue in order, so intents reach the controller as they were typed while
// Update never waits on it.
func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	r.actMu.Lock()
	r.actions = append(r.actions, func() { fn(ctrl) })
	if r.actBusy {
		r.actMu.Unlock()
		return
	}
	r.actBusy = true
	r.actMu.Unlock()
	go r.drainActions()
}

func (r *Root) drainActions() {
	for {
		r.actMu.Lock()
		if len(r.actions) == 0 {
			r.actBusy = false
			r.actMu.Unlock()
			return
		}
		next := r.actions[0]
		r.actions = r.actions[1:]
		r.actMu.Unlock()
		next()
	}
}

func (r *Root) selectTab(tab session.Tab) {
	r.dispatchController(func(c Controller) { c.OnSelectTab(tab) })
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	if key.Matches(msg, r.keymap.Quit) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}
	if r.overlayActive() {
		return r.handleOverlayKey(msg)
	}
	if key.Matches(msg, r.keymap.Print) {
		r.dispatchController(func(c Controller) { c.OnPrint() })
		return r, nil
	}
	if key.Matches(msg, r.keymap.Theme) {
		r.dispatchController(func(c Controller) { c.OnCycleTheme() })
		return r, nil
	}
	if key.Matches(msg, r.keymap.Motion) {
		r.dispatchController(func(c Controller) { c.OnCycleMotion() })
		return r, nil
	}
	if key.Matches(msg, r.keymap.Mouse) {
		r.dispatchController(func(c Controller) { c.OnCycleMouse() })
		return r, nil
	}

	switch msg.Code {
	case tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5:
		r.selectTab(session.Tabs[int(msg.Code-tea.KeyF1)])
		return r, nil
	}

	tab := r.snap.State.Tab
	if tab == session.TabCourse && r.focus == focusChat {
		return r.handleChatKey(msg)
	}

	if msg.Mod == 0 && msg.Code >= '1' && msg.Code <= '5' {
		r.selectTab(session.Tabs[int(msg.Code-'1')])
		return r, nil
	}
	if key.Matches(msg, r.keymap.Help) {
		r.helpOpen = true
		return r, r.animateIfNeeded()
	}

	switch tab {
	case session.TabDashboard:
		if msg.Code == tea.KeyEnter {
			r.dispatchController(func(c Controller) { c.OnFollowAlert() })
		}
	case session.TabCourse:
		return r.handleCourseKey(msg)
	case session.TabDetail:
		return r.handleDetailKey(msg)
	}
	return r, nil
}

func (r *Root) handleCourseKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if i, ok := suggestionIndex(msg); ok {
		r.dispatchController(func(c Controller) { c.OnSuggestion(i) })
		return r, nil
	}
	switch msg.Code {
	case tea.KeyTab:
		r.focus = focusChat
	case tea.KeyLeft:
		r.moveCursor(-1)
	case tea.KeyRight:
		r.moveCursor(1)
	case tea.KeyUp:
		r.moveCursor(mapColumns)
	case tea.KeyDown:
		r.moveCursor(-mapColumns)
	case tea.KeyEnter:
		h := r.cursor
		r.dispatchController(func(c Controller) { c.OnClickHole(h) })
	}
	return r, nil
}

func (r *Root) handleChatKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if i, ok := suggestionIndex(msg); ok {
		r.dispatchController(func(c Controller) { c.OnSuggestion(i) })
		return r, nil
	}
	switch msg.Code {
	case tea.KeyTab, tea.KeyEsc:
		r.focus = focusMap
	case tea.KeyEnter:
		text := string(r.chatInput)
		r.chatInput = nil
		r.chatScroll = 0
		r.dispatchController(func(c Controller) { c.OnSubmitChat(text) })
	case tea.KeyBackspace:
		if n := len(r.chatInput); n > 0 {
			r.chatInput = r.chatInput[:n-1]
		}
	case tea.KeyPgUp:
		r.chatScroll += 3
	case tea.KeyPgDown:
		r.chatScroll = max(0, r.chatScroll-3)
	default:
		if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
			r.chatInput = append(r.chatInput, []rune(msg.Text)...)
		}
	}
	return r, nil
}

func (r *Root) handleDetailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	st := r.snap.State
	var area course.Area
	var layer course.Layer
	switch msg.String() {
	case "g":
		area = course.AreaGreen
	case "f":
		area = course.AreaFairway
	case "t":
		area = course.AreaTee
	case "s":
		layer = course.LayerSatellite
	case "m":
		layer = course.LayerMoisture
	case "p":
		layer = course.LayerPerformance
	case "left":
		area = course.Areas[wrapIndex(indexOfArea(st.Area)-1, len(course.Areas))]
	case "right":
		area = course.Areas[wrapIndex(indexOfArea(st.Area)+1, len(course.Areas))]
	case "up":
		layer = course.Layers[wrapIndex(indexOfLayer(st.Layer)-1, len(course.Layers))]
	case "down":
		layer = course.Layers[wrapIndex(indexOfLayer(st.Layer)+1, len(course.Layers))]
	case "[":
		h := course.HoleNumber(wrapIndex(int(st.Hole)-2, course.HoleCount) + 1)
		r.dispatchController(func(c Controller) { c.OnSelectHole(h) })
	case "]":
		h := course.HoleNumber(wrapIndex(int(st.Hole), course.HoleCount) + 1)
		r.dispatchController(func(c Controller) { c.OnSelectHole(h) })
	}
	if area != "" {
		r.dispatchController(func(c Controller) { c.OnSelectArea(area) })
	}
	if layer != "" {
		r.dispatchController(func(c Controller) { c.OnSelectLayer(layer) })
	}
	return r, nil
}

func (r *Root) handleOverlayKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Code == tea.KeyEsc, msg.Code == tea.KeyEnter,
		msg.Mod == 0 && (msg.Code == 'q' || msg.Code == 'Q'),
		key.Matches(msg, r.keymap.Help):
		r.closeTopOverlay()
	}
	return r, r.animateIfNeeded()
}

func (r *Root) handlePaste(msg tea.PasteMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("paste:%d", len(msg.Content)))
	if r.overlayActive() || r.snap.State.Tab != session.TabCourse || msg.Content == "" {
		return r, nil
	}
	r.focus = focusChat
	text := strings.Join(strings.Fields(msg.Content), " ")
	r.chatInput = append(r.chatInput, []rune(text)...)
	return r, nil
}

func (r *Root) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_click:%d,%d button:%v", mouse.X, mouse.Y, mouse.Button))

	if r.mouseScope == "off" || mouse.Button != tea.MouseLeft {
		return r, nil
	}
	if r.overlayActive() {
		r.closeTopOverlay()
		return r, r.animateIfNeeded()
	}
	for i := len(r.hits) - 1; i >= 0; i-- {
		if r.hits[i].contains(mouse.X, mouse.Y) {
			r.hits[i].fn(r)
			return r, nil
		}
	}
	return r, nil
}

func (r *Root) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_wheel:%d,%d button:%v", mouse.X, mouse.Y, mouse.Button))

	if r.mouseScope != "full" || r.snap.State.Tab != session.TabCourse {
		return r, nil
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		r.chatScroll++
	case tea.MouseWheelDown:
		r.chatScroll = max(0, r.chatScroll-1)
	}
	return r, nil
}

const mapColumns = 5

func (r *Root) moveCursor(delta int) {
	next := int(r.cursor) + delta
	if next < course.FirstHole || next > course.LastHole {
		return
	}
	r.cursor = course.HoleNumber(next)
}

func suggestionIndex(msg tea.KeyPressMsg) (int, bool) {
	switch msg.Code {
	case tea.KeyF6:
		return 0, true
	case tea.KeyF7:
		return 1, true
	case tea.KeyF8:
		return 2, true
	}
	return 0, false
}

func indexOfArea(a course.Area) int {
	for i, v := range course.Areas {
		if v == a {
			return i
		}
	}
	return 0
}

func indexOfLayer(l course.Layer) int {
	for i, v := range course.Layers {
		if v == l {
			return i
		}
	}
	return 0
}

func (r *Root) topOverlay() string {
	switch {
	case r.popupOpen:
		return "popup"
	case r.helpOpen:
		return "help"
	}
	return ""
}

func (r *Root) overlayActive() bool {
	return r.topOverlay() != ""
}

func (r *Root) closeTopOverlay() {
	switch r.topOverlay() {
	case "popup":
		r.popupOpen = false
		r.popup = Popup{}
	case "help":
		r.helpOpen = false
	}
}

type overlaySpec struct {
	title    string
	lines    []string
	width    int
	height   int
	startRow int
	startCol int
}

func (r *Root) overlaySpec() (overlaySpec, bool) {
	var ov overlaySpec
	switch r.topOverlay() {
	case "popup":
		ov.title = firstNonEmptyStr(r.popup.Title, "Info")
		ov.lines = strings.Split(strings.TrimSuffix(r.popup.Text, "\n"), "\n")
		ov.lines = append(ov.lines, "", r.theme.Muted.Render("Esc/Enter: Close"))
		ov.width = r.popup.Width
		ov.height = r.popup.Height
	case "help":
		ov.title = "Keys"
		r.help.SetWidth(max(20, r.cols-16))
		ov.lines = strings.Split(r.help.FullHelpView(r.keymap.FullHelp()), "\n")
		ov.lines = append(ov.lines, "", r.theme.Muted.Render("Esc/?: Close"))
	default:
		return overlaySpec{}, false
	}

	if ov.width <= 0 {
		w := 0
		for _, l := range ov.lines {
			w = max(w, ansi.StringWidth(l))
		}
		ov.width = max(40, w+4)
	}
	ov.width = min(ov.width, r.cols)
	if ov.height <= 0 {
		ov.height = len(ov.lines) + 2
	}
	ov.height = min(ov.height, max(3, r.rows-2))

	if r.topOverlay() == "popup" && r.popup.Anchored {
		ov.startRow = r.popup.Top
		ov.startCol = r.popup.Left
	} else {
		ov.startRow = (r.rows - ov.height) / 2
		ov.startCol = (r.cols - ov.width) / 2
	}
	return ov, true
}

func (r *Root) overlayTarget() float64 {
	if r.overlayActive() {
		return 1
	}
	return 0
}

// snapOverlay skips the slide animation when motion is off.
func (r *Root) snapOverlay() {
	if r.motionLevel == "off" {
		r.overlayPos = r.overlayTarget()
		r.overlayVel = 0
	}
}

func (r *Root) animateIfNeeded() tea.Cmd {
	if r.shouldAnimate(r.overlayTarget()) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	if target > 0 {
		return r.overlayPos < 0.999 || abs(r.overlayVel) > 0.001
	}
	return r.overlayPos > 0.001 || abs(r.overlayVel) > 0.001
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func (r *Root) currentMouseMode() tea.MouseMode {
	if r.mouseScope == "off" {
		return tea.MouseModeNone
	}
	return tea.MouseModeCellMotion
}

func springFor(motionLevel string) harmonica.Spring {
	switch motionLevel {
	case "reduced":
		return harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		return harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	return harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", "modern_arcade":
		return strings.TrimSpace(v)
	default:
		return "modern_arcade"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func normalizeMouseScope(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "scoped", "full":
		return strings.TrimSpace(v)
	default:
		return "scoped"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"tab", r.snap.State.Tab,
		"layout", r.layout,
		"cols", r.cols,
		"rows", r.rows,
		"overlay", r.topOverlay(),
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
