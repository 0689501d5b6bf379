package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"gdx/internal/analyst"
	"gdx/internal/course"
	"gdx/internal/devtools"
	"gdx/internal/printer"
	"gdx/internal/session"
	"gdx/internal/state"
	"gdx/internal/telemetry"
	"gdx/internal/ui"
)

type App struct {
	cfg Config

	logger   *telemetry.Logger
	fixtures *course.Store
	prefs    state.Store
	spool    *printer.Spool
	session  *session.Controller
	demo     *devtools.Manager
	view     ui.View

	sessionID string
	cancelSub func()
	closeOnce sync.Once

	prefMu sync.Mutex
	style  string
	motion string
	mouse  string

	devMu     sync.Mutex
	devServer *http.Server
	demoMu    sync.Mutex
	devState  struct {
		State     string
		Demo      string
		RenderSeq int
		Rendered  bool
		Pending   bool
		Error     string
	}
}

// The print receipt opens at the top-left of the content area.
const (
	printPopupLeft = 0
	printPopupTop  = 1
)

type Option func(*options)

type options struct {
	view      ui.View
	scheduler session.Scheduler
	now       func() time.Time
}

// WithView replaces the terminal view, mainly for tests.
func WithView(v ui.View) Option {
	return func(o *options) { o.view = v }
}

// WithScheduler replaces the timer used for deferred chat replies.
func WithScheduler(s session.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(cfg Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := telemetry.New(cfg.LogPath, cfg.DebugLayout)
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:       cfg,
		logger:    logger,
		demo:      devtools.NewManager(),
		sessionID: uuid.NewString(),
	}
	if err := a.init(o); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(o options) error {
	cfg := a.cfg
	loadOpts := course.LoadOptions{Seed: cfg.Seed}
	var err error
	if cfg.FixturePath != "" {
		a.fixtures, err = course.LoadFile(cfg.FixturePath, loadOpts)
	} else {
		a.fixtures, err = course.Load(loadOpts)
	}
	if err != nil {
		return err
	}

	a.style = cfg.UI.StyleVariant
	a.motion = cfg.UI.MotionLevel
	a.mouse = cfg.UI.MouseScope
	if !cfg.NoStore {
		store, err := state.NewSQLite(cfg.StatePath())
		if err != nil {
			return err
		}
		a.prefs = store
		if err := a.loadPrefs(); err != nil {
			return err
		}
	}
	a.style = firstNonEmpty(a.style, ui.StyleVariants[0])
	a.motion = firstNonEmpty(a.motion, ui.MotionLevels[0])
	a.mouse = firstNonEmpty(a.mouse, ui.MouseScopes[0])

	printOpts := []printer.Option{printer.WithOrigin(a.fixtures.Name() + " session " + a.sessionID)}
	if o.now != nil {
		printOpts = append(printOpts, printer.WithClock(o.now))
	}
	a.spool, err = printer.Open(cfg.PrintDir, printOpts...)
	if err != nil {
		return err
	}

	replies := a.fixtures.Replies()
	a.session, err = session.New(session.Options{
		Responder:   analyst.New(replies),
		Greeting:    replies.Greeting,
		Suggestions: a.fixtures.Suggestions(),
		ReplyDelay:  time.Duration(cfg.ReplyDelayMS) * time.Millisecond,
		Scheduler:   o.scheduler,
	})
	if err != nil {
		return err
	}

	a.view = o.view
	if a.view == nil {
		a.view = ui.New(ui.Options{
			Store:        a.fixtures,
			ASCIIOnly:    cfg.ASCIIOnly,
			Debug:        cfg.DebugLayout,
			StyleVariant: a.style,
			MotionLevel:  a.motion,
			MouseScope:   a.mouse,
			Logger:       a.logger.Logger,
			Now:          o.now,
		})
	}
	a.view.SetController(a)
	a.view.SetTheme(a.style)
	a.view.SetMotionLevel(a.motion)
	a.view.SetMouseScope(a.mouse)
	a.view.SetSessionLabel("session " + a.sessionID[:8])
	a.cancelSub = a.session.Subscribe(a.onSessionEvent)
	a.pushSnapshot()
	return nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", "session", a.sessionID, "course", a.fixtures.Name(), "seed", a.cfg.Seed, "store", !a.cfg.NoStore, "print_dir", a.spool.Dir())

	if a.cfg.Dev {
		if err := a.startDevHTTP(); err != nil {
			return err
		}
	}
	if a.cfg.DemoScenario != "" {
		if _, err := a.runDemoScenario(ctx, a.cfg.DemoScenario); err != nil {
			a.logger.Error("dev.demo.initial_failed", "demo", a.cfg.DemoScenario, "err", err)
		}
	} else {
		a.setDevState(devtools.DefaultScenario, "")
	}

	err := a.view.Run()
	a.logger.Info("app.stop", "session", a.sessionID, "err", err)
	return err
}

func (a *App) Close() {
	a.closeOnce.Do(a.close)
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.devServer != nil {
		_ = a.devServer.Shutdown(ctx)
	}
	if a.cancelSub != nil {
		a.cancelSub()
	}
	if a.session != nil {
		a.session.Close()
	}
	if a.spool != nil {
		_ = a.spool.Close()
	}
	if a.prefs != nil {
		_ = a.prefs.Close()
	}
	_ = a.logger.Close()
}

// Session exposes the view-state controller, e.g. for the dev hook.
func (a *App) Session() *session.Controller {
	return a.session
}

func (a *App) onSessionEvent(ev session.Event) {
	switch ev.Kind {
	case session.EventChat:
		a.logger.Info("chat.submit", "kind", analyst.Classify(ev.Message.Text), "pending", ev.Pending)
	case session.EventReply:
		a.logger.Info("chat.reply", "kind", ev.Message.Kind, "pending", ev.Pending)
	default:
		a.logger.Debug("session."+string(ev.Kind),
			"tab", ev.State.Tab,
			"hole", int(ev.State.Hole),
			"area", ev.State.Area,
			"layer", ev.State.Layer,
		)
	}
	a.pushSnapshot()
}

func (a *App) pushSnapshot() {
	a.view.SetSnapshot(a.session.Snapshot())
}

// report logs a rejected transition and surfaces it on the status line.
func (a *App) report(event string, err error, kv ...any) {
	if err == nil {
		return
	}
	a.logger.Warn(event+".rejected", append(kv, "err", err)...)
	a.view.FlashStatus(err.Error())
}

func (a *App) OnSelectTab(tab session.Tab) {
	a.report("session.tab", a.session.SetTab(tab), "tab", tab)
}

func (a *App) OnClickHole(h course.HoleNumber) {
	a.report("session.click", a.session.ClickHole(h), "hole", int(h))
}

func (a *App) OnSelectHole(h course.HoleNumber) {
	a.report("session.hole", a.session.SelectHole(h), "hole", int(h))
}

func (a *App) OnSelectArea(area course.Area) {
	a.report("session.area", a.session.SetArea(area), "area", area)
}

func (a *App) OnSelectLayer(layer course.Layer) {
	a.report("session.layer", a.session.SetLayer(layer), "layer", layer)
}

func (a *App) OnSubmitChat(text string) {
	_, err := a.session.SubmitChat(text)
	a.report("chat.submit", err)
}

func (a *App) OnSuggestion(i int) {
	_, err := a.session.Suggest(i)
	a.report("chat.suggest", err, "index", i)
}

// OnFollowAlert opens the hole-detail tab. The selection is left alone, so
// the link lands on whatever hole was last viewed.
func (a *App) OnFollowAlert() {
	a.report("session.follow_alert", a.session.SetTab(session.TabDetail))
}

func (a *App) OnPrint() {
	st := a.session.State()
	rec, err := a.spool.Print(printer.Page{
		Title: st.Tab.Title(),
		Body:  a.view.Capture(),
	})
	if err != nil {
		a.report("print", err)
		return
	}
	a.logger.Info("print.done", "path", rec.Path, "bytes", rec.Bytes, "job", rec.JobID)
	text := fmt.Sprintf("%s\n%s · %d×%d\n\n%s",
		st.Tab.Title(),
		humanize.Bytes(uint64(rec.Bytes)),
		rec.Width, rec.Height,
		rec.Path,
	)
	a.view.ShowPopup(ui.Popup{
		Title:    "Print",
		Text:     text,
		Left:     printPopupLeft,
		Top:      printPopupTop,
		Anchored: true,
	})
}

func (a *App) OnCycleTheme() {
	a.prefMu.Lock()
	a.style = ui.NextStyleVariant(a.style)
	next := a.style
	a.prefMu.Unlock()

	a.view.SetTheme(next)
	a.logger.Info("ui.theme", "variant", next)
	a.savePrefs()
}

func (a *App) OnCycleMotion() {
	a.prefMu.Lock()
	a.motion = ui.NextMotionLevel(a.motion)
	next := a.motion
	a.prefMu.Unlock()

	a.view.SetMotionLevel(next)
	a.view.FlashStatus("Motion: " + next)
	a.logger.Info("ui.motion", "level", next)
	a.savePrefs()
}

func (a *App) OnCycleMouse() {
	a.prefMu.Lock()
	a.mouse = ui.NextMouseScope(a.mouse)
	next := a.mouse
	a.prefMu.Unlock()

	a.view.SetMouseScope(next)
	a.view.FlashStatus("Mouse: " + next)
	a.logger.Info("ui.mouse", "scope", next)
	a.savePrefs()
}

// loadPrefs purges expired rows and fills every UI setting the flags and
// environment left empty from the store.
func (a *App) loadPrefs() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.prefs.EnsureSchema(ctx); err != nil {
		return err
	}
	if _, err := a.prefs.Purge(ctx, time.Now()); err != nil {
		a.logger.Warn("prefs.purge_failed", "err", err)
	}
	stored, err := a.prefs.LoadSettings(ctx)
	if err != nil {
		a.logger.Warn("prefs.load_failed", "err", err)
		return nil
	}
	if a.style == "" && slices.Contains(ui.StyleVariants, stored[state.PrefStyleVariant]) {
		a.style = stored[state.PrefStyleVariant]
	}
	if a.motion == "" && slices.Contains(ui.MotionLevels, stored[state.PrefMotionLevel]) {
		a.motion = stored[state.PrefMotionLevel]
	}
	if a.mouse == "" && slices.Contains(ui.MouseScopes, stored[state.PrefMouseScope]) {
		a.mouse = stored[state.PrefMouseScope]
	}
	return nil
}

func (a *App) savePrefs() {
	if a.prefs == nil {
		return
	}
	a.prefMu.Lock()
	values := map[string]string{
		state.PrefStyleVariant: a.style,
		state.PrefMotionLevel:  a.motion,
		state.PrefMouseScope:   a.mouse,
	}
	a.prefMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.prefs.SaveSettings(ctx, values); err != nil {
		a.logger.Warn("prefs.save_failed", "err", err)
	}
}

func (a *App) OnQuit() {
	a.view.Stop()
}

func (a *App) OnResize(cols, rows int) {
	a.logger.Debug("ui.resize", "cols", cols, "rows", rows, "layout", ui.DetermineLayoutMode(cols, rows))
}

func (a *App) applyDemoScenario(ctx context.Context, s devtools.Scenario) error {
	if err := a.demo.Apply(ctx, a.session, s); err != nil {
		return err
	}
	a.view.SetHelpOpen(s.HelpOpen)
	return nil
}

func (a *App) runDemoScenario(ctx context.Context, requested string) (string, error) {
	return a.runScenario(ctx, requested, a.demo.Resolve(requested))
}

func (a *App) runScenario(ctx context.Context, requested string, scenario devtools.Scenario) (string, error) {
	resolved := scenario.Name
	a.logger.Info("dev.demo.dispatch.begin", "requested", requested, "resolved", resolved)
	a.setDevPending(resolved, requested)

	a.demoMu.Lock()
	defer a.demoMu.Unlock()

	if err := a.applyDemoScenario(ctx, scenario); err != nil {
		a.logger.Error("dev.demo.dispatch.apply_failed", "requested", requested, "resolved", resolved, "err", err)
		a.setDevError(resolved, requested, err.Error())
		return resolved, err
	}
	a.logger.Info("dev.demo.dispatch.done", "requested", requested, "resolved", resolved)
	a.setDevState(resolved, requested)
	return resolved, nil
}

func (a *App) setDevState(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = true
	a.devState.Pending = false
	a.devState.Error = ""
	a.devState.RenderSeq++
}

func (a *App) setDevPending(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = false
	a.devState.Pending = true
	a.devState.Error = ""
	a.devState.RenderSeq++
}

func (a *App) setDevError(state, demo, errText string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = false
	a.devState.Pending = false
	a.devState.Error = errText
	a.devState.RenderSeq++
}

func (a *App) getDevState() map[string]any {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	return map[string]any{
		"ok":         true,
		"state":      a.devState.State,
		"demo":       a.devState.Demo,
		"render_seq": a.devState.RenderSeq,
		"rendered":   a.devState.Rendered,
		"pending":    a.devState.Pending,
		"error":      a.devState.Error,
	}
}

func (a *App) viewState() map[string]any {
	st := a.session.State()
	msgs := a.session.Messages()
	last := ""
	if n := len(msgs); n > 0 {
		last = analyst.Plain(msgs[n-1].Text)
	}
	return map[string]any{
		"ok":           true,
		"tab":          st.Tab,
		"hole":         int(st.Hole),
		"area":         st.Area,
		"layer":        st.Layer,
		"messages":     len(msgs),
		"pending":      a.session.Pending(),
		"last_message": last,
	}
}

func (a *App) devHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/__dev/ready", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.getDevState())
	})
	mux.HandleFunc("/__dev/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.viewState())
	})
	mux.HandleFunc("/__dev/demo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var req struct {
			Demo string `json:"demo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		req.Demo = strings.TrimSpace(req.Demo)
		if req.Demo == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "demo is required"})
			return
		}
		a.logger.Info("dev.demo.request", "demo", req.Demo)

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()
		resolved, err := a.runDemoScenario(ctx, req.Demo)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error(), "state": resolved})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "state": resolved, "requested": req.Demo})
	})
	mux.HandleFunc("/__dev/view", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var req devtools.ViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		scenario, err := req.Scenario()
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error()})
			return
		}
		a.logger.Info("dev.view.request", "tab", req.Tab, "hole", req.Hole, "area", req.Area, "layer", req.Layer)

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()
		if _, err := a.runScenario(ctx, devtools.CustomScenario, scenario); err != nil {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error()})
			return
		}
		_ = json.NewEncoder(w).Encode(a.viewState())
	})
	return mux
}

func (a *App) startDevHTTP() error {
	a.devServer = &http.Server{Addr: a.cfg.DevHTTP, Handler: a.devHandler()}
	go func() {
		if err := a.devServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("dev_http.listen_failed", "err", err, "addr", a.cfg.DevHTTP)
		}
	}()
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
