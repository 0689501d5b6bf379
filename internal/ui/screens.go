package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"gdx/internal/analyst"
	"gdx/internal/course"
	"gdx/internal/session"
)

// span is the horizontal extent of a clickable label within a line.
type span struct {
	x, w int
}

func (r *Root) renderScreen() string {
	r.hits = r.hits[:0]
	r.layout = DetermineLayoutMode(r.cols, r.rows)
	if r.layout == LayoutTooSmall {
		return r.renderTooSmall()
	}

	header := r.renderHeader()
	status := r.renderStatus()

	var body string
	switch r.layout {
	case LayoutWide:
		h := r.rows - 2
		nav := r.renderSidebar(1, h)
		content := r.renderContent(sidebarWidth, 1, r.cols-sidebarWidth, h)
		body = lipgloss.JoinHorizontal(lipgloss.Top, nav, content)
	default:
		h := r.rows - 3
		body = r.renderTabBar(1) + "\n" + r.renderContent(0, 2, r.cols, h)
	}
	return header + "\n" + body + "\n" + status
}

func (r *Root) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small: need at least %dx%d (now %dx%d)", MinCols, MinRows, r.cols, r.rows)
	msg = trimForWidth(msg, max(1, r.cols))
	return lipgloss.Place(max(1, r.cols), max(1, r.rows), lipgloss.Center, lipgloss.Center, r.theme.Warning.Render(msg))
}

func (r *Root) renderHeader() string {
	w := r.store.Weather()
	left := fmt.Sprintf("%s │ %s", r.store.Name(), r.snap.State.Tab.Title())
	right := fmt.Sprintf("%.1f°C  습도 %d%%  │ %s │ %s", w.TemperatureC, w.HumidityPct, r.store.Operator(), r.now().Format("15:04"))
	if r.ascii {
		left = strings.ReplaceAll(left, "│", "|")
		right = strings.ReplaceAll(right, "│", "|")
	}
	inner := r.cols - 2
	gap := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
	line := left + strings.Repeat(" ", max(1, gap)) + right
	return r.theme.Header.Render(padCells(line, inner))
}

func (r *Root) renderStatus() string {
	inner := r.cols - 2
	text := r.flashText()
	if text == "" {
		r.help.SetWidth(inner)
		text = r.help.ShortHelpView(r.keymap.ShortHelp())
	}
	if r.sessionLabel != "" {
		label := r.theme.Muted.Render(r.sessionLabel)
		text = padCells(text, max(0, inner-ansi.StringWidth(label)-1)) + " " + label
	}
	if r.debug {
		text = padCells(text, max(0, inner-24)) + r.theme.Muted.Render(padCells(fmt.Sprintf(" %s %dx%d", r.layout, r.cols, r.rows), 24))
	}
	return r.theme.Status.Render(padCells(text, inner))
}

func (r *Root) renderSidebar(y0, height int) string {
	lines := []string{r.theme.Muted.Render(" NAVIGATION"), ""}
	for i, tab := range session.Tabs {
		label := fmt.Sprintf(" F%d %s", i+1, tab.NavLabel())
		style := r.theme.NavIdle
		if tab == r.snap.State.Tab {
			style = r.theme.NavActive
		}
		lines = append(lines, style.Render(padCells(label, sidebarWidth-1)))
		t := tab
		r.hit(0, y0+len(lines)-1, sidebarWidth-1, 1, func(m *Root) { m.selectTab(t) })
	}
	lines = append(lines, "", r.theme.Muted.Render(" 18 Holes · Par 72"))
	return fitBlock(strings.Join(lines, "\n"), sidebarWidth, height)
}

func (r *Root) renderTabBar(y int) string {
	labels := make([]string, len(session.Tabs))
	active := 0
	for i, tab := range session.Tabs {
		labels[i] = fmt.Sprintf("%d %s", i+1, tab.NavLabel())
		if tab == r.snap.State.Tab {
			active = i
		}
	}
	line, spans := r.buttons(labels, active)
	for i, sp := range spans {
		t := session.Tabs[i]
		r.hit(sp.x, y, sp.w, 1, func(m *Root) { m.selectTab(t) })
	}
	return padCells(line, r.cols)
}

// buttons renders a row of bracketed labels, highlighting active.
func (r *Root) buttons(labels []string, active int) (string, []span) {
	var b strings.Builder
	spans := make([]span, 0, len(labels))
	x := 0
	for i, label := range labels {
		if i > 0 {
			b.WriteString(" ")
			x++
		}
		text := "[" + label + "]"
		style := r.theme.NavIdle
		if i == active {
			style = r.theme.NavActive
		}
		b.WriteString(style.Render(text))
		w := ansi.StringWidth(text)
		spans = append(spans, span{x: x, w: w})
		x += w
	}
	return b.String(), spans
}

func (r *Root) renderContent(x0, y0, w, h int) string {
	var out string
	switch r.snap.State.Tab {
	case session.TabCourse:
		out = r.renderCourse(x0, y0, w, h)
	case session.TabDetail:
		out = r.renderDetail(x0, y0, w, h)
	case session.TabPrediction:
		out = r.renderPrediction(w, h)
	case session.TabTasks:
		out = r.renderTasks(w, h)
	default:
		out = r.renderDashboard(x0, y0, w, h)
	}
	return fitBlock(out, w, h)
}

const kpiHeight = 5

func (r *Root) renderDashboard(x0, y0, w, h int) string {
	kpi := r.store.KPI()
	cw := w / 4
	last := w - 3*cw

	tqi := r.drawPanel("TQI 코스 품질", []string{
		fmt.Sprintf("%.1f / 100  %s", kpi.TQI, r.theme.Stable.Render(kpi.TQIStatus)),
		r.bar(kpi.TQI/100, cw-4),
	}, cw, kpiHeight)

	speed := r.drawPanel("Green Speed", []string{
		fmt.Sprintf("%.1fm  %s", kpi.GreenSpeedM, r.theme.Info.Render(kpi.GreenSpeedNote)),
		r.theme.Muted.Render("목표 " + kpi.GreenTarget),
	}, cw, kpiHeight)

	alertLines := []string{
		r.theme.Critical.Render(fmt.Sprintf("%d건", r.store.CountByStatus(course.StatusCritical))) +
			r.theme.Muted.Render(fmt.Sprintf(" / %d홀", course.HoleCount)),
	}
	if hole, ok := r.store.FirstCritical(); ok {
		link := fmt.Sprintf("▶ Hole %d 상세 분석", hole.Number)
		if r.ascii {
			link = fmt.Sprintf("> Hole %d detail", hole.Number)
		}
		alertLines = append(alertLines, r.theme.Accent.Render(trimForWidth(link, cw-2)))
		r.hit(x0+2*cw+1, y0+2, min(cw-2, ansi.StringWidth(link)), 1, func(m *Root) {
			m.dispatchController(func(c Controller) { c.OnFollowAlert() })
		})
	}
	alerts := r.drawPanel("Critical Alerts", alertLines, cw, kpiHeight)

	reported := r.store.ReportedProgress()
	work := r.drawPanel("작업 진행률", []string{
		fmt.Sprintf("%d%% (%d/%d)", reported.Percent, reported.Done, reported.Total),
		r.bar(float64(reported.Percent)/100, last-4),
	}, last, kpiHeight)

	cards := lipgloss.JoinHorizontal(lipgloss.Top, tqi, speed, alerts, work)

	lowerH := max(3, h-kpiHeight)
	leftW := w / 2
	rightW := w - leftW

	axes := r.store.Health()
	hexLines := make([]string, 0, len(axes)+2)
	bw := max(8, leftW-2-15-5)
	for _, a := range axes {
		pct := 0.0
		if a.Max > 0 {
			pct = float64(a.Score) / float64(a.Max)
		}
		hexLines = append(hexLines, padCells(a.Label, 14)+" "+r.bar(pct, bw)+fmt.Sprintf(" %3d", a.Score))
	}
	hexLines = append(hexLines, "", r.theme.Accent.Render(fmt.Sprintf("평균 %.1f", r.store.AverageScore())))
	hex := r.drawPanel("GDX Hexagon Index", hexLines, leftW, lowerH)

	now := r.now()
	feed := make([]string, 0)
	for _, a := range r.store.Alerts() {
		head := r.theme.ForAlert(a.Level).Render("["+string(a.Level)+"]") + " " + r.theme.Muted.Render(ageLabel(a.AgeMinutes, now))
		feed = append(feed, head)
		feed = append(feed, wrapLines(a.Text, rightW-4)...)
		feed = append(feed, "")
	}
	alertFeed := r.drawPanel("실시간 알림", feed, rightW, lowerH)

	return cards + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, hex, alertFeed)
}

const (
	markerCell = 10
	markerW    = 4
	mapRows    = (course.HoleCount + mapColumns - 1) / mapColumns
)

// markerPos returns the marker's line and column inside the map panel body.
// Row 0 (holes 1-5) sits at the bottom; odd rows are shifted right.
func markerPos(h course.HoleNumber, cell int) (line, col int) {
	idx := int(h) - course.FirstHole
	row := idx / mapColumns
	visual := mapRows - 1 - row
	col = (idx % mapColumns) * cell
	if row%2 == 1 {
		col += cell / 2
	}
	return 2 + visual*3, col
}

func (r *Root) renderCourse(x0, y0, w, h int) string {
	mapW := min(w/2+8, mapColumns*markerCell+markerCell/2+markerW+2)
	chatW := w - mapW

	innerW := mapW - 2
	cell := mapCell(innerW)
	lines := make([]string, 2+mapRows*3+4)
	lines[0] = r.theme.Muted.Render("코스 맵 (Enter: 상세 분석)")
	rows := make([][]string, len(lines))

	for _, hole := range r.store.Holes() {
		line, col := markerPos(hole.Number, cell)
		style := r.theme.ForStatus(hole.Status)
		marker := fmt.Sprintf("(%2d)", int(hole.Number))
		if hole.Number == r.cursor && r.focus == focusMap {
			marker = r.theme.Cursor.Render(style.Render(marker))
		} else {
			marker = style.Render(marker)
		}
		rows[line] = placeAt(rows[line], col, marker)
		if tag := hole.Tag(); tag != "" {
			rows[line+1] = placeAt(rows[line+1], col, style.Render(trimForWidth(tag, cell-1)))
		}
		n := hole.Number
		r.hit(x0+1+col, y0+1+line, markerW, 1, func(m *Root) {
			m.cursor = n
			m.dispatchController(func(c Controller) { c.OnClickHole(n) })
		})
	}
	for i, parts := range rows {
		if parts != nil {
			lines[i] = strings.Join(parts, "")
		}
	}

	legendRow := 2 + mapRows*3
	lines[legendRow] = r.theme.Stable.Render("● Stable") + "  " + r.theme.Warning.Render("● Warning") + "  " + r.theme.Critical.Render("● Critical")
	if r.ascii {
		lines[legendRow] = r.theme.Stable.Render("o Stable") + "  " + r.theme.Warning.Render("o Warning") + "  " + r.theme.Critical.Render("o Critical")
	}
	if hole, ok := r.store.Hole(r.cursor); ok {
		lines[legendRow+2] = trimForWidth(fmt.Sprintf("Hole %d · Par %d · NDVI %.2f · 수분 %.1f%%", hole.Number, hole.Par, hole.NDVI, hole.Moisture), innerW)
	}
	courseMap := r.drawPanel("Course Overview", lines, mapW, h)

	chat := r.renderChat(x0+mapW, y0, chatW, h)
	return lipgloss.JoinHorizontal(lipgloss.Top, courseMap, chat)
}

// mapCell is the marker spacing that fits five markers plus the row shift.
func mapCell(innerW int) int {
	return max(markerW+1, min(markerCell, (innerW-markerW)*2/(2*mapColumns-1)))
}

// placeAt pads parts with spaces so the next write lands on column col.
func placeAt(parts []string, col int, s string) []string {
	used := 0
	for _, p := range parts {
		used += ansi.StringWidth(p)
	}
	if col > used {
		parts = append(parts, strings.Repeat(" ", col-used))
	}
	return append(parts, s)
}

func (r *Root) renderChat(x0, y0, w, h int) string {
	innerW := w - 2
	innerH := h - 2
	logH := max(1, innerH-4)

	var log []string
	for _, msg := range r.snap.Messages {
		log = append(log, r.renderMessage(msg, innerW)...)
	}
	if r.snap.Pending > 0 {
		log = append(log, r.theme.Muted.Render(r.replySpin.View()+" AI 분석 중..."))
	}
	end := max(0, len(log)-r.chatScroll)
	start := max(0, end-logH)
	visible := append([]string(nil), log[start:end]...)
	for len(visible) < logH {
		visible = append(visible, "")
	}

	sep := strings.Repeat("─", innerW)
	if r.ascii {
		sep = strings.Repeat("-", innerW)
	}
	suggestions := r.store.Suggestions()
	labels := make([]string, len(suggestions))
	for i, s := range suggestions {
		labels[i] = fmt.Sprintf("F%d %s", i+6, s)
	}
	btnLine, spans := r.buttons(labels, -1)
	for i, sp := range spans {
		idx := i
		r.hit(x0+1+sp.x, y0+1+logH+1, sp.w, 1, func(m *Root) {
			m.dispatchController(func(c Controller) { c.OnSuggestion(idx) })
		})
	}

	prompt := "> " + string(r.chatInput)
	if r.focus == focusChat {
		prompt += r.theme.Cursor.Render(" ")
	} else if len(r.chatInput) == 0 {
		prompt = r.theme.Muted.Render("> 질문을 입력하세요 (Tab)")
	}
	// Keep the tail of long input visible.
	if ansi.StringWidth(prompt) > innerW {
		prompt = ansi.TruncateLeft(prompt, ansi.StringWidth(prompt)-innerW, "")
	}
	r.hit(x0+1, y0+1+logH+3, innerW, 1, func(m *Root) { m.focus = focusChat })

	lines := append(visible, r.theme.PanelBorder.Render(sep), btnLine, r.theme.PanelBorder.Render(sep), prompt)
	title := "GDX AI Analyst"
	if r.chatScroll > 0 {
		title = fmt.Sprintf("GDX AI Analyst (+%d)", r.chatScroll)
	}
	return r.drawPanel(title, lines, w, h)
}

func (r *Root) renderMessage(msg session.ChatMessage, width int) []string {
	style := r.theme.ForRole(msg.Role)
	prefix := "AI  "
	if msg.Role == session.RoleUser {
		prefix = "나  "
	}
	var b strings.Builder
	for _, seg := range analyst.Segments(msg.Text) {
		if seg.Emphasis {
			b.WriteString(r.theme.Emphasis.Render(seg.Text))
		} else {
			b.WriteString(style.Render(seg.Text))
		}
	}
	body := wrapLines(b.String(), max(1, width-ansi.StringWidth(prefix)))
	out := make([]string, 0, len(body)+1)
	for i, line := range body {
		p := strings.Repeat(" ", ansi.StringWidth(prefix))
		if i == 0 {
			p = r.theme.Muted.Render(prefix)
		}
		out = append(out, p+line)
	}
	return append(out, "")
}

func (r *Root) renderDetail(x0, y0, w, h int) string {
	st := r.snap.State
	rep := r.store.DetailReport(st.Hole, st.Area, st.Layer)

	title := r.theme.Accent.Render(rep.Title)
	if rep.Badge != "" {
		title += "  " + r.theme.ForTone(rep.BadgeTone).Render("["+rep.Badge+"]")
	}

	areaLabels := make([]string, len(course.Areas))
	activeArea := 0
	for i, a := range course.Areas {
		areaLabels[i] = a.Label()
		if a == rep.Area {
			activeArea = i
		}
	}
	areaPrefix := r.theme.Muted.Render("구역   ")
	areaLine, areaSpans := r.buttons(areaLabels, activeArea)
	for i, sp := range areaSpans {
		a := course.Areas[i]
		r.hit(x0+ansi.StringWidth(areaPrefix)+sp.x, y0+1, sp.w, 1, func(m *Root) {
			m.dispatchController(func(c Controller) { c.OnSelectArea(a) })
		})
	}

	layerLabels := make([]string, len(course.Layers))
	activeLayer := 0
	for i, l := range course.Layers {
		layerLabels[i] = l.Label()
		if l == rep.Layer {
			activeLayer = i
		}
	}
	layerPrefix := r.theme.Muted.Render("레이어 ")
	layerLine, layerSpans := r.buttons(layerLabels, activeLayer)
	for i, sp := range layerSpans {
		l := course.Layers[i]
		r.hit(x0+ansi.StringWidth(layerPrefix)+sp.x, y0+2, sp.w, 1, func(m *Root) {
			m.dispatchController(func(c Controller) { c.OnSelectLayer(l) })
		})
	}

	hole := rep.Hole
	info := r.theme.Muted.Render(fmt.Sprintf("Par %d · NDVI %.2f · 수분 %.1f%% · ", hole.Par, hole.NDVI, hole.Moisture)) +
		r.theme.ForStatus(hole.Status).Render(string(hole.Status))
	if hole.Issue != "" && hole.Issue != "-" {
		info += r.theme.Muted.Render(" · " + hole.Issue)
	}

	head := []string{
		title,
		areaPrefix + areaLine,
		layerPrefix + layerLine,
		info,
	}

	bodyH := max(3, h-len(head))
	visualW := w * 3 / 5
	analysisW := w - visualW

	visual := []string{r.theme.Accent.Render(rep.LegendTitle)}
	if len(rep.Legend) > 0 {
		parts := make([]string, 0, len(rep.Legend))
		for _, e := range rep.Legend {
			parts = append(parts, r.theme.ForTone(e.Tone).Render("■ "+e.Label))
		}
		visual = append(visual, strings.Join(parts, "  "))
	}
	visual = append(visual, "")
	visual = append(visual, r.areaShape(rep.Area, rep.Layer, visualW-2)...)
	visual = append(visual, "")
	for _, a := range rep.Annotations {
		visual = append(visual, r.theme.ForTone(a.Tone).Render("● "+a.Label))
	}
	left := r.drawPanel("Visual", visual, visualW, bodyH)

	dry := r.theme.Stable
	if rep.Dry {
		dry = r.theme.Dry
	}
	bw := max(8, analysisW-4)
	analysis := []string{
		"토양 수분 (VWC)",
		dry.Render(rep.VWC),
		r.bar(float64(rep.VWCPercent)/100, bw),
		"",
		"염도 (EC)",
		rep.Salinity,
		r.bar(float64(rep.SalinityPct)/100, bw),
		"",
	}
	for _, d := range rep.Diagnoses {
		analysis = append(analysis, r.theme.Info.Render(d.Source))
		analysis = append(analysis, wrapLines(d.Text, analysisW-4)...)
		analysis = append(analysis, "")
	}
	right := r.drawPanel("AI 정밀 진단", analysis, analysisW, bodyH)

	return strings.Join(head, "\n") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

var shapeRows = map[course.Area][]int{
	course.AreaGreen:   {10, 18, 24, 26, 24, 18, 10},
	course.AreaFairway: {8, 12, 16, 18, 18, 18, 16, 14, 12, 10},
	course.AreaTee:     {20, 20, 20, 20},
}

func (r *Root) areaShape(area course.Area, layer course.Layer, width int) []string {
	fill := map[course.Layer]string{
		course.LayerSatellite:   "░",
		course.LayerMoisture:    "≈",
		course.LayerPerformance: "·",
	}[layer]
	if r.ascii {
		fill = map[course.Layer]string{
			course.LayerSatellite:   ".",
			course.LayerMoisture:    "~",
			course.LayerPerformance: ":",
		}[layer]
	}
	style := r.theme.Stable
	switch layer {
	case course.LayerMoisture:
		style = r.theme.Wet
	case course.LayerPerformance:
		style = r.theme.Traffic
	}
	rows := shapeRows[area]
	out := make([]string, 0, len(rows))
	for _, n := range rows {
		n = min(n, width)
		pad := max(0, (width-n)/2)
		out = append(out, strings.Repeat(" ", pad)+style.Render(strings.Repeat(fill, n)))
	}
	return out
}

func (r *Root) renderPrediction(w, h int) string {
	fc := r.store.Forecast()
	points := r.store.Predictions()

	tableH := len(points) + 6
	bw := max(8, w-2-34)
	lines := []string{
		r.theme.Muted.Render(trimForWidth(fc.Target, w-4)),
		"",
		r.theme.Muted.Render(padCells("일자", 8) + padCells("관측", 7) + padCells("예측", 7) + "확률"),
	}
	for _, p := range points {
		observed := "-"
		if p.Observed != nil {
			observed = fmt.Sprintf("%.0f%%", *p.Observed)
		}
		style := r.theme.Stable
		mark := ""
		if p.OverThreshold() {
			style = r.theme.Critical
			mark = " ▲"
			if r.ascii {
				mark = " !"
			}
		}
		day := padCells(p.Day, 8)
		if p.Future() {
			day = r.theme.Info.Render(day)
		}
		lines = append(lines, day+padCells(observed, 7)+style.Render(padCells(fmt.Sprintf("%.0f%%", p.Predicted), 7))+r.bar(p.Predicted/100, bw)+style.Render(mark))
	}
	if len(points) > 0 {
		lines = append(lines, r.theme.Muted.Render(fmt.Sprintf("임계치 %.0f%% 초과 시 ▲", points[0].Threshold)))
	}
	table := r.drawPanel(fc.Title, lines, w, tableH)

	analysis := r.theme.Accent.Render("AI 분석: ") + fc.Analysis
	analysisLines := wrapLines(analysis, w)

	manualH := max(3, h-tableH-len(analysisLines))
	manual := r.drawPanel("방제 매뉴얼", r.manualLines(w-2), w, manualH)
	return table + "\n" + strings.Join(analysisLines, "\n") + "\n" + manual
}

func (r *Root) manualLines(width int) []string {
	if r.manual == "" || r.manualW != width {
		r.manualW = width
		r.manual = r.store.ManualMarkdown()
		if r.markdown != nil && !r.ascii {
			if out, err := r.markdown.Render(r.store.ManualMarkdown()); err == nil {
				r.manual = out
			} else {
				r.logger.Warn("ui.markdown_render_failed", "err", err)
			}
		}
	}
	return strings.Split(strings.Trim(r.manual, "\n"), "\n")
}

func (r *Root) renderTasks(w, h int) string {
	cols := []int{7, 11, 15, 0, 8, 8, 12}
	fixed := 0
	for _, c := range cols {
		fixed += c
	}
	cols[3] = max(10, w-2-fixed)

	row := func(cells ...string) string {
		var b strings.Builder
		for i, c := range cells {
			b.WriteString(padCells(c, cols[i]))
		}
		return b.String()
	}

	lines := []string{r.theme.Muted.Render(row("ID", "Type", "Area", "Description", "담당", "우선", "Status"))}
	for _, t := range r.store.Tasks() {
		lines = append(lines, row(t.ID, t.Type, t.Area, t.Description, t.Assignee)+
			r.theme.ForPriority(t.Priority).Render(padCells(string(t.Priority), cols[5]))+
			r.theme.ForTaskStatus(t.Status).Render(padCells(string(t.Status), cols[6])))
	}

	computed := r.store.TaskProgress()
	reported := r.store.ReportedProgress()
	lines = append(lines,
		"",
		fmt.Sprintf("완료 %d/%d (%d%%) ", computed.Done, computed.Total, computed.Percent)+r.bar(float64(computed.Percent)/100, max(8, w/3)),
		r.theme.Muted.Render(fmt.Sprintf("대시보드 보고치 %d%% (%d/%d)", reported.Percent, reported.Done, reported.Total)),
	)
	return r.drawPanel("Work Orders", lines, w, min(h, len(lines)+2))
}
