package ui

import (
	"math"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// hitbox maps a screen rectangle to an action. Boxes are rebuilt on every
// render, so coordinates always match what is on screen.
type hitbox struct {
	x, y, w, h int
	fn         func(*Root)
}

func (b hitbox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

func (r *Root) hit(x, y, w, h int, fn func(*Root)) {
	if w <= 0 || h <= 0 || fn == nil {
		return
	}
	r.hits = append(r.hits, hitbox{x: x, y: y, w: w, h: h, fn: fn})
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h, v := "─", "│"
	tl, tr, bl, br := "╭", "╮", "╰", "╯"
	if r.ascii {
		h, v = "-", "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := r.theme.PanelBorder.Render(tl + strings.Repeat(h, innerW) + tr)
	if title != "" && innerW > 4 {
		t := trimForWidth(title, innerW-4)
		fill := innerW - 3 - ansi.StringWidth(t)
		top = r.theme.PanelBorder.Render(tl+h) +
			r.theme.PanelTitle.Render(" "+t+" ") +
			r.theme.PanelBorder.Render(strings.Repeat(h, max(0, fill))+tr)
	}

	out := make([]string, 0, height)
	out = append(out, top)
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(padCells(line, innerW))+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	if r.ascii {
		filled := int(math.Round(percent * float64(width)))
		return "[" + strings.Repeat("#", filled) + strings.Repeat(".", max(0, width-filled)) + "]"
	}
	m := r.meter
	m.SetWidth(max(8, width))
	return m.ViewAs(percent)
}

// fitBlock forces s to exactly width x height cells.
func fitBlock(s string, width, height int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	out := make([]string, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = padCells(line, width)
	}
	return strings.Join(out, "\n")
}

// padCells pads or cuts s to width terminal cells. Wide runes count double.
func padCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	w := ansi.StringWidth(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		w = ansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func rightAlign(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return padCells(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(s, width, "…")
}

func wrapLines(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// composeOverlay draws overlay on top of base at (startRow, startCol),
// keeping the styling of the base cells on either side.
func composeOverlay(base, overlay string, cols, rows, startRow, startCol int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < rows {
		baseLines = append(baseLines, "")
	}
	baseLines = baseLines[:rows]
	for i := range baseLines {
		baseLines[i] = padCells(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	ow := 1
	for _, line := range overlayLines {
		ow = max(ow, lipgloss.Width(line))
	}
	ow = min(ow, cols)
	startRow = max(0, startRow)
	startCol = max(0, min(startCol, cols-ow))

	for i, line := range overlayLines {
		row := startRow + i
		if row >= rows {
			break
		}
		left := padCells(ansi.Truncate(baseLines[row], startCol, ""), startCol)
		right := ansi.TruncateLeft(baseLines[row], startCol+ow, "")
		baseLines[row] = left + padCells(line, ow) + right
	}
	return strings.Join(baseLines, "\n")
}

var koreanMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "방금", DivBy: time.Second},
	{D: time.Hour, Format: "%d분 %s", DivBy: time.Minute},
	{D: 24 * time.Hour, Format: "%d시간 %s", DivBy: time.Hour},
	{D: math.MaxInt64, Format: "%d일 %s", DivBy: 24 * time.Hour},
}

// ageLabel renders an alert age the way the feed shows it, e.g. "10분 전".
func ageLabel(minutes int, now time.Time) string {
	then := now.Add(-time.Duration(minutes) * time.Minute)
	return humanize.CustomRelTime(then, now, "전", "후", koreanMagnitudes)
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
