package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"gdx/internal/course"
	"gdx/internal/session"
)

var StyleVariants = []string{"modern_arcade", "cozy_clean", "retro_terminal"}

// MotionLevels and MouseScopes list the accepted settings, default first.
var (
	MotionLevels = []string{"full", "reduced", "off"}
	MouseScopes  = []string{"scoped", "full", "off"}
)

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Muted        lipgloss.Style
	Info         lipgloss.Style
	NavActive    lipgloss.Style
	NavIdle      lipgloss.Style
	Cursor       lipgloss.Style
	Emphasis     lipgloss.Style
	UserMsg      lipgloss.Style
	AssistantMsg lipgloss.Style

	Stable   lipgloss.Style
	Warning  lipgloss.Style
	Critical lipgloss.Style

	TaskPending    lipgloss.Style
	TaskInProgress lipgloss.Style
	TaskDone       lipgloss.Style

	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	Wet     lipgloss.Style
	Dry     lipgloss.Style
	Hot     lipgloss.Style
	Traffic lipgloss.Style

	// Bar colours feed the progress model.
	BarFrom color.Color
	BarTo   color.Color
}

type palette struct {
	bg, panel, fg, border, accent, muted color.Color

	green, yellow, red, blue color.Color

	purple, orange, slate, emerald color.Color

	overlayBorder lipgloss.Border
}

func DefaultTheme() Theme {
	return ThemeForVariant("modern_arcade")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return buildTheme(palette{
			bg: lipgloss.Color("#1E2430"), panel: lipgloss.Color("#30394A"), fg: lipgloss.Color("#F4F6FA"),
			border: lipgloss.Color("#4A5972"), accent: lipgloss.Color("#F2B872"), muted: lipgloss.Color("#A3ACC2"),
			green: lipgloss.Color("#80C4A3"), yellow: lipgloss.Color("#F2D16B"), red: lipgloss.Color("#D17A86"),
			blue: lipgloss.Color("#86B6F6"), purple: lipgloss.Color("#B79CED"), orange: lipgloss.Color("#F2A272"),
			slate: lipgloss.Color("#8E99AE"), emerald: lipgloss.Color("#6CC8A0"),
			overlayBorder: lipgloss.RoundedBorder(),
		})
	case "retro_terminal":
		return buildTheme(palette{
			bg: lipgloss.Color("#07150A"), panel: lipgloss.Color("#12301A"), fg: lipgloss.Color("#C5F7C4"),
			border: lipgloss.Color("#1F5C2F"), accent: lipgloss.Color("#E5D47A"), muted: lipgloss.Color("#73A17A"),
			green: lipgloss.Color("#9CF5A2"), yellow: lipgloss.Color("#E5D47A"), red: lipgloss.Color("#FF6B6B"),
			blue: lipgloss.Color("#7FD8C8"), purple: lipgloss.Color("#C3A6F0"), orange: lipgloss.Color("#F0A860"),
			slate: lipgloss.Color("#5E8A64"), emerald: lipgloss.Color("#9CF5A2"),
			overlayBorder: lipgloss.DoubleBorder(),
		})
	default:
		return buildTheme(palette{
			bg: lipgloss.Color("#0F172A"), panel: lipgloss.Color("#1E293B"), fg: lipgloss.Color("#E2E8F0"),
			border: lipgloss.Color("#475569"), accent: lipgloss.Color("#3B82F6"), muted: lipgloss.Color("#94A3B8"),
			green: lipgloss.Color("#4ADE80"), yellow: lipgloss.Color("#FACC15"), red: lipgloss.Color("#EF4444"),
			blue: lipgloss.Color("#60A5FA"), purple: lipgloss.Color("#A855F7"), orange: lipgloss.Color("#F97316"),
			slate: lipgloss.Color("#64748B"), emerald: lipgloss.Color("#10B981"),
			overlayBorder: lipgloss.RoundedBorder(),
		})
	}
}

func buildTheme(p palette) Theme {
	fg := func(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Theme{
		Header:      lipgloss.NewStyle().Background(p.bg).Foreground(p.fg).Bold(true).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(p.panel).Foreground(p.fg).Padding(0, 1),
		PanelTitle:  fg(p.accent).Bold(true),
		PanelBorder: fg(p.border),
		PanelBody:   fg(p.fg),
		Overlay: lipgloss.NewStyle().
			BorderStyle(p.overlayBorder).
			BorderForeground(p.accent).
			Background(p.bg).
			Foreground(p.fg).
			Padding(1, 2),
		OverlayTitle: fg(p.accent).Bold(true),
		Accent:       fg(p.accent).Bold(true),
		Muted:        fg(p.muted),
		Info:         fg(p.blue),
		NavActive:    lipgloss.NewStyle().Background(p.accent).Foreground(p.bg).Bold(true),
		NavIdle:      fg(p.muted),
		Cursor:       lipgloss.NewStyle().Reverse(true).Bold(true),
		Emphasis:     fg(p.yellow).Bold(true),
		UserMsg:      fg(p.blue),
		AssistantMsg: fg(p.fg),

		Stable:   fg(p.green),
		Warning:  fg(p.yellow).Bold(true),
		Critical: fg(p.red).Bold(true),

		TaskPending:    fg(p.slate),
		TaskInProgress: fg(p.blue),
		TaskDone:       fg(p.emerald),

		PriorityHigh:   fg(p.red).Bold(true),
		PriorityMedium: fg(p.yellow),
		PriorityLow:    fg(p.slate),

		Wet:     fg(p.blue),
		Dry:     fg(p.orange),
		Hot:     fg(p.red),
		Traffic: fg(p.purple),

		BarFrom: p.accent,
		BarTo:   p.green,
	}
}

func (t Theme) ForStatus(s course.Status) lipgloss.Style {
	switch s {
	case course.StatusCritical:
		return t.Critical
	case course.StatusWarning:
		return t.Warning
	default:
		return t.Stable
	}
}

func (t Theme) ForTaskStatus(s course.TaskStatus) lipgloss.Style {
	switch s {
	case course.TaskDone:
		return t.TaskDone
	case course.TaskInProgress:
		return t.TaskInProgress
	default:
		return t.TaskPending
	}
}

func (t Theme) ForPriority(p course.Priority) lipgloss.Style {
	switch p {
	case course.PriorityHigh:
		return t.PriorityHigh
	case course.PriorityMedium:
		return t.PriorityMedium
	default:
		return t.PriorityLow
	}
}

func (t Theme) ForAlert(l course.AlertLevel) lipgloss.Style {
	switch l {
	case course.AlertCritical:
		return t.Critical
	case course.AlertWarning:
		return t.Warning
	default:
		return t.Info
	}
}

func (t Theme) ForTone(tone course.Tone) lipgloss.Style {
	switch tone {
	case course.ToneWet:
		return t.Wet
	case course.ToneDry:
		return t.Dry
	case course.ToneHot, course.ToneDanger, course.ToneCritical:
		return t.Hot
	case course.ToneTraffic:
		return t.Traffic
	case course.ToneInfo:
		return t.Info
	default:
		return t.Muted
	}
}

// ForRole colours chat lines by author.
func (t Theme) ForRole(r session.Role) lipgloss.Style {
	if r == session.RoleUser {
		return t.UserMsg
	}
	return t.AssistantMsg
}

// NextStyleVariant cycles through StyleVariants.
func NextStyleVariant(current string) string {
	return nextIn(StyleVariants, current)
}

func NextMotionLevel(current string) string {
	return nextIn(MotionLevels, current)
}

func NextMouseScope(current string) string {
	return nextIn(MouseScopes, current)
}

func nextIn(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
