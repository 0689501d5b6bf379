package ui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Dashboard  key.Binding
	Course     key.Binding
	Detail     key.Binding
	Prediction key.Binding
	Tasks      key.Binding
	Focus      key.Binding
	Move       key.Binding
	Activate   key.Binding
	Suggest    key.Binding
	Areas      key.Binding
	Layers     key.Binding
	StepHole   key.Binding
	Print      key.Binding
	Theme      key.Binding
	Motion     key.Binding
	Mouse      key.Binding
	Help       key.Binding
	Close      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dashboard:  key.NewBinding(key.WithKeys("f1", "1"), key.WithHelp("F1/1", "Dashboard")),
		Course:     key.NewBinding(key.WithKeys("f2", "2"), key.WithHelp("F2/2", "Course")),
		Detail:     key.NewBinding(key.WithKeys("f3", "3"), key.WithHelp("F3/3", "Hole detail")),
		Prediction: key.NewBinding(key.WithKeys("f4", "4"), key.WithHelp("F4/4", "Prediction")),
		Tasks:      key.NewBinding(key.WithKeys("f5", "5"), key.WithHelp("F5/5", "Tasks")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Map/chat focus")),
		Move:       key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("Arrows", "Move")),
		Activate:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Open / send")),
		Suggest:    key.NewBinding(key.WithKeys("f6", "f7", "f8"), key.WithHelp("F6-F8", "Suggested prompt")),
		Areas:      key.NewBinding(key.WithKeys("g", "f", "t"), key.WithHelp("g/f/t", "Green/Fairway/Tee")),
		Layers:     key.NewBinding(key.WithKeys("s", "m", "p"), key.WithHelp("s/m/p", "Satellite/Moisture/Performance")),
		StepHole:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "Prev/next hole")),
		Print:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("Ctrl+P", "Print")),
		Theme:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("Ctrl+T", "Theme")),
		Motion:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("Ctrl+O", "Motion level")),
		Mouse:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("Ctrl+E", "Mouse scope")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Close")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("Ctrl+Q", "Quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Course, k.Detail, k.Prediction, k.Tasks, k.Print, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Course, k.Detail, k.Prediction, k.Tasks},
		{k.Focus, k.Move, k.Activate, k.Suggest},
		{k.Areas, k.Layers, k.StepHole},
		{k.Print, k.Theme, k.Motion, k.Mouse},
		{k.Help, k.Close, k.Quit},
	}
}
