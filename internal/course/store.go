package course

// Store holds the immutable course fixtures. Accessors hand out copies so
// callers can never mutate the tables.
type Store struct {
	name        string
	operator    string
	weather     Weather
	holes       []Hole
	health      []HealthAxis
	predictions []PredictionPoint
	tasks       []Task
	alerts      []Alert
	kpi         KPI
	replies     Replies
	suggestions []string
	forecast    Forecast
	manualMD    string
}

func (s *Store) Name() string     { return s.name }
func (s *Store) Operator() string { return s.operator }
func (s *Store) Weather() Weather { return s.weather }
func (s *Store) KPI() KPI         { return s.kpi }
func (s *Store) Replies() Replies { return s.replies }
func (s *Store) Forecast() Forecast {
	return s.forecast
}
func (s *Store) ManualMarkdown() string { return s.manualMD }

func (s *Store) Holes() []Hole {
	return append([]Hole(nil), s.holes...)
}

func (s *Store) Hole(n HoleNumber) (Hole, bool) {
	if !n.Valid() {
		return Hole{}, false
	}
	for _, h := range s.holes {
		if h.Number == n {
			return h, true
		}
	}
	return Hole{}, false
}

func (s *Store) Health() []HealthAxis {
	return append([]HealthAxis(nil), s.health...)
}

func (s *Store) Predictions() []PredictionPoint {
	out := make([]PredictionPoint, len(s.predictions))
	for i, p := range s.predictions {
		if p.Observed != nil {
			v := *p.Observed
			p.Observed = &v
		}
		out[i] = p
	}
	return out
}

func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

func (s *Store) Alerts() []Alert {
	return append([]Alert(nil), s.alerts...)
}

func (s *Store) Suggestions() []string {
	return append([]string(nil), s.suggestions...)
}

func (s *Store) CountByStatus(status Status) int {
	n := 0
	for _, h := range s.holes {
		if h.Status == status {
			n++
		}
	}
	return n
}

// TaskProgress is computed from the task table: Done over total, rounded down.
func (s *Store) TaskProgress() Progress {
	p := Progress{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Status == TaskDone {
			p.Done++
		}
	}
	if p.Total > 0 {
		p.Percent = p.Done * 100 / p.Total
	}
	return p
}

// ReportedProgress is the figure printed on the dashboard card. It comes from
// the KPI fixture and does not agree with TaskProgress.
func (s *Store) ReportedProgress() Progress {
	return Progress{Done: s.kpi.TaskDone, Total: s.kpi.TaskTotal, Percent: s.kpi.TaskPercent}
}

// FirstCritical returns the lowest-numbered critical hole, the target of the
// dashboard alert link.
func (s *Store) FirstCritical() (Hole, bool) {
	for _, h := range s.holes {
		if h.Status == StatusCritical {
			return h, true
		}
	}
	return Hole{}, false
}

// AverageScore is the mean of the health axes, the TQI-style composite.
func (s *Store) AverageScore() float64 {
	if len(s.health) == 0 {
		return 0
	}
	total := 0
	for _, a := range s.health {
		total += a.Score
	}
	return float64(total) / float64(len(s.health))
}
