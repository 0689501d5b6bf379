package course

import "fmt"

// Tone classifies an annotation or legend swatch for colouring.
type Tone string

const (
	ToneInfo     Tone = "info"
	ToneWet      Tone = "wet"
	ToneDry      Tone = "dry"
	ToneHot      Tone = "hot"
	ToneDanger   Tone = "danger"
	ToneTraffic  Tone = "traffic"
	ToneNeutral  Tone = "neutral"
	ToneCritical Tone = "critical"
)

type LegendEntry struct {
	Label string
	Tone  Tone
}

// Annotation is a marker drawn over the hole map for the active layer.
type Annotation struct {
	Label string
	Tone  Tone
}

type Diagnosis struct {
	Source string
	Text   string
}

// Report is the hole-detail projection for one (hole, area, layer) triple.
type Report struct {
	Hole        Hole
	Area        Area
	Layer       Layer
	Title       string
	Badge       string
	BadgeTone   Tone
	VWC         string
	VWCPercent  int
	Dry         bool
	Salinity    string
	SalinityDSm float64
	SalinityPct int
	LegendTitle string
	Legend      []LegendEntry
	Annotations []Annotation
	Diagnoses   []Diagnosis
}

const (
	criticalHole HoleNumber = 4
	droughtHole  HoleNumber = 7
	salinityDSm             = 0.8
	salinityPct             = 15
)

// DetailReport projects the fixture data for the detail screen. It does not
// fail: an unknown hole yields a zero Hole and defaults for everything else.
func (s *Store) DetailReport(n HoleNumber, area Area, layer Layer) Report {
	if !area.Valid() {
		area = AreaGreen
	}
	if !layer.Valid() {
		layer = LayerSatellite
	}
	h, _ := s.Hole(n)
	r := Report{
		Hole:        h,
		Area:        area,
		Layer:       layer,
		Title:       fmt.Sprintf("Hole %d %s", int(n), area.Label()),
		Salinity:    fmt.Sprintf("%.1f dS/m", salinityDSm),
		SalinityDSm: salinityDSm,
		SalinityPct: salinityPct,
	}

	switch {
	case n == criticalHole && area == AreaGreen:
		r.Badge, r.BadgeTone = "Critical Alert", ToneCritical
	case n == droughtHole && area == AreaFairway:
		r.Badge, r.BadgeTone = "Drought Warning", ToneDry
	}

	if n == droughtHole && area == AreaFairway {
		r.VWC, r.VWCPercent, r.Dry = "12% (Dry)", 12, true
	} else {
		r.VWC, r.VWCPercent = "24% (Optimal)", 24
	}

	r.LegendTitle, r.Legend = legend(area, layer)
	r.Annotations = annotations(n, area, layer)

	if area == AreaGreen {
		r.Diagnoses = append(r.Diagnoses, Diagnosis{
			Source: "CatSat",
			Text:   "라지패치 발병 확률이 높습니다. 4번 홀 그린 우측 상단 핫스팟 집중 관찰 필요.",
		})
	}
	if n == droughtHole && area == AreaFairway {
		r.Diagnoses = append(r.Diagnoses, Diagnosis{
			Source: "POGO",
			Text:   "중앙 페어웨이 수분 스트레스 감지. 스팟 관수 5분 추천.",
		})
	}
	return r
}

func legend(area Area, layer Layer) (string, []LegendEntry) {
	switch layer {
	case LayerMoisture:
		return "수분 히트맵 (Co-Kriging)", []LegendEntry{
			{Label: "과습 (>40%)", Tone: ToneWet},
			{Label: "건조 (<15%)", Tone: ToneDry},
		}
	case LayerPerformance:
		if area == AreaGreen {
			return "Deacon™ 경기력", []LegendEntry{{Label: "핀 설치 금지 (Red Zone)", Tone: ToneDanger}}
		}
		return "Deacon™ 경기력", []LegendEntry{{Label: "고답압 지역 (Traffic)", Tone: ToneTraffic}}
	default:
		return "CatSat™ 초해상화", nil
	}
}

func annotations(n HoleNumber, area Area, layer Layer) []Annotation {
	var out []Annotation
	switch area {
	case AreaGreen:
		switch layer {
		case LayerMoisture:
			out = append(out, Annotation{Label: "Center: Wet zone", Tone: ToneWet})
			if n == criticalHole {
				out = append(out, Annotation{Label: "Upper right: Heat hotspot", Tone: ToneHot})
			}
		case LayerSatellite:
			if n == criticalHole {
				out = append(out, Annotation{Label: "LST Hotspot", Tone: ToneHot})
			}
		case LayerPerformance:
			out = append(out,
				Annotation{Label: "NO PIN", Tone: ToneDanger},
				Annotation{Label: "Pin position", Tone: ToneNeutral},
			)
		}
	case AreaFairway:
		switch layer {
		case LayerMoisture:
			if n == droughtHole {
				out = append(out, Annotation{Label: "Dry patch (VWC 12%)", Tone: ToneDry})
			} else {
				out = append(out, Annotation{Label: "Center: Wet zone", Tone: ToneWet})
			}
		case LayerPerformance:
			out = append(out, Annotation{Label: "High Traffic", Tone: ToneTraffic})
		}
	case AreaTee:
		out = append(out, Annotation{Label: "Tee markers", Tone: ToneNeutral})
		switch layer {
		case LayerPerformance:
			out = append(out, Annotation{Label: "Traffic zone", Tone: ToneTraffic})
		case LayerSatellite:
			out = append(out, Annotation{Label: "Divot Density: Low", Tone: ToneInfo})
		}
	}
	return out
}
