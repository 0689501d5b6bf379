// Package analyst answers chat questions with canned course replies. Matching
// is plain substring containment over a fixed keyword table; the first rule
// that matches wins.
package analyst

import (
	"strings"

	"gdx/internal/course"
)

type Kind string

const (
	KindDroughtStress Kind = "drought_stress"
	KindDiseaseRisk   Kind = "disease_risk"
	KindOverview      Kind = "overview"
	KindFallback      Kind = "fallback"
)

type Reply struct {
	Kind Kind
	Text string
}

type rule struct {
	kind     Kind
	keywords []string
}

// Order is precedence.
var rules = []rule{
	{kind: KindDroughtStress, keywords: []string{"수분", "건조"}},
	{kind: KindDiseaseRisk, keywords: []string{"병", "라지패치"}},
	{kind: KindOverview, keywords: []string{"상태", "전체"}},
}

type Responder struct {
	replies course.Replies
}

func New(replies course.Replies) *Responder {
	return &Responder{replies: replies}
}

// Classify returns the reply kind for input without resolving its text.
func Classify(input string) Kind {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(input, kw) {
				return r.kind
			}
		}
	}
	return KindFallback
}

// Respond is total and deterministic: every input maps to exactly one reply.
func (r *Responder) Respond(input string) Reply {
	kind := Classify(input)
	return Reply{Kind: kind, Text: r.text(kind)}
}

func (r *Responder) text(kind Kind) string {
	switch kind {
	case KindDroughtStress:
		return r.replies.DroughtStress
	case KindDiseaseRisk:
		return r.replies.DiseaseRisk
	case KindOverview:
		return r.replies.Overview
	default:
		return r.replies.Fallback
	}
}

// Keywords lists the trigger words for kind, in match order.
func Keywords(kind Kind) []string {
	for _, r := range rules {
		if r.kind == kind {
			return append([]string(nil), r.keywords...)
		}
	}
	return nil
}
