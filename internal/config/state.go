package config

import "slices"

// NetState is the execution-time predicate carrier used while filtering
// layer declarations. It is not retained after construction.
type NetState struct {
	Phase  string
	Stages []string
	Level  int
}

// HasStage reports whether the state carries the given stage label.
func (s *NetState) HasStage(stage string) bool {
	return slices.Contains(s.Stages, stage)
}

// Rule is a single inclusion/exclusion constraint evaluated against a
// NetState. Zero-valued fields are absent constraints.
type Rule struct {
	// Phase, when non-empty, must equal the state's phase.
	Phase string
	// MinLevel/MaxLevel, when set, bound the state's level inclusively.
	MinLevel *int
	MaxLevel *int
	// Stages must all be present in the state; NotStages must all be absent.
	Stages    []string
	NotStages []string
}

// Meets reports whether every constraint present on the rule holds for the
// given state.
func (r *Rule) Meets(state *NetState) bool {
	if r.Phase != "" && r.Phase != state.Phase {
		return false
	}
	if r.MinLevel != nil && state.Level < *r.MinLevel {
		return false
	}
	if r.MaxLevel != nil && state.Level > *r.MaxLevel {
		return false
	}
	for _, stage := range r.Stages {
		if !state.HasStage(stage) {
			return false
		}
	}
	for _, stage := range r.NotStages {
		if state.HasStage(stage) {
			return false
		}
	}
	return true
}

func (r *Rule) clone() *Rule {
	c := &Rule{
		Phase:     r.Phase,
		Stages:    append([]string(nil), r.Stages...),
		NotStages: append([]string(nil), r.NotStages...),
	}
	if r.MinLevel != nil {
		v := *r.MinLevel
		c.MinLevel = &v
	}
	if r.MaxLevel != nil {
		v := *r.MaxLevel
		c.MaxLevel = &v
	}
	return c
}

// IntPtr is a small helper for building rules with level bounds.
func IntPtr(v int) *int { return &v }
