package config

import "github.com/adrianpk/warden/internal/rules"

// Overlay is the add/remove/override delta one configuration source applies
// on top of the built-in rules. The zero value is a no-op.
type Overlay struct {
	Patterns PatternOverlay `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Paths    PathOverlay    `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// PatternOverlay edits the command rule list. Remove and Override are keyed
// by rule reason.
type PatternOverlay struct {
	Add      []rules.CommandRule     `json:"add,omitempty" yaml:"add,omitempty"`
	Remove   []string                `json:"remove,omitempty" yaml:"remove,omitempty"`
	Override map[string]rules.Action `json:"override,omitempty" yaml:"override,omitempty"`
}

// PathOverlay edits the path rule list. Remove and Override are keyed by
// rule path; an override to rules.LevelNone removes the rule.
type PathOverlay struct {
	Add      []rules.PathRule       `json:"add,omitempty" yaml:"add,omitempty"`
	Remove   []string               `json:"remove,omitempty" yaml:"remove,omitempty"`
	Override map[string]rules.Level `json:"override,omitempty" yaml:"override,omitempty"`
}

// IsEmpty reports whether the overlay changes nothing.
func (o Overlay) IsEmpty() bool {
	return len(o.Patterns.Add) == 0 && len(o.Patterns.Remove) == 0 && len(o.Patterns.Override) == 0 &&
		len(o.Paths.Add) == 0 && len(o.Paths.Remove) == 0 && len(o.Paths.Override) == 0
}

// Merge combines the global and project overlays. Add and remove lists are
// concatenated with global entries first; overrides are merged and the
// project value wins on conflict. Inputs are not modified.
func Merge(global, project Overlay) Overlay {
	return Overlay{
		Patterns: PatternOverlay{
			Add:      concat(global.Patterns.Add, project.Patterns.Add),
			Remove:   concat(global.Patterns.Remove, project.Patterns.Remove),
			Override: mergeMaps(global.Patterns.Override, project.Patterns.Override),
		},
		Paths: PathOverlay{
			Add:      concat(global.Paths.Add, project.Paths.Add),
			Remove:   concat(global.Paths.Remove, project.Paths.Remove),
			Override: mergeMaps(global.Paths.Override, project.Paths.Override),
		},
	}
}

// Apply produces the effective rule set: remove, then override, then add,
// independently for patterns and paths. Overrides only touch entries that
// survived removal. The inputs are never modified and the result is always
// freshly allocated.
func Apply(o Overlay, patterns []rules.CommandRule, paths []rules.PathRule) rules.Set {
	return rules.Set{
		Patterns: applyPatterns(o.Patterns, patterns),
		Paths:    applyPaths(o.Paths, paths),
	}
}

func applyPatterns(o PatternOverlay, base []rules.CommandRule) []rules.CommandRule {
	removed := toSet(o.Remove)
	out := make([]rules.CommandRule, 0, len(base)+len(o.Add))

	for _, r := range base {
		if removed[r.Reason] {
			continue
		}
		if action, ok := o.Override[r.Reason]; ok {
			r.Action = action
		}
		out = append(out, r)
	}

	return append(out, o.Add...)
}

func applyPaths(o PathOverlay, base []rules.PathRule) []rules.PathRule {
	removed := toSet(o.Remove)
	out := make([]rules.PathRule, 0, len(base)+len(o.Add))

	for _, r := range base {
		if removed[r.Path] {
			continue
		}
		if level, ok := o.Override[r.Path]; ok {
			if level == rules.LevelNone {
				continue
			}
			r.Level = level
		}
		out = append(out, r)
	}

	return append(out, o.Add...)
}

func concat[T any](a, b []T) []T {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func mergeMaps[V any](base, overlay map[string]V) map[string]V {
	if len(base)+len(overlay) == 0 {
		return nil
	}
	out := make(map[string]V, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

func toSet(items []string) map[string]bool {
	seen := make(map[string]bool, len(items))
	for _, s := range items {
		seen[s] = true
	}
	return seen
}
