package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/adrianpk/warden/internal/policy"
	"github.com/adrianpk/warden/internal/rules"
)

// Validate turns an untrusted decoded value (as produced by encoding/json or
// yaml.v3 into an any) into an Overlay. It never fails: offending fragments
// are dropped and reported as warnings naming the source, the field path and
// the offending value. Valid entries keep their original order.
func Validate(raw any, source string) (Overlay, []string) {
	v := &validator{source: source}
	var out Overlay

	top, ok := raw.(map[string]any)
	if !ok {
		v.warn("", "expected an object, got %s; configuration ignored", describe(raw))
		return out, v.warnings
	}

	for _, key := range sortedKeys(top) {
		switch key {
		case "$schema":
		case "patterns":
			out.Patterns = v.patterns(top[key])
		case "paths":
			out.Paths = v.paths(top[key])
		default:
			v.warn(key, "unknown key ignored")
		}
	}

	return out, v.warnings
}

type validator struct {
	source   string
	warnings []string
}

func (v *validator) warn(field, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if field == "" {
		v.warnings = append(v.warnings, v.source+": "+msg)
		return
	}
	v.warnings = append(v.warnings, v.source+": "+field+": "+msg)
}

func (v *validator) section(value any, field string) (map[string]any, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		v.warn(field, "expected an object, got %s", describe(value))
		return nil, false
	}
	for _, key := range sortedKeys(m) {
		switch key {
		case "add", "remove", "override":
		default:
			v.warn(field+"."+key, "unknown key ignored")
		}
	}
	return m, true
}

func (v *validator) patterns(value any) PatternOverlay {
	var out PatternOverlay
	m, ok := v.section(value, "patterns")
	if !ok {
		return out
	}

	if add, ok := m["add"]; ok {
		out.Add = v.patternAdds(add)
	}
	if remove, ok := m["remove"]; ok {
		out.Remove = v.stringList(remove, "patterns.remove")
	}
	if override, ok := m["override"]; ok {
		entries := v.overrideMap(override, "patterns.override")
		for _, key := range sortedKeys(entries) {
			action, ok := entries[key].(string)
			if !ok || !rules.Action(action).Valid() {
				v.warn("patterns.override."+key, "invalid action %s (want block or ask)", describe(entries[key]))
				continue
			}
			if out.Override == nil {
				out.Override = make(map[string]rules.Action)
			}
			out.Override[key] = rules.Action(action)
		}
	}

	return out
}

func (v *validator) patternAdds(value any) []rules.CommandRule {
	items, ok := value.([]any)
	if !ok {
		v.warn("patterns.add", "expected an array, got %s", describe(value))
		return nil
	}

	var out []rules.CommandRule
	seen := make(map[string]bool)
	for i, item := range items {
		field := "patterns.add[" + strconv.Itoa(i) + "]"

		entry, ok := item.(map[string]any)
		if !ok {
			v.warn(field, "expected an object, got %s", describe(item))
			continue
		}

		pattern, ok := entry["pattern"].(string)
		if !ok || pattern == "" {
			v.warn(field+".pattern", "expected a non-empty string, got %s", describe(entry["pattern"]))
			continue
		}
		if _, err := policy.CompilePattern(pattern); err != nil {
			v.warn(field+".pattern", "invalid regular expression %s: %v", strconv.Quote(pattern), err)
			continue
		}

		reason, ok := entry["reason"].(string)
		if !ok || reason == "" {
			v.warn(field+".reason", "expected a non-empty string, got %s", describe(entry["reason"]))
			continue
		}

		action, ok := entry["action"].(string)
		if !ok || !rules.Action(action).Valid() {
			v.warn(field+".action", "invalid action %s (want block or ask)", describe(entry["action"]))
			continue
		}

		if seen[reason] {
			v.warn(field+".reason", "duplicate reason %s dropped", strconv.Quote(reason))
			continue
		}
		seen[reason] = true

		out = append(out, rules.CommandRule{Pattern: pattern, Reason: reason, Action: rules.Action(action)})
	}

	return out
}

func (v *validator) paths(value any) PathOverlay {
	var out PathOverlay
	m, ok := v.section(value, "paths")
	if !ok {
		return out
	}

	if add, ok := m["add"]; ok {
		out.Add = v.pathAdds(add)
	}
	if remove, ok := m["remove"]; ok {
		out.Remove = v.stringList(remove, "paths.remove")
	}
	if override, ok := m["override"]; ok {
		entries := v.overrideMap(override, "paths.override")
		for _, key := range sortedKeys(entries) {
			level, ok := entries[key].(string)
			if !ok || !(rules.Level(level).Valid() || rules.Level(level) == rules.LevelNone) {
				v.warn("paths.override."+key, "invalid level %s (want zeroAccess, readOnly, noDelete or none)", describe(entries[key]))
				continue
			}
			if out.Override == nil {
				out.Override = make(map[string]rules.Level)
			}
			out.Override[key] = rules.Level(level)
		}
	}

	return out
}

func (v *validator) pathAdds(value any) []rules.PathRule {
	items, ok := value.([]any)
	if !ok {
		v.warn("paths.add", "expected an array, got %s", describe(value))
		return nil
	}

	var out []rules.PathRule
	seen := make(map[string]bool)
	for i, item := range items {
		field := "paths.add[" + strconv.Itoa(i) + "]"

		entry, ok := item.(map[string]any)
		if !ok {
			v.warn(field, "expected an object, got %s", describe(item))
			continue
		}

		path, ok := entry["path"].(string)
		if !ok || path == "" {
			v.warn(field+".path", "expected a non-empty string, got %s", describe(entry["path"]))
			continue
		}

		level, ok := entry["level"].(string)
		if !ok || !rules.Level(level).Valid() {
			v.warn(field+".level", "invalid level %s (want zeroAccess, readOnly or noDelete)", describe(entry["level"]))
			continue
		}

		if seen[path] {
			v.warn(field+".path", "duplicate path %s dropped", strconv.Quote(path))
			continue
		}
		seen[path] = true

		out = append(out, rules.PathRule{Path: path, Level: rules.Level(level)})
	}

	return out
}

func (v *validator) stringList(value any, field string) []string {
	items, ok := value.([]any)
	if !ok {
		v.warn(field, "expected an array of strings, got %s", describe(value))
		return nil
	}

	var out []string
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			v.warn(field+"["+strconv.Itoa(i)+"]", "expected a string, got %s", describe(item))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (v *validator) overrideMap(value any, field string) map[string]any {
	m, ok := value.(map[string]any)
	if !ok {
		v.warn(field, "expected an object, got %s", describe(value))
		return nil
	}
	return m
}

// describe renders an offending value for a warning.
func describe(value any) string {
	switch x := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
