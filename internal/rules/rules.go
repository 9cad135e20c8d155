// Package rules defines the command and path rule records the policy engine
// evaluates, and the built-in rule lists.
package rules

import "strings"

// Action is what happens when a command rule matches.
type Action string

const (
	ActionBlock Action = "block"
	ActionAsk   Action = "ask"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return a == ActionBlock || a == ActionAsk
}

// Level is the protection tier of a path rule.
type Level string

const (
	LevelZeroAccess Level = "zeroAccess"
	LevelReadOnly   Level = "readOnly"
	LevelNoDelete   Level = "noDelete"

	// LevelNone is only meaningful in an override, where it removes the rule.
	LevelNone Level = "none"
)

// Valid reports whether l is a tier a path rule can carry.
func (l Level) Valid() bool {
	switch l {
	case LevelZeroAccess, LevelReadOnly, LevelNoDelete:
		return true
	}
	return false
}

// Operation is the kind of access a violation or decision refers to.
type Operation string

const (
	OpAccess Operation = "access"
	OpWrite  Operation = "write"
	OpDelete Operation = "delete"
)

// CommandRule flags a shell command whose text matches Pattern.
// Reason is the identity used by overlay remove and override.
type CommandRule struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Reason  string `json:"reason" yaml:"reason"`
	Action  Action `json:"action" yaml:"action"`
}

// PathRule protects a literal path, a directory (trailing slash) or a
// filename glob (contains '*'). Path is the identity key.
type PathRule struct {
	Path  string `json:"path" yaml:"path"`
	Level Level  `json:"level" yaml:"level"`
}

// IsGlob reports whether the rule path is a filename glob.
func (r PathRule) IsGlob() bool {
	return IsGlobSpec(r.Path)
}

// IsDir reports whether the rule path is a directory spec.
func (r PathRule) IsDir() bool {
	return !IsGlobSpec(r.Path) && strings.HasSuffix(r.Path, "/")
}

// IsGlobSpec reports whether spec contains a '*' wildcard.
func IsGlobSpec(spec string) bool {
	return strings.Contains(spec, "*")
}

// Set is an effective, ordered rule set. Order is priority: the first
// matching rule governs.
type Set struct {
	Patterns []CommandRule `json:"patterns" yaml:"patterns"`
	Paths    []PathRule    `json:"paths" yaml:"paths"`
}

// Defaults returns the built-in rule set.
func Defaults() Set {
	return Set{
		Patterns: DefaultPatterns(),
		Paths:    DefaultPaths(),
	}
}
