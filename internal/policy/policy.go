// Package policy decides whether a shell command or a file operation is
// allowed, blocked, or needs confirmation, against an ordered rule set.
package policy

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/adrianpk/warden/internal/parser"
	"github.com/adrianpk/warden/internal/rules"
)

// Outcome is the verdict of an evaluation.
type Outcome string

const (
	OutcomeAllow Outcome = "allow"
	OutcomeBlock Outcome = "block"
	OutcomeAsk   Outcome = "ask"
)

// Decision represents the result of evaluating a command or file operation.
type Decision struct {
	Outcome       Outcome
	Reason        string
	MatchedText   string
	ProtectedPath *rules.PathRule
	Operation     rules.Operation
}

// Allow returns the silent allow decision.
func Allow() Decision {
	return Decision{Outcome: OutcomeAllow}
}

// Allowed reports whether the decision lets the call through untouched.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// Engine evaluates requests against an effective rule set. The set is
// replaced wholesale on Reload and never mutated, so an Engine is safe for
// concurrent use.
type Engine struct {
	home   string
	set    atomic.Pointer[rules.Set]
	logger *slog.Logger
}

// NewEngine creates an engine over set. home expands leading ~ in path rules.
func NewEngine(set rules.Set, home string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{home: home, logger: logger}
	e.Reload(set)
	return e
}

// Reload swaps in a new effective rule set.
func (e *Engine) Reload(set rules.Set) {
	s := rules.Set{
		Patterns: append([]rules.CommandRule(nil), set.Patterns...),
		Paths:    append([]rules.PathRule(nil), set.Paths...),
	}
	e.set.Store(&s)
	e.logger.Debug("rule set loaded", "patterns", len(s.Patterns), "paths", len(s.Paths))
}

// Rules returns a copy of the current effective rule set.
func (e *Engine) Rules() rules.Set {
	s := e.set.Load()
	return rules.Set{
		Patterns: append([]rules.CommandRule(nil), s.Patterns...),
		Paths:    append([]rules.PathRule(nil), s.Paths...),
	}
}

// Home returns the home directory used for ~ expansion.
func (e *Engine) Home() string {
	return e.home
}

// CheckCommand evaluates a shell command against command patterns and path
// protection. A block from either wins; an ask pattern only stands when no
// protected path is violated.
func (e *Engine) CheckCommand(command string) Decision {
	s := e.set.Load()

	d := MatchCommand(command, s.Patterns)
	if d.Outcome != OutcomeBlock {
		if v, ok := EvaluateShellCommand(command, s.Paths, e.home); ok {
			d = violationDecision(v)
		}
	}

	e.log(d, "command", command, "programs", parser.Programs(command))
	return d
}

// CheckFile evaluates a structured file operation.
func (e *Engine) CheckFile(filePath string, op rules.Operation) Decision {
	s := e.set.Load()
	d := EvaluateFileOp(filePath, op, s.Paths, e.home)
	e.log(d, "path", filePath, "operation", op)
	return d
}

// ClassifyPath returns the first path rule that filePath falls under.
func (e *Engine) ClassifyPath(filePath string) (rules.PathRule, bool) {
	return ClassifyPath(filePath, e.set.Load().Paths, e.home)
}

func (e *Engine) log(d Decision, args ...any) {
	if d.Allowed() {
		e.logger.Debug("allowed", args...)
		return
	}
	args = append(args, "outcome", d.Outcome, "reason", d.Reason, "matched", d.MatchedText)
	if d.Outcome == OutcomeBlock {
		e.logger.Warn("blocked", args...)
		return
	}
	e.logger.Info("confirmation required", args...)
}
