// Package hook provides the core hook evaluation logic.
package hook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/adrianpk/warden/internal/policy"
	"github.com/adrianpk/warden/internal/rules"
	"github.com/adrianpk/warden/internal/state"
)

// Hook event names sent by the host.
const (
	EventPreToolUse        = "PreToolUse"
	EventPermissionRequest = "PermissionRequest"
	EventPostToolUse       = "PostToolUse"
)

// DefaultPendingTTL is how long an unresolved confirmation is kept.
const DefaultPendingTTL = 10 * time.Minute

// Input represents the hook input from Claude Code.
type Input struct {
	SessionID     string         `json:"session_id"`
	Cwd           string         `json:"cwd"`
	HookEventName string         `json:"hook_event_name"`
	ToolName      string         `json:"tool_name"`
	ToolInput     map[string]any `json:"tool_input"`
	ToolUseID     string         `json:"tool_use_id"`
}

// DecodeInput reads one hook payload.
func DecodeInput(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return in, nil
}

// Result represents the evaluation result.
type Result struct {
	ID       string
	Event    string
	Decision policy.Decision
	// Message is surfaced to the user without affecting the decision.
	Message string
}

// Evaluator evaluates hook inputs against an engine and tracks pending
// confirmations across events.
type Evaluator struct {
	engine *policy.Engine
	store  state.Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewEvaluator creates a new hook evaluator. A nil store disables pending
// tracking.
func NewEvaluator(engine *policy.Engine, store state.Store, ttl time.Duration, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	return &Evaluator{engine: engine, store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Evaluate processes the hook input and returns a result. Store failures
// are logged; they never change the decision.
func (e *Evaluator) Evaluate(ctx context.Context, input Input) Result {
	res := Result{ID: ulid.Make().String(), Event: input.HookEventName, Decision: policy.Allow()}
	log := e.logger.With("id", res.ID, "event", input.HookEventName, "tool", input.ToolName)

	e.purge(ctx, log)

	switch input.HookEventName {
	case EventPreToolUse, "":
		res.Decision = e.decide(input)
		if res.Decision.Outcome == policy.OutcomeAsk {
			e.stash(ctx, log, input, res)
		}
	case EventPermissionRequest:
		if p, ok := e.take(ctx, log, CallKey(input)); ok {
			res.Message = confirmationMessage(p)
		}
	case EventPostToolUse:
		if e.store != nil {
			if err := e.store.Delete(ctx, CallKey(input)); err != nil {
				log.Warn("cannot clear pending entry", "err", err)
			}
		}
	default:
		log.Debug("event ignored")
	}

	return res
}

func (e *Evaluator) decide(input Input) policy.Decision {
	if input.ToolName == "Bash" {
		cmd, _ := input.ToolInput["command"].(string)
		return e.engine.CheckCommand(cmd)
	}

	op, ok := toolOperation(input.ToolName)
	if !ok {
		return policy.Allow()
	}
	for _, p := range ExtractPaths(input.ToolName, input.ToolInput) {
		if d := e.engine.CheckFile(p, op); !d.Allowed() {
			return d
		}
	}
	return policy.Allow()
}

func (e *Evaluator) stash(ctx context.Context, log *slog.Logger, input Input, res Result) {
	if e.store == nil {
		return
	}
	p := state.Pending{
		Key:     CallKey(input),
		ID:      res.ID,
		Tool:    input.ToolName,
		Reason:  res.Decision.Reason,
		Matched: res.Decision.MatchedText,
		Created: e.now(),
	}
	if err := e.store.Put(ctx, p); err != nil {
		log.Warn("cannot stash pending confirmation", "err", err)
	}
}

func (e *Evaluator) take(ctx context.Context, log *slog.Logger, key string) (state.Pending, bool) {
	if e.store == nil {
		return state.Pending{}, false
	}
	p, ok, err := e.store.Take(ctx, key)
	if err != nil {
		log.Warn("cannot read pending confirmation", "err", err)
		return state.Pending{}, false
	}
	return p, ok
}

func (e *Evaluator) purge(ctx context.Context, log *slog.Logger) {
	if e.store == nil {
		return
	}
	if _, err := e.store.Purge(ctx, e.now().Add(-e.ttl)); err != nil {
		log.Warn("cannot purge pending confirmations", "err", err)
	}
}

func confirmationMessage(p state.Pending) string {
	msg := "warden: " + p.Reason
	if p.Matched != "" {
		msg += " (matched: " + p.Matched + ")"
	}
	return msg
}

// CallKey identifies a tool call across hook events: the tool use id when
// the host sends one, otherwise a digest of session, tool and input.
func CallKey(input Input) string {
	if input.ToolUseID != "" {
		return input.ToolUseID
	}
	// Map keys are sorted by encoding/json, so the digest is stable.
	data, _ := json.Marshal(input.ToolInput)
	h := sha256.New()
	h.Write([]byte(input.SessionID))
	h.Write([]byte{0})
	h.Write([]byte(input.ToolName))
	h.Write([]byte{0})
	h.Write(data)
	return "sha256:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// ExtractPaths returns the file paths named by a structured tool input.
// Glob patterns and Grep file filters are included so their basenames are
// classified like any other path.
func ExtractPaths(toolName string, toolInput map[string]any) []string {
	keys := []string{"file_path", "path", "notebook_path"}
	switch toolName {
	case "Glob":
		keys = append(keys, "pattern")
	case "Grep":
		keys = append(keys, "glob")
	}

	var paths []string
	for _, key := range keys {
		if p, ok := toolInput[key].(string); ok && p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

var toolOperations = map[string]rules.Operation{
	"Read":         rules.OpAccess,
	"Glob":         rules.OpAccess,
	"Grep":         rules.OpAccess,
	"NotebookRead": rules.OpAccess,
	"Write":        rules.OpWrite,
	"Edit":         rules.OpWrite,
	"MultiEdit":    rules.OpWrite,
	"NotebookEdit": rules.OpWrite,
}

func toolOperation(tool string) (rules.Operation, bool) {
	op, ok := toolOperations[tool]
	return op, ok
}
