package hook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/adrianpk/warden/internal/policy"
)

// Exit codes understood by the host.
const (
	ExitAllow = 0
	ExitFatal = 1
	ExitBlock = 2
)

type hookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

type hookOutput struct {
	HookSpecificOutput *hookSpecificOutput `json:"hookSpecificOutput,omitempty"`
	SystemMessage      string              `json:"systemMessage,omitempty"`
}

// Write renders the result for the host and returns the process exit code.
// Allow writes nothing, block writes the reason to stderr, ask writes a
// permission decision to stdout.
func (r Result) Write(stdout, stderr io.Writer) int {
	d := r.Decision
	switch d.Outcome {
	case policy.OutcomeBlock:
		fmt.Fprintln(stderr, blockMessage(d))
		return ExitBlock
	case policy.OutcomeAsk:
		out := hookOutput{HookSpecificOutput: &hookSpecificOutput{
			HookEventName:            EventPreToolUse,
			PermissionDecision:       "ask",
			PermissionDecisionReason: "warden: " + d.Reason,
		}}
		if err := json.NewEncoder(stdout).Encode(out); err != nil {
			fmt.Fprintf(stderr, "cannot encode output: %v\n", err)
			return ExitFatal
		}
		return ExitAllow
	}

	if r.Message != "" {
		if err := json.NewEncoder(stdout).Encode(hookOutput{SystemMessage: r.Message}); err != nil {
			fmt.Fprintf(stderr, "cannot encode output: %v\n", err)
			return ExitFatal
		}
	}
	return ExitAllow
}

func blockMessage(d policy.Decision) string {
	msg := "warden: blocked: " + d.Reason
	if d.MatchedText != "" {
		msg += " (matched: " + d.MatchedText + ")"
	}
	return msg
}
