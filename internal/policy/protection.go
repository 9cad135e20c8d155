package policy

import (
	"fmt"

	"github.com/adrianpk/warden/internal/rules"
)

// Violation is the first path rule a command breaks and how.
type Violation struct {
	Rule      rules.PathRule
	Operation rules.Operation
}

// EvaluateShellCommand walks the path rules in order and returns the first
// one the command violates:
//
//	zeroAccess  any reference
//	readOnly    write, then delete
//	noDelete    delete
func EvaluateShellCommand(command string, list []rules.PathRule, home string) (Violation, bool) {
	for _, rule := range list {
		switch rule.Level {
		case rules.LevelZeroAccess:
			if ReferencesPath(command, rule.Path, home) {
				return Violation{Rule: rule, Operation: rules.OpAccess}, true
			}
		case rules.LevelReadOnly:
			if IsWrite(command, rule.Path, home) {
				return Violation{Rule: rule, Operation: rules.OpWrite}, true
			}
			if IsDelete(command, rule.Path, home) {
				return Violation{Rule: rule, Operation: rules.OpDelete}, true
			}
		case rules.LevelNoDelete:
			if IsDelete(command, rule.Path, home) {
				return Violation{Rule: rule, Operation: rules.OpDelete}, true
			}
		}
	}
	return Violation{}, false
}

// EvaluateFileOp decides a structured file operation reported by the host.
// The first classified rule governs: reads are blocked by zeroAccess,
// writes by zeroAccess and readOnly, deletes by any tier.
func EvaluateFileOp(filePath string, op rules.Operation, list []rules.PathRule, home string) Decision {
	rule, ok := ClassifyPath(filePath, list, home)
	if !ok || !denies(rule.Level, op) {
		return Allow()
	}
	return protectionDecision(rule, op, filePath)
}

func denies(level rules.Level, op rules.Operation) bool {
	switch op {
	case rules.OpAccess:
		return level == rules.LevelZeroAccess
	case rules.OpWrite:
		return level == rules.LevelZeroAccess || level == rules.LevelReadOnly
	case rules.OpDelete:
		return level.Valid()
	}
	return false
}

func violationDecision(v Violation) Decision {
	return protectionDecision(v.Rule, v.Operation, v.Rule.Path)
}

func protectionDecision(rule rules.PathRule, op rules.Operation, matched string) Decision {
	protected := rule
	return Decision{
		Outcome:       OutcomeBlock,
		Reason:        fmt.Sprintf("%s path %s: %s not permitted", levelLabel(rule.Level), rule.Path, op),
		MatchedText:   matched,
		ProtectedPath: &protected,
		Operation:     op,
	}
}

func levelLabel(l rules.Level) string {
	switch l {
	case rules.LevelZeroAccess:
		return "zero-access"
	case rules.LevelReadOnly:
		return "read-only"
	case rules.LevelNoDelete:
		return "no-delete"
	}
	return string(l)
}
