package policy

import (
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/adrianpk/warden/internal/rules"
)

// MatchTimeout bounds a single pattern evaluation.
const MatchTimeout = 250 * time.Millisecond

// compiled patterns keyed by source.
var patternCache sync.Map

// PatternMatch is the command rule that matched and the text it matched.
type PatternMatch struct {
	Rule rules.CommandRule
	Text string
}

// CompilePattern compiles a rule pattern as a case-insensitive regexp2
// expression. Successful compilations are cached by source.
func CompilePattern(src string) (*regexp2.Regexp, error) {
	if re, ok := patternCache.Load(src); ok {
		return re.(*regexp2.Regexp), nil
	}

	re, err := regexp2.Compile(src, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = MatchTimeout

	actual, _ := patternCache.LoadOrStore(src, re)
	return actual.(*regexp2.Regexp), nil
}

// FindPattern returns the first rule, in list order, whose pattern matches
// anywhere in command. Rules that fail to compile or time out are skipped;
// rule lists are expected to be validated at load time.
func FindPattern(command string, list []rules.CommandRule) (PatternMatch, bool) {
	if command == "" {
		return PatternMatch{}, false
	}

	for _, rule := range list {
		re, err := CompilePattern(rule.Pattern)
		if err != nil {
			continue
		}

		m, err := re.FindStringMatch(command)
		if err != nil || m == nil {
			continue
		}

		text := m.String()
		if text == "" {
			text = rule.Pattern
		}
		return PatternMatch{Rule: rule, Text: text}, true
	}

	return PatternMatch{}, false
}

// MatchCommand turns the first matching command rule into a decision.
// No match allows.
func MatchCommand(command string, list []rules.CommandRule) Decision {
	m, ok := FindPattern(command, list)
	if !ok {
		return Allow()
	}

	outcome := OutcomeBlock
	if m.Rule.Action == rules.ActionAsk {
		outcome = OutcomeAsk
	}

	return Decision{
		Outcome:     outcome,
		Reason:      m.Rule.Reason,
		MatchedText: m.Text,
	}
}
