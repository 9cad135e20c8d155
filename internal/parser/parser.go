// Package parser provides shell command tokenizing utilities.
package parser

import (
	"regexp"
	"strings"
)

// Command represents a parsed shell command segment.
type Command struct {
	Raw     string
	Env     map[string]string
	Program string
	Args    []string
}

var envVarPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

// Parse parses a single shell command into leading env assignments,
// program and arguments. Quotes are honored.
func Parse(cmd string) Command {
	result := Command{
		Raw:  cmd,
		Env:  make(map[string]string),
		Args: make([]string, 0),
	}

	tokens := tokenize(strings.TrimSpace(cmd))
	idx := 0

	for idx < len(tokens) {
		match := envVarPattern.FindStringSubmatch(tokens[idx])
		if match == nil {
			break
		}
		result.Env[match[1]] = match[2]
		idx++
	}

	if idx >= len(tokens) {
		return result
	}

	result.Program = tokens[idx]
	result.Args = append(result.Args, tokens[idx+1:]...)
	return result
}

// String returns the original raw command.
func (c Command) String() string {
	return c.Raw
}

// Fields splits a command on whitespace without interpreting quotes or
// operators. Path references are looked up token by token on this form.
func Fields(cmd string) []string {
	return strings.Fields(cmd)
}

// Basename returns the final slash-separated segment of p after trailing
// slashes are trimmed. A bare name is its own basename.
func Basename(p string) string {
	p = strings.TrimRight(p, "/")
	if idx := strings.LastIndex(p, "/"); idx != -1 {
		return p[idx+1:]
	}
	return p
}

// Programs returns the program name of every segment of a command chain.
func Programs(cmd string) []string {
	var out []string
	for _, seg := range Segments(cmd) {
		if p := Parse(seg).Program; p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Segments splits a shell command by |, &&, || and ;, leaving quoted
// strings intact. Empty segments are dropped.
func Segments(cmd string) []string {
	var segments []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			segments = append(segments, s)
		}
		current.Reset()
	}

	for i := 0; i < len(cmd); i++ {
		ch := cmd[i]

		switch ch {
		case '|':
			flush()
			if i+1 < len(cmd) && cmd[i+1] == '|' {
				i++
			}
		case '&':
			if i+1 < len(cmd) && cmd[i+1] == '&' {
				flush()
				i++
			} else {
				current.WriteByte(ch)
			}
		case ';':
			flush()
		case '\'', '"':
			quote := ch
			current.WriteByte(ch)
			for i++; i < len(cmd); i++ {
				current.WriteByte(cmd[i])
				if cmd[i] == '\\' && quote == '"' && i+1 < len(cmd) {
					i++
					current.WriteByte(cmd[i])
					continue
				}
				if cmd[i] == quote {
					break
				}
			}
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	return segments
}

// tokenize splits a command string into tokens, respecting quotes.
func tokenize(cmd string) []string {
	var tokens []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	escaped := false

	for _, r := range cmd {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		switch r {
		case '\\':
			if inSingleQuote {
				current.WriteRune(r)
			} else {
				escaped = true
			}
		case '\'':
			if !inDoubleQuote {
				inSingleQuote = !inSingleQuote
			} else {
				current.WriteRune(r)
			}
		case '"':
			if !inSingleQuote {
				inDoubleQuote = !inDoubleQuote
			} else {
				current.WriteRune(r)
			}
		case ' ', '\t', '\n':
			if inSingleQuote || inDoubleQuote {
				current.WriteRune(r)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
