package policy

import (
	"regexp"
	"strings"

	"github.com/adrianpk/warden/internal/parser"
	"github.com/adrianpk/warden/internal/rules"
)

// A verb must start the command or follow a separator or a path slash
// (/bin/rm), and must be followed by whitespace or end of input.
const (
	verbStart = "(?:^|[\\s;&|(`/])"
	verbEnd   = `(?:\s|$)`
)

func verb(names string) *regexp.Regexp {
	return regexp.MustCompile(verbStart + `(?:` + names + `)` + verbEnd)
}

var writeSignatures = []*regexp.Regexp{
	regexp.MustCompile(`>{1,2}\s*[^\s&>]`),
	regexp.MustCompile(verbStart + `tee(?:\s+(?:-a|--append))?` + verbEnd),
	regexp.MustCompile(verbStart + `sed\s+(?:[^\s|;&]+\s+)*?(?:-[a-zA-Z]*i|--in-place)\b`),
	verb(`cp|mv|chmod|chown|ln|install|patch|truncate|dd|touch|mkdir`),
	regexp.MustCompile(verbStart + `(?:echo|printf|cat)\s[^|;&]*>`),
}

var deleteSignatures = []*regexp.Regexp{
	verb(`rm|unlink|rmdir|shred`),
}

// tokenTrim strips quoting and redirection glued to a path token.
const tokenTrim = "\"'`;()<>|&"

// ReferencesPath reports whether command mentions the path spec. Glob specs
// are tested against the basename of every whitespace-separated token and
// of every unquoted argument or env assignment value; literal and directory
// specs match as substrings.
func ReferencesPath(command, spec, home string) bool {
	if command == "" {
		return false
	}
	if !rules.IsGlobSpec(spec) {
		return containsSpec(command, spec, home)
	}

	for _, tok := range parser.Fields(command) {
		if matchGlobToken(spec, tok) {
			return true
		}
	}

	for _, seg := range parser.Segments(command) {
		cmd := parser.Parse(seg)
		for _, arg := range cmd.Args {
			if matchGlobToken(spec, arg) {
				return true
			}
		}
		for _, v := range cmd.Env {
			if matchGlobToken(spec, v) {
				return true
			}
		}
	}
	return false
}

func matchGlobToken(spec, tok string) bool {
	tok = strings.Trim(tok, tokenTrim)
	return tok != "" && matchGlobBasename(spec, tok)
}

// IsWrite reports whether a segment of command (split on |, &&, || and ;)
// both references spec and uses a write operator. Intent is inferred from
// operator vocabulary, so unknown tools that modify files go unnoticed.
func IsWrite(command, spec, home string) bool {
	return segmentMatches(command, spec, home, writeSignatures)
}

// IsDelete reports whether a segment of command both references spec and
// uses a delete operator.
func IsDelete(command, spec, home string) bool {
	return segmentMatches(command, spec, home, deleteSignatures)
}

func segmentMatches(command, spec, home string, signatures []*regexp.Regexp) bool {
	for _, seg := range parser.Segments(command) {
		if matchesAny(seg, signatures) && ReferencesPath(seg, spec, home) {
			return true
		}
	}
	return false
}

func matchesAny(command string, signatures []*regexp.Regexp) bool {
	for _, re := range signatures {
		if re.MatchString(command) {
			return true
		}
	}
	return false
}
