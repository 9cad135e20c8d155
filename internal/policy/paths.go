package policy

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"

	"github.com/adrianpk/warden/internal/parser"
	"github.com/adrianpk/warden/internal/rules"
)

// compiled globs keyed by spec.
var globCache sync.Map

// ExpandHome replaces a leading ~ with home. An empty home leaves an
// absolute-looking path ("~/.ssh/" becomes "/.ssh/").
func ExpandHome(p, home string) string {
	if strings.HasPrefix(p, "~") {
		return home + p[1:]
	}
	return p
}

// compileGlob turns a path spec into a glob where '*' is the only wildcard
// and matches any run of characters. Every other glob metacharacter is
// taken literally.
func compileGlob(spec string) (glob.Glob, error) {
	if g, ok := globCache.Load(spec); ok {
		return g.(glob.Glob), nil
	}

	var b strings.Builder
	for _, r := range spec {
		switch r {
		case '?', '[', ']', '{', '}', '\\', ',':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}

	g, err := glob.Compile(b.String())
	if err != nil {
		return nil, err
	}

	actual, _ := globCache.LoadOrStore(spec, g)
	return actual.(glob.Glob), nil
}

// matchGlobBasename tests a glob spec against the final segment of p.
func matchGlobBasename(spec, p string) bool {
	g, err := compileGlob(spec)
	if err != nil {
		return false
	}
	return g.Match(parser.Basename(p))
}

// containsSpec reports whether s contains the spec either with ~ expanded
// or as written.
func containsSpec(s, spec, home string) bool {
	if spec == "" {
		return false
	}
	return strings.Contains(s, ExpandHome(spec, home)) || strings.Contains(s, spec)
}

// MatchesPath reports whether filePath falls under a path spec. Globs are
// matched against the basename; literal and directory specs match as
// substrings, so "dist/" matches "/any/project/dist/index.js".
func MatchesPath(filePath, spec, home string) bool {
	if filePath == "" {
		return false
	}
	if rules.IsGlobSpec(spec) {
		return matchGlobBasename(spec, filePath)
	}
	return containsSpec(filePath, spec, home)
}

// ClassifyPath returns the first rule, in list order, that filePath falls
// under.
func ClassifyPath(filePath string, list []rules.PathRule, home string) (rules.PathRule, bool) {
	for _, rule := range list {
		if MatchesPath(filePath, rule.Path, home) {
			return rule, true
		}
	}
	return rules.PathRule{}, false
}
