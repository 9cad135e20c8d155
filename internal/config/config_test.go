package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adrianpk/warden/internal/rules"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAndMergeMissingFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(filepath.Join(dir, "global", "config.json"), nil)

	overlay, warnings := l.LoadAndMerge(filepath.Join(dir, "project"))
	if !overlay.IsEmpty() {
		t.Errorf("expected empty overlay, got %+v", overlay)
	}
	if len(warnings) != 0 {
		t.Errorf("missing files must not warn: %v", warnings)
	}
}

func TestLoadAndMergeMalformedIsSilent(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global", "config.json")
	projectDir := filepath.Join(dir, "project")
	writeFile(t, globalPath, `{"patterns": {`)
	writeFile(t, ProjectConfigPath(projectDir), ``)

	overlay, warnings := NewLoader(globalPath, nil).LoadAndMerge(projectDir)
	if !overlay.IsEmpty() {
		t.Errorf("expected empty overlay, got %+v", overlay)
	}
	if len(warnings) != 0 {
		t.Errorf("unparsable files must not warn: %v", warnings)
	}
}

func TestLoadAndMergePrecedence(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global", "config.json")
	projectDir := filepath.Join(dir, "project")

	writeFile(t, globalPath, `{
		"patterns": {
			"override": {"X": "ask"},
			"add": [{"pattern": "g", "reason": "global rule", "action": "ask"}]
		}
	}`)
	writeFile(t, ProjectConfigPath(projectDir), `{
		"patterns": {
			"override": {"X": "block"},
			"add": [{"pattern": "p", "reason": "project rule", "action": "block"}]
		},
		"bogus": true
	}`)

	overlay, warnings := NewLoader(globalPath, nil).LoadAndMerge(projectDir)

	if overlay.Patterns.Override["X"] != rules.ActionBlock {
		t.Errorf("Override[X] = %q, want block", overlay.Patterns.Override["X"])
	}
	wantAdd := []rules.CommandRule{
		{Pattern: "g", Reason: "global rule", Action: rules.ActionAsk},
		{Pattern: "p", Reason: "project rule", Action: rules.ActionBlock},
	}
	if diff := cmp.Diff(wantAdd, overlay.Patterns.Add); diff != "" {
		t.Errorf("Add mismatch (-want +got):\n%s", diff)
	}

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %q", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "project config") || !strings.Contains(warnings[0], "bogus") {
		t.Errorf("warning %q should name the source and key", warnings[0])
	}
}

func TestLoadYAMLSibling(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "config.json")
	writeFile(t, filepath.Join(dir, "config.yml"), `
patterns:
  remove:
    - SQL DROP TABLE
paths:
  add:
    - path: secrets/
      level: zeroAccess
  override:
    README.md: none
`)

	overlay, warnings := NewLoader(globalPath, nil).LoadAndMerge("")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := Overlay{
		Patterns: PatternOverlay{Remove: []string{"SQL DROP TABLE"}},
		Paths: PathOverlay{
			Add:      []rules.PathRule{{Path: "secrets/", Level: rules.LevelZeroAccess}},
			Override: map[string]rules.Level{"README.md": rules.LevelNone},
		},
	}
	if diff := cmp.Diff(want, overlay); diff != "" {
		t.Errorf("overlay mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSONPreferredOverYAML(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "config.json")
	writeFile(t, globalPath, `{"patterns": {"remove": ["from json"]}}`)
	writeFile(t, filepath.Join(dir, "config.yaml"), "patterns:\n  remove: [from yaml]\n")

	overlay, _ := NewLoader(globalPath, nil).LoadAndMerge("")
	if diff := cmp.Diff([]string{"from json"}, overlay.Patterns.Remove); diff != "" {
		t.Errorf("Remove mismatch (-want +got):\n%s", diff)
	}
}

func TestEffective(t *testing.T) {
	dir := t.TempDir()
	projectDir := filepath.Join(dir, "project")
	writeFile(t, ProjectConfigPath(projectDir), `{
		"patterns": {"remove": ["SQL DROP TABLE"]},
		"paths": {"add": [{"path": "secrets/", "level": "zeroAccess"}]}
	}`)

	set, warnings := NewLoader(filepath.Join(dir, "none.json"), nil).Effective(projectDir)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	for _, r := range set.Patterns {
		if r.Reason == "SQL DROP TABLE" {
			t.Error("removed rule still present")
		}
	}
	if len(set.Patterns) != len(rules.DefaultPatterns())-1 {
		t.Errorf("got %d patterns, want %d", len(set.Patterns), len(rules.DefaultPatterns())-1)
	}
	last := set.Paths[len(set.Paths)-1]
	if last.Path != "secrets/" || last.Level != rules.LevelZeroAccess {
		t.Errorf("added path should be appended last, got %+v", last)
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/a/config.json", []string{"/a/config.json", "/a/config.yml", "/a/config.yaml"}},
		{"/a/config.yml", []string{"/a/config.yml"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Candidates(tt.path)); diff != "" {
				t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	if got := GlobalConfigPath("/home/dev"); got != "/home/dev/.config/warden/config.json" {
		t.Errorf("GlobalConfigPath() = %q", got)
	}
	if got := ProjectConfigPath("/work/app"); got != "/work/app/.warden.json" {
		t.Errorf("ProjectConfigPath() = %q", got)
	}
}
