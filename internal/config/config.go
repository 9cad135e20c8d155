// Package config loads, validates and merges the rule overlays users supply
// on top of the built-in rules.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adrianpk/warden/internal/rules"
)

const (
	// ProjectFileName is the project-local overlay, relative to the project root.
	ProjectFileName = ".warden.json"

	globalFileName = "config.json"
)

// Loader reads the global and project overlays from disk.
type Loader struct {
	GlobalPath string
	logger     *slog.Logger
}

// NewLoader creates a loader. globalPath is the global overlay file.
func NewLoader(globalPath string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{GlobalPath: globalPath, logger: logger}
}

// LoadAndMerge reads both overlays and merges them, project over global.
// A missing or unparsable file counts as an empty overlay and produces no
// warning; shape problems in a parsable file do.
func (l *Loader) LoadAndMerge(projectDir string) (Overlay, []string) {
	global, warnings := l.loadSource("global", l.GlobalPath)

	var project Overlay
	if projectDir != "" {
		var pw []string
		project, pw = l.loadSource("project", ProjectConfigPath(projectDir))
		warnings = append(warnings, pw...)
	}

	return Merge(global, project), warnings
}

// Effective applies the merged overlays to the built-in rules.
func (l *Loader) Effective(projectDir string) (rules.Set, []string) {
	overlay, warnings := l.LoadAndMerge(projectDir)
	return Apply(overlay, rules.DefaultPatterns(), rules.DefaultPaths()), warnings
}

func (l *Loader) loadSource(label, path string) (Overlay, []string) {
	if path == "" {
		return Overlay{}, nil
	}

	raw, file, ok := l.read(path)
	if !ok {
		return Overlay{}, nil
	}

	overlay, warnings := Validate(raw, label+" config "+file)
	l.logger.Debug("config loaded", "source", label, "path", file, "warnings", len(warnings))
	return overlay, warnings
}

// read returns the decoded content of the first existing candidate file.
func (l *Loader) read(path string) (any, string, bool) {
	for _, candidate := range Candidates(path) {
		data, err := os.ReadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			l.logger.Warn("cannot read config", "path", candidate, "err", err)
			return nil, candidate, false
		}

		raw, err := decode(candidate, data)
		if err != nil {
			l.logger.Warn("cannot parse config, ignoring it", "path", candidate, "err", err)
			return nil, candidate, false
		}
		return raw, candidate, true
	}
	return nil, "", false
}

// Candidates lists the files tried for a config path: the path itself and,
// for a .json path, its .yml and .yaml siblings.
func Candidates(path string) []string {
	if filepath.Ext(path) != ".json" {
		return []string{path}
	}
	base := strings.TrimSuffix(path, ".json")
	return []string{path, base + ".yml", base + ".yaml"}
}

func decode(path string, data []byte) (any, error) {
	var raw any
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return normalize(raw), nil
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, fmt.Errorf("empty file")
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
}

// normalize converts yaml maps with non-string keys into the map[string]any
// shape encoding/json produces.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalize(item)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range x {
			x[i] = normalize(item)
		}
		return x
	}
	return v
}

// ConfigDir returns the global configuration directory under home.
func ConfigDir(home string) string {
	return filepath.Join(home, ".config", "warden")
}

// GlobalConfigPath returns the default global overlay path under home.
func GlobalConfigPath(home string) string {
	return filepath.Join(ConfigDir(home), globalFileName)
}

// ProjectConfigPath returns the project overlay path for a project root.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectFileName)
}
