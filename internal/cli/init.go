// Package cli provides CLI command implementations.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrianpk/warden/internal/config"
)

// InitPath returns where init writes the starter overlay: the project file
// under cwd when local, globalPath otherwise.
func InitPath(local bool, globalPath, cwd string) string {
	if local {
		return config.ProjectConfigPath(cwd)
	}
	return globalPath
}

// RunInit writes a starter overlay to path. An existing file is left alone.
func RunInit(path string, out io.Writer) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Config already exists: %s\n", path)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot stat config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	// O_EXCL so a file created since the Stat is never clobbered.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	if _, err := f.WriteString(starterConfig); err != nil {
		f.Close()
		return fmt.Errorf("cannot write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}

	fmt.Fprintf(out, "Created config: %s\n", path)
	return nil
}

const starterConfig = `{
  "patterns": {
    "add": [
      {
        "pattern": "\\bnpm\\s+publish\\b",
        "reason": "npm publish",
        "action": "ask"
      }
    ],
    "remove": [],
    "override": {}
  },
  "paths": {
    "add": [],
    "remove": [],
    "override": {}
  }
}
`
