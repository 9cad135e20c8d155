package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adrianpk/warden/internal/config"
	"github.com/adrianpk/warden/internal/hook"
	"github.com/adrianpk/warden/internal/policy"
)

var version = "0.1.0"

type app struct {
	settings *config.Settings
	logger   *slog.Logger
	logClose func() error
	exitCode int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 allow or ask,
// 2 block, 1 fatal.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd(stderr)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.logClose != nil {
		a.logClose()
	}
	if err != nil {
		fmt.Fprintln(stderr, "warden:", err)
		return hook.ExitFatal
	}
	return a.exitCode
}

func (a *app) rootCmd(stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "warden",
		Short:         "Policy guard for AI agent tool calls",
		Long:          "Warden checks shell commands and file operations requested by an AI coding agent against command patterns and protected paths.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(stderr)
		},
	}

	root.AddCommand(a.hookCmd())
	root.AddCommand(a.checkCmd())
	root.AddCommand(a.rulesCmd())
	root.AddCommand(a.initCmd())
	return root
}

// setup never fails: a hook that exits with an error lets the tool call
// through, so bad settings degrade to defaults and are logged.
func (a *app) setup(stderr io.Writer) error {
	settings, settingsErr := config.LoadSettings()
	a.settings = settings

	var w io.Writer = stderr
	var logErr error
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logErr = err
		} else {
			w = f
			a.logClose = f.Close
		}
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: settings.Level()}))

	if settingsErr != nil {
		a.logger.Warn("invalid settings", "err", settingsErr)
	}
	if logErr != nil {
		a.logger.Warn("cannot open log file, logging to stderr", "path", settings.LogFile, "err", logErr)
	}
	if settings.Home == "" {
		a.logger.Warn("home directory unknown, ~ expands to an empty path")
	}
	return nil
}

func (a *app) loader() *config.Loader {
	return config.NewLoader(a.settings.GlobalConfig, a.logger)
}

// engine builds an engine over the effective rules for projectDir.
func (a *app) engine(projectDir string) (*policy.Engine, []string) {
	set, warnings := a.loader().Effective(projectDir)
	for _, w := range warnings {
		a.logger.Warn("config", "warning", w)
	}
	return policy.NewEngine(set, a.settings.Home, a.logger), warnings
}

// projectDir resolves the project root: CLAUDE_PROJECT_DIR, then the given
// directory, then the working directory.
func projectDir(dir string) string {
	if env := os.Getenv("CLAUDE_PROJECT_DIR"); env != "" {
		return env
	}
	if dir != "" {
		return dir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}
