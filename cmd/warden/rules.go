package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adrianpk/warden/internal/cli"
	"github.com/adrianpk/warden/internal/config"
)

func (a *app) rulesCmd() *cobra.Command {
	var dir string
	var watch bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rules and configuration warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			project := projectDir(dir)
			show := func() error {
				set, warnings := a.loader().Effective(project)
				return cli.PrintRules(cmd.OutOrStdout(), set, warnings)
			}

			if err := show(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			files := []string{a.settings.GlobalConfig}
			if project != "" {
				files = append(files, config.ProjectConfigPath(project))
			}
			return config.Watch(ctx, files, a.logger, func(path string) {
				fmt.Fprintf(cmd.OutOrStdout(), "\n# reloaded after change to %s\n", path)
				if err := show(); err != nil {
					a.logger.Warn("cannot print rules", "err", err)
				}
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "project directory (default: current directory)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-print the rules whenever a config file changes")
	return cmd
}
