package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adrianpk/warden/internal/cli"
	"github.com/adrianpk/warden/internal/hook"
	"github.com/adrianpk/warden/internal/policy"
	"github.com/adrianpk/warden/internal/rules"
)

var operations = map[string]rules.Operation{
	"read":   rules.OpAccess,
	"write":  rules.OpWrite,
	"delete": rules.OpDelete,
}

func (a *app) checkCmd() *cobra.Command {
	var file, op, dir string

	cmd := &cobra.Command{
		Use:   "check [--file PATH --op read|write|delete] [-- command...]",
		Short: "Evaluate a command or file operation against the effective rules",
		Example: `  warden check -- git push --force origin main
  warden check --file ~/.ssh/id_rsa --op read`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _ := a.engine(projectDir(dir))

			var d policy.Decision
			switch {
			case file != "":
				operation, ok := operations[op]
				if !ok {
					return fmt.Errorf("invalid operation %q (want read, write or delete)", op)
				}
				d = engine.CheckFile(file, operation)
			case len(args) > 0:
				d = engine.CheckCommand(strings.Join(args, " "))
			default:
				return fmt.Errorf("nothing to check: pass a command or --file")
			}

			cli.PrintDecision(cmd.OutOrStdout(), d)
			if d.Outcome == policy.OutcomeBlock {
				a.exitCode = hook.ExitBlock
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "file path to check instead of a command")
	cmd.Flags().StringVar(&op, "op", "read", "file operation: read, write or delete")
	cmd.Flags().StringVar(&dir, "dir", "", "project directory (default: current directory)")
	return cmd
}
