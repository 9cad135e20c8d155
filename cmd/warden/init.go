package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adrianpk/warden/internal/cli"
)

func (a *app) initCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return cli.RunInit(cli.InitPath(local, a.settings.GlobalConfig, cwd), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "create .warden.json in the current directory instead of the global config")
	return cmd
}
