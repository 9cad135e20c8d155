package main

import (
	"github.com/spf13/cobra"

	"github.com/adrianpk/warden/internal/hook"
	"github.com/adrianpk/warden/internal/state"
)

func (a *app) hookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Evaluate a Claude Code hook event read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := hook.DecodeInput(cmd.InOrStdin())
			if err != nil {
				return err
			}

			engine, _ := a.engine(projectDir(input.Cwd))
			store := a.openStore()
			defer store.Close()

			res := hook.NewEvaluator(engine, store, a.settings.PendingTTL, a.logger).Evaluate(cmd.Context(), input)
			a.exitCode = res.Write(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
}

// openStore opens the shared pending store, falling back to an in-process
// one when the database is unavailable.
func (a *app) openStore() state.Store {
	store, err := state.NewSQLiteStore(a.settings.StateDB, a.logger)
	if err != nil {
		a.logger.Warn("state database unavailable, pending confirmations will not persist", "path", a.settings.StateDB, "err", err)
		return state.NewMemoryStore(a.settings.MaxPending)
	}
	return store
}
