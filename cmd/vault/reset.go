package main

import (
	"fmt"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/common"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every code and restore the default categories",
		Long: `Reset deletes all stored codes and category changes. This cannot be
undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			// Confirm with user unless --force is used
			if !force {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("This will delete %d codes and restore the default categories.", v.Len())))
				ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Are you sure?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Reset cancelled"))
					return nil
				}
			}

			if err := v.ResetAll(ctx); err != nil {
				return common.NewUserError("failed to reset vault", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("Vault reset"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
