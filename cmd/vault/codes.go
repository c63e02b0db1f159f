package main

import (
	"fmt"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/common"
	"github.com/spf13/cobra"
)

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a code between used and unused",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			code, err := resolveCode(v, args[0])
			if err != nil {
				return err
			}

			if _, err := v.ToggleUsed(ctx, code.ID); err != nil {
				return common.NewUserError("failed to update code", err)
			}

			state := "used"
			if code.IsUsed {
				state = "unused"
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Marked %s as %s", code.Value, state)))
			return nil
		},
	}
}

func useCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "use <id>",
		Short: "Copy a code to the clipboard and mark it used",
		Long: `Copy a code to the system clipboard and mark it used. When no clipboard
is available, or with --print, the code is written to standard output instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			code, err := resolveCode(v, args[0])
			if err != nil {
				return err
			}

			if _, err := v.Use(ctx, code.ID, copierFor(cmd.OutOrStdout(), printOnly)); err != nil {
				return common.NewUserError("failed to use code", err)
			}

			if !printOnly {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Copied %s and marked it used", code.Value)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the code instead of copying it")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			code, err := resolveCode(v, args[0])
			if err != nil {
				return err
			}

			if _, err := v.DeleteOne(ctx, code.ID); err != nil {
				return common.NewUserError("failed to delete code", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %s", code.Value)))
			return nil
		},
	}
}

func clearUsedCmd() *cobra.Command {
	var (
		category string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "clear-used",
		Short: "Remove every used code from a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			target, err := pickCategory(v, category)
			if err != nil {
				return err
			}

			if !force {
				ok, err := cli.NewPrompter(cmd.InOrStdin(), out).
					Confirm(ctx, fmt.Sprintf("Remove all used codes from %s?", target))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Cancelled"))
					return nil
				}
			}

			removed, err := v.ClearUsedInCategory(ctx, target)
			if err != nil {
				return common.NewUserError("failed to clear used codes", err)
			}

			if removed == 0 {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No used codes in %s", target)))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Removed %d used codes from %s", removed, target)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to clear (default: first category)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
