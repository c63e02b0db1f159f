package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/vault"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List categories with their code counts, or rename one.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(renameCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			v, closeFn, err := openVault(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			stats := v.Stats()
			if len(stats) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No categories found. Use 'vault reset' to restore the defaults."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("Category"),
				headerStyle.Render("Unused"),
				headerStyle.Render("Used"),
				headerStyle.Render("Total"))

			for _, s := range stats {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", s.Category, s.Unused, s.Used(), s.Total)
			}

			return nil
		},
	}
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category and every code filed under it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			oldName, newName := args[0], args[1]

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			outcome, err := v.RenameCategory(ctx, oldName, newName)
			if err != nil {
				return common.NewUserError("failed to rename category", err)
			}

			switch outcome {
			case vault.RenameOK:
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Renamed %q to %q", oldName, newName)))
			case vault.RenameCancelled:
				fmt.Fprintln(out, cli.FormatInfo("Nothing to rename"))
			case vault.RenameExists:
				return common.NewUserError(fmt.Sprintf("category %q already exists", newName), nil)
			case vault.RenameUnknown:
				return common.NewUserError(fmt.Sprintf("no category named %q", oldName), vault.ErrUnknownCategory)
			}
			return nil
		},
	}
}
