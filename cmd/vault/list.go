package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/vault"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		category string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored codes grouped by prefix",
		Long: `Show codes category by category, grouped by their first four characters,
oldest first. Used codes are hidden unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			v, closeFn, err := openVault(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			categories := v.Categories()
			if category != "" {
				picked, err := pickCategory(v, category)
				if err != nil {
					return err
				}
				categories = []string{picked}
			}

			if v.Len() == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("The vault is empty. Use 'vault add' to store some codes."))
				return nil
			}

			stats := make(map[string]model.CategoryStats)
			for _, s := range v.Stats() {
				stats[s.Category] = s
			}
			for _, c := range categories {
				printCategory(out, v, c, stats[c], all)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list this category")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include used codes")

	return cmd
}

func printCategory(out io.Writer, v *vault.Vault, category string, stats model.CategoryStats, all bool) {
	fmt.Fprintln(out, cli.BoldStyle.Render(fmt.Sprintf("%s (%d/%d unused)", category, stats.Unused, stats.Total)))

	shown := 0
	for _, g := range v.View(category) {
		var lines []string
		for _, c := range g.Codes {
			if c.IsUsed && !all {
				continue
			}
			lines = append(lines, fmt.Sprintf("    %s  %s", cli.SubtleStyle.Render(shortID(c.ID)), cli.FormatCode(c.Value, c.IsUsed)))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(out, "  %s\n", cli.PrefixStyle.Render(g.Prefix))
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		shown += len(lines)
	}

	if shown == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("  (nothing to show)"))
	}
}
