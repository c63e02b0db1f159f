package main

import (
	"github.com/Veraticus/codevault/internal/tui"
	"github.com/Veraticus/codevault/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse codes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			return tui.Run(ctx, v,
				tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "Color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}
