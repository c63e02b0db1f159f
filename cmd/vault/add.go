package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/codevault/internal/cli"
	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/extract"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		category string
		file     string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Extract codes from text and store them",
		Long: `Scan pasted text for codes (runs of 20 to 60 letters and digits) and file
every new one under a category. Text is taken from the arguments, from --file,
or from standard input when neither is given. Codes already in the vault are
skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			text, err := readAddInput(cmd, args, file)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Found %d codes", extract.Count(text))))
				for _, t := range extract.Tokens(text) {
					fmt.Fprintf(out, "  %s\n", t)
				}
				return nil
			}

			v, closeFn, err := openVault(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			target, err := pickCategory(v, category)
			if err != nil {
				return err
			}

			result, err := v.Import(ctx, text, target)
			if err != nil {
				return common.NewUserError("failed to add codes", err)
			}

			switch {
			case result.Extracted == 0:
				fmt.Fprintln(out, cli.FormatWarning("No codes found in the input"))
			case result.NothingNew():
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("All %d codes are already in the vault", result.Duplicates)))
			default:
				msg := fmt.Sprintf("Added %d codes to %s", result.Added, target)
				if result.Duplicates > 0 {
					msg += fmt.Sprintf(" (%d already stored)", result.Duplicates)
				}
				fmt.Fprintln(out, cli.FormatSuccess(msg))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to file codes under (default: first category)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read text from a file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the codes that would be extracted without storing them")

	return cmd
}

func readAddInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if file != "" && len(args) > 0 {
		return "", fmt.Errorf("give text either as arguments or with --file, not both")
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	return cli.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).ReadAll(cmd.Context())
}
