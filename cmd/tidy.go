package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/textdiff"
)

var tidyCmd = &cobra.Command{
	Use:   "tidy <file>",
	Short: "Sanitize and normalize a document without opening the editor",
	Long: `Run a document through the engine's sanitize and normalize passes
and print the result. The file is only rewritten with --write.

Examples:
  # Print the cleaned document
  plume tidy draft.html

  # Show what would change
  plume tidy --diff draft.html

  # Clean the file in place
  plume tidy --write draft.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied document path
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		cleaned, err := tidyMarkup(string(data))
		if err != nil {
			return err
		}

		showDiff, _ := cmd.Flags().GetBool("diff")
		write, _ := cmd.Flags().GetBool("write")

		switch {
		case showDiff:
			before := string(data)
			if !textdiff.Changed(before, cleaned) {
				fmt.Fprintln(cmd.OutOrStdout(), "already clean")
				return nil
			}
			ins, del := textdiff.Stats(before, cleaned)
			fmt.Fprintln(cmd.OutOrStdout(), textdiff.Pretty(before, cleaned))
			fmt.Fprintf(cmd.OutOrStdout(), "+%d/-%d\n", ins, del)
		case write:
			if err := os.WriteFile(path, []byte(cleaned), 0o644); err != nil { //nolint:gosec // G306: document files are not secrets
				return fmt.Errorf("writing %s: %w", path, err)
			}
		default:
			fmt.Fprintln(cmd.OutOrStdout(), cleaned)
		}
		return nil
	},
}

// tidyMarkup runs markup through engine construction, which sanitizes and
// normalizes before the first snapshot.
func tidyMarkup(markup string) (string, error) {
	ed, err := editor.New(editor.Options{Content: markup})
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}
	defer ed.Destroy()
	return ed.GetContent(), nil
}

func init() {
	tidyCmd.Flags().Bool("diff", false, "print a diff instead of the cleaned document")
	tidyCmd.Flags().Bool("write", false, "rewrite the file with the cleaned document")
	rootCmd.AddCommand(tidyCmd)
}
