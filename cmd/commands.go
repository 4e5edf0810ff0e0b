package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/plume/internal/editor"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the built-in editor commands",
	Long: `List every built-in editor command with its category, exclusive
group, and whether it needs a selection. Use these names in the bindings
section of the config file.

Examples:
  # List all commands
  plume commands

  # Commands usable without a selection
  plume commands | grep -v yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := editor.New(editor.Options{})
		if err != nil {
			return fmt.Errorf("creating editor: %w", err)
		}
		defer ed.Destroy()

		table := ed.Commands()
		sort.Slice(table, func(i, j int) bool {
			if table[i].Category != table[j].Category {
				return table[i].Category < table[j].Category
			}
			return table[i].Name < table[j].Name
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tGROUP\tSELECTION\tDEFAULT ARGS")
		for _, meta := range table {
			sel := ""
			if meta.RequiresSelection {
				sel = "yes"
			}
			args := make([]string, len(meta.DefaultArgs))
			for i, a := range meta.DefaultArgs {
				args[i] = fmt.Sprint(a)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				meta.Name, meta.Category, meta.ExclusiveGroup, sel, strings.Join(args, " "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
