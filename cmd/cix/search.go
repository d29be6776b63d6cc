package main

import (
	"github.com/spf13/cobra"

	"cix/internal/extract"
)

var (
	searchKind  string
	searchLimit int
	searchFuzzy bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed symbols by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		if _, err := engine.IndexDirectory(cmd.Context(), "", true); err != nil {
			return err
		}

		resp, err := engine.SearchSymbols(cmd.Context(), args[0], extract.SymbolKind(searchKind), searchLimit, searchFuzzy)
		if err != nil {
			return err
		}
		return emit(resp)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "Filter by kind: function, class, variable, import")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum results")
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "Fall back to subsequence matching when nothing matches exactly")
	rootCmd.AddCommand(searchCmd)
}
