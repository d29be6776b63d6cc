package main

import (
	"github.com/spf13/cobra"
)

var (
	refsLimit   int
	refsContext int
)

var refsCmd = &cobra.Command{
	Use:   "refs <symbol>",
	Short: "Find references to a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		if _, err := engine.IndexDirectory(cmd.Context(), "", true); err != nil {
			return err
		}

		resp, err := engine.FindReferences(cmd.Context(), args[0], refsContext, refsLimit)
		if err != nil {
			return err
		}
		return emit(resp)
	},
}

func init() {
	refsCmd.Flags().IntVar(&refsLimit, "limit", 100, "Maximum results")
	refsCmd.Flags().IntVar(&refsContext, "context", -1, "Context lines around each hit (-1 uses the configured default)")
	rootCmd.AddCommand(refsCmd)
}
