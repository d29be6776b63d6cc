package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCachesOnly bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the in-memory index and caches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		engine.ClearCaches()
		if !clearCachesOnly {
			engine.ClearIndex()
			fmt.Println("Index and caches cleared")
			return nil
		}
		fmt.Println("Caches cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearCachesOnly, "caches-only", false, "Keep the index, clear caches only")
	rootCmd.AddCommand(clearCmd)
}
