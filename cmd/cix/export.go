package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cix/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Index the tree and write a SCIP index file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		result, err := engine.IndexDirectory(cmd.Context(), "", true)
		if err != nil {
			return err
		}

		if err := export.WriteSCIP(engine.Index(), exportOut); err != nil {
			return err
		}

		fmt.Printf("Wrote %s: %d file(s), %d symbol(s)\n",
			exportOut, result.FilesIndexed, result.SymbolsFound)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "index.scip", "Output file path")
	rootCmd.AddCommand(exportCmd)
}
