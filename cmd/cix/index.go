package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var indexRecursive bool

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a directory tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		dir := ""
		if len(args) == 1 {
			dir = args[0]
		}

		// Ctrl-C aborts the run and prints what completed so far
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := engine.IndexDirectory(ctx, dir, indexRecursive)
		if err != nil {
			return err
		}
		return emit(result)
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexRecursive, "recursive", true, "Descend into subdirectories")
	rootCmd.AddCommand(indexCmd)
}
