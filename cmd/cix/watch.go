package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchHours int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Index the tree and monitor it for changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := newEngine()
		if err != nil {
			return err
		}

		result, err := engine.IndexDirectory(cmd.Context(), "", true)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d file(s), %d symbol(s). Watching %s...\n",
			result.FilesIndexed, result.SymbolsFound, cfg.RootPath)

		if err := engine.StartMonitoring(); err != nil {
			return err
		}
		defer engine.StopMonitoring()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		records, err := engine.RecentChanges(watchHours)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d change(s) recorded this session:\n", len(records))
		for _, rec := range records {
			fmt.Printf("  %s  %-8s %s\n",
				rec.Timestamp.Format(time.TimeOnly), rec.Type, rec.Path)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchHours, "hours", 24, "Window for the session change summary")
	rootCmd.AddCommand(watchCmd)
}
