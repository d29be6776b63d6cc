package main

import (
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <file>",
	Short: "Show the commits that touched a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		commits, err := engine.FileHistory(cmd.Context(), args[0], historyLimit)
		if err != nil {
			return err
		}
		return emit(commits)
	},
}

var blameCmd = &cobra.Command{
	Use:   "blame <file>",
	Short: "Attribute each line of a file to its last commit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		lines, err := engine.Blame(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(lines)
	},
}

var churnCmd = &cobra.Command{
	Use:   "churn <from> <to>",
	Short: "Show per-file additions and deletions between two revisions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		stats, err := engine.DiffStats(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return emit(stats)
	},
}

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the repository's latest commits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		commits, err := engine.RecentCommits(cmd.Context(), recentLimit)
		if err != nil {
			return err
		}
		return emit(commits)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum commits")
	recentCmd.Flags().IntVar(&recentLimit, "limit", 20, "Maximum commits")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(blameCmd)
	rootCmd.AddCommand(churnCmd)
	rootCmd.AddCommand(recentCmd)
}
