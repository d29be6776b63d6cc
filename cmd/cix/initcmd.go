package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"cix/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		cfg.RootPath = rootFlag

		if err := cfg.Save(rootFlag); err != nil {
			return err
		}
		fmt.Println("Wrote", filepath.Join(rootFlag, ".cix", "config.json"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
