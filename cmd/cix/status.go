package main

import (
	"github.com/spf13/cobra"

	"cix/internal/project"
	"cix/internal/query"
	"cix/internal/version"
)

// statusResponse is the payload of the status command.
type statusResponse struct {
	Version string            `json:"version"`
	Root    string            `json:"root"`
	Project project.Info      `json:"project"`
	Stats   query.EngineStats `json:"stats"`
}

var statusIndex bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show engine, project and cache state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := newEngine()
		if err != nil {
			return err
		}

		if statusIndex {
			if _, err := engine.IndexDirectory(cmd.Context(), "", true); err != nil {
				return err
			}
		}

		resp := &statusResponse{
			Version: version.Version,
			Root:    cfg.RootPath,
			Project: project.Detect(cfg.RootPath),
			Stats:   engine.Statistics(cmd.Context()),
		}
		return emit(resp)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusIndex, "index", false, "Index the tree before reporting")
	rootCmd.AddCommand(statusCmd)
}
