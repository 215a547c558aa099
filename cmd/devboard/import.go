package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/backup"
)

var importMode string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a store from an exported JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		mode := backup.Mode(importMode)
		if mode != backup.ModeReplace && mode != backup.ModeMerge {
			return fmt.Errorf("mode must be %q or %q", backup.ModeReplace, backup.ModeMerge)
		}

		if err := backup.New(st).ImportJSON(cmd.Context(), data, mode); err != nil {
			return err
		}
		log.Info().Str("file", args[0]).Str("mode", importMode).Msg("import complete")
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importMode, "mode", "m", string(backup.ModeMerge), "Import mode: replace or merge")
	rootCmd.AddCommand(importCmd)
}
