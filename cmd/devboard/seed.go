package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo data into an empty store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inserted, err := seed.Demo(cmd.Context(), svc)
		if err != nil {
			return err
		}
		if !inserted {
			fmt.Println("store is not empty, skipping demo data")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
