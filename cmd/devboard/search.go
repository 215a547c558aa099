package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across projects, tasks, and notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indexer := search.NewIndexer(st, log)
		if err := indexer.Rebuild(cmd.Context()); err != nil {
			return err
		}
		results, err := indexer.Search(args[0])
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%s  %-7s  %s  %s\n",
				idStyle.Render(shortID(r.ID)),
				statusStyle.Render(r.Source),
				titleStyle.Render(r.Title),
				idStyle.Render(fmt.Sprintf("%.2f", r.Score)),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
