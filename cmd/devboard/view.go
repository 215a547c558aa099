package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/view"
)

var (
	viewProject   string
	viewStatuses  []string
	viewTypes     []string
	viewPriority  []string
	viewTags      []string
	viewDueBefore string
	viewDueAfter  string
	viewText      string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Manage saved views",
}

var viewSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a named task filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := svc.SaveView(cmd.Context(), model.SavedView{
			Name:      args[0],
			ProjectID: viewProject,
			Filter: model.SavedViewFilter{
				Status:    viewStatuses,
				Type:      viewTypes,
				Priority:  viewPriority,
				Tags:      viewTags,
				DueBefore: viewDueBefore,
				DueAfter:  viewDueAfter,
				Text:      viewText,
			},
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", titleStyle.Render(saved.Name), idStyle.Render(saved.ViewID))
		return nil
	},
}

var viewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved views",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := svc.EnsureSettings(cmd.Context())
		if err != nil {
			return err
		}
		for _, v := range settings.SavedViews {
			scope := "all projects"
			if v.ProjectID != "" {
				scope = "project " + shortID(v.ProjectID)
			}
			fmt.Printf("%s  %s  %s\n",
				idStyle.Render(shortID(v.ViewID)),
				titleStyle.Render(v.Name),
				idStyle.Render(scope),
			)
		}
		return nil
	},
}

var viewRunCmd = &cobra.Command{
	Use:   "run <view-id>",
	Short: "Resolve a saved view into its matching tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := svc.EnsureSettings(cmd.Context())
		if err != nil {
			return err
		}
		for _, v := range settings.SavedViews {
			if v.ViewID != args[0] {
				continue
			}
			tasks, err := view.Resolve(cmd.Context(), st, v)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				fmt.Printf("%s  %s  %s  %s\n",
					idStyle.Render(shortID(t.TaskID)),
					renderPriority(t.Priority),
					titleStyle.Render(t.Title),
					statusStyle.Render(t.Status),
				)
			}
			return nil
		}
		return fmt.Errorf("saved view %s not found", args[0])
	},
}

var viewRemoveCmd = &cobra.Command{
	Use:   "rm <view-id>",
	Short: "Delete a saved view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.DeleteView(cmd.Context(), args[0])
	},
}

func init() {
	viewSaveCmd.Flags().StringVarP(&viewProject, "project", "p", "", "Scope to a project id")
	viewSaveCmd.Flags().StringSliceVar(&viewStatuses, "status", nil, "Statuses to match")
	viewSaveCmd.Flags().StringSliceVar(&viewTypes, "type", nil, "Types to match")
	viewSaveCmd.Flags().StringSliceVar(&viewPriority, "priority", nil, "Priorities to match")
	viewSaveCmd.Flags().StringSliceVar(&viewTags, "tag", nil, "Tags to match (any)")
	viewSaveCmd.Flags().StringVar(&viewDueBefore, "due-before", "", "Due strictly before (YYYY-MM-DD)")
	viewSaveCmd.Flags().StringVar(&viewDueAfter, "due-after", "", "Due strictly after (YYYY-MM-DD)")
	viewSaveCmd.Flags().StringVar(&viewText, "text", "", "Title substring (case-insensitive)")

	viewCmd.AddCommand(viewSaveCmd, viewListCmd, viewRunCmd, viewRemoveCmd)
	rootCmd.AddCommand(viewCmd)
}
