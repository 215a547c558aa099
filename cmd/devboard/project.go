package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/ops"
)

var (
	projectDescription string
	projectTech        []string
	projectStatus      string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := svc.CreateProject(cmd.Context(), ops.ProjectInput{
			Name:        args[0],
			Description: projectDescription,
			Status:      projectStatus,
			TechStack:   projectTech,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", titleStyle.Render(p.Name), idStyle.Render(p.ProjectID))
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			projects []model.Project
			err      error
		)
		if projectStatus != "" {
			projects, err = st.GetProjectsByStatus(cmd.Context(), projectStatus)
		} else {
			projects, err = st.GetProjects(cmd.Context())
		}
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Printf("%s  %s  %s  %s\n",
				idStyle.Render(shortID(p.ProjectID)),
				titleStyle.Render(p.Name),
				statusStyle.Render(p.Status),
				tagStyle.Render(strings.Join(p.TechStack, ",")),
			)
		}
		return nil
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:   "rm <project-id>",
	Short: "Delete a project and everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.DeleteProject(cmd.Context(), args[0])
	},
}

func init() {
	projectAddCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "Project description")
	projectAddCmd.Flags().StringSliceVar(&projectTech, "tech", nil, "Tech stack entries")
	projectAddCmd.Flags().StringVar(&projectStatus, "status", "", "Project status (active, paused, archived)")
	projectListCmd.Flags().StringVar(&projectStatus, "status", "", "Filter by status")

	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectRemoveCmd)
	rootCmd.AddCommand(projectCmd)
}
