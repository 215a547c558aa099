package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/ops"
)

var (
	taskProject     string
	taskDescription string
	taskType        string
	taskStatus      string
	taskPriority    string
	taskTags        []string
	taskDueDate     string
	taskEffort      string
	taskDueWithin   int
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		effort, err := parseEffort(taskEffort)
		if err != nil {
			return err
		}
		task, err := svc.CreateTask(cmd.Context(), ops.TaskInput{
			ProjectID:   taskProject,
			Title:       args[0],
			Description: taskDescription,
			Type:        taskType,
			Status:      taskStatus,
			Priority:    taskPriority,
			Tags:        taskTags,
			DueDate:     taskDueDate,
			Effort:      effort,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", titleStyle.Render(task.Title), idStyle.Render(task.TaskID))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			tasks []model.Task
			err   error
		)
		switch {
		case taskDueWithin > 0:
			cutoff := time.Now().AddDate(0, 0, taskDueWithin).Format("2006-01-02")
			tasks, err = st.GetTasksDueBefore(cmd.Context(), cutoff)
		case taskProject != "":
			tasks, err = st.GetTasksByProject(cmd.Context(), taskProject)
		case taskStatus != "":
			tasks, err = st.GetTasksByStatus(cmd.Context(), taskStatus)
		default:
			tasks, err = st.GetTasks(cmd.Context())
		}
		if err != nil {
			return err
		}
		for _, t := range tasks {
			due := ""
			if t.DueDate != "" {
				due = "due " + t.DueDate
			}
			fmt.Printf("%s  %s  %s  %s  %s  %s\n",
				idStyle.Render(shortID(t.TaskID)),
				renderPriority(t.Priority),
				titleStyle.Render(t.Title),
				statusStyle.Render(t.Status),
				tagStyle.Render(strings.Join(t.Tags, ",")),
				due,
			)
		}
		return nil
	},
}

var taskDuplicateCmd = &cobra.Command{
	Use:   "duplicate <task-id>",
	Short: "Duplicate a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		copyTask, err := svc.DuplicateTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if copyTask == nil {
			fmt.Println("task not found, nothing duplicated")
			return nil
		}
		fmt.Printf("%s %s\n", titleStyle.Render(copyTask.Title), idStyle.Render(copyTask.TaskID))
		return nil
	},
}

var taskConvertCmd = &cobra.Command{
	Use:   "convert <task-id> <checklist-item-id>",
	Short: "Promote a checklist item into its own task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := svc.ConvertChecklistItemToTask(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if task == nil {
			fmt.Println("task or checklist item not found, nothing converted")
			return nil
		}
		fmt.Printf("%s %s\n", titleStyle.Render(task.Title), idStyle.Render(task.TaskID))
		return nil
	},
}

var taskTimerCmd = &cobra.Command{
	Use:   "timer <start|stop> <task-id>",
	Short: "Start or stop the task timer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "start":
			return svc.StartTimeLog(cmd.Context(), args[1])
		case "stop":
			return svc.StopTimeLog(cmd.Context(), args[1])
		default:
			return fmt.Errorf("unknown timer action %q", args[0])
		}
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.DeleteTask(cmd.Context(), args[0])
	},
}

// parseEffort accepts a t-shirt size label or a numeric point value.
func parseEffort(raw string) (*model.Effort, error) {
	if raw == "" {
		return nil, nil
	}
	if points, err := strconv.ParseFloat(raw, 64); err == nil {
		return model.PointsEffort(points), nil
	}
	label := strings.ToUpper(raw)
	if !model.ValidEffortLabel(label) {
		return nil, model.Validation("task effort", fmt.Sprintf("unknown size label %q", raw))
	}
	return model.LabelEffort(label), nil
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskProject, "project", "p", "", "Owning project id")
	taskAddCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Task description")
	taskAddCmd.Flags().StringVar(&taskType, "type", "", "Task type (Feature, Bug, Fix, Chore, Refactor, Research)")
	taskAddCmd.Flags().StringVar(&taskStatus, "status", "", "Task status")
	taskAddCmd.Flags().StringVar(&taskPriority, "priority", "", "Task priority (P0..P3)")
	taskAddCmd.Flags().StringSliceVar(&taskTags, "tag", nil, "Task tags")
	taskAddCmd.Flags().StringVar(&taskDueDate, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskEffort, "effort", "", "Effort estimate (XS..XXL or points)")

	taskListCmd.Flags().StringVarP(&taskProject, "project", "p", "", "Filter by project id")
	taskListCmd.Flags().StringVar(&taskStatus, "status", "", "Filter by status")
	taskListCmd.Flags().IntVar(&taskDueWithin, "due-within", 0, "Only tasks due within the next N days")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDuplicateCmd, taskConvertCmd, taskTimerCmd, taskRemoveCmd)
	rootCmd.AddCommand(taskCmd)
}
