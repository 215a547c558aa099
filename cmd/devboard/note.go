package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/ops"
)

var (
	noteProject string
	noteContent string
	noteTags    []string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := svc.CreateNote(cmd.Context(), ops.NoteInput{
			ProjectID: noteProject,
			Title:     args[0],
			Content:   noteContent,
			Tags:      noteTags,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", titleStyle.Render(note.Title), idStyle.Render(note.NoteID))
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			notes []model.Note
			err   error
		)
		if noteProject != "" {
			notes, err = st.GetNotesByProject(cmd.Context(), noteProject)
		} else {
			notes, err = st.GetNotes(cmd.Context())
		}
		if err != nil {
			return err
		}
		for _, n := range notes {
			fmt.Printf("%s  %s  %s\n",
				idStyle.Render(shortID(n.NoteID)),
				titleStyle.Render(n.Title),
				tagStyle.Render(strings.Join(n.Tags, ",")),
			)
		}
		return nil
	},
}

var noteBacklinksCmd = &cobra.Command{
	Use:   "backlinks <note-id>",
	Short: "List notes linking to this note's title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backlinks, err := svc.Backlinks(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, n := range backlinks {
			fmt.Printf("%s  %s\n", idStyle.Render(shortID(n.NoteID)), titleStyle.Render(n.Title))
		}
		return nil
	},
}

var noteRemoveCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.DeleteNote(cmd.Context(), args[0])
	},
}

func init() {
	noteAddCmd.Flags().StringVarP(&noteProject, "project", "p", "", "Owning project id")
	noteAddCmd.Flags().StringVarP(&noteContent, "content", "c", "", "Markdown content")
	noteAddCmd.Flags().StringSliceVar(&noteTags, "tag", nil, "Note tags")
	noteListCmd.Flags().StringVarP(&noteProject, "project", "p", "", "Filter by project id")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteBacklinksCmd, noteRemoveCmd)
	rootCmd.AddCommand(noteCmd)
}
