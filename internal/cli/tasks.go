package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/client"
	"taskboard/internal/task"
)

func (a *app) listCmd() *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			tasks, err := a.client.FetchTasks(cmd.Context())
			if err != nil {
				return err
			}

			shown := 0
			term := strings.ToLower(strings.TrimSpace(search))
			for _, t := range tasks {
				if status == "completed" && !t.Completed {
					continue
				}
				if status == "pending" && t.Completed {
					continue
				}
				if term != "" && !strings.Contains(strings.ToLower(t.Title), term) {
					continue
				}
				printTask(t)
				shown++
			}
			if shown == 0 {
				fmt.Println("No tasks. Add one with `todo add`.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "filter: all, completed or pending")
	cmd.Flags().StringVar(&search, "search", "", "filter by title substring")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			created, err := a.client.CreateTask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("Added %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}
}

func (a *app) markCmd(verb string, action client.Action) *cobra.Command {
	short := "Mark a task as done"
	if action == client.ActionUndone {
		short = "Mark a task as not done"
	}
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			marked, err := a.client.MarkTask(cmd.Context(), args[0], action)
			if err != nil {
				return err
			}
			printTask(marked)
			return nil
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> [id...]",
		Short: "Delete tasks; several ids are deleted in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			var err error
			if len(args) == 1 {
				err = a.client.DeleteTask(cmd.Context(), args[0])
			} else {
				err = a.client.BulkDeleteTasks(cmd.Context(), args)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d task(s).\n", len(args))
			return nil
		},
	}
}

func printTask(t task.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Printf("%s %s  %s\n", box, t.ID, t.Title)
}
