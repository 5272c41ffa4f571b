package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/task"
)

func (a *app) adminCmd() *cobra.Command {
	filter := task.DefaultFilter()

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Browse all users' tasks (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			page, err := a.client.AdminPage(cmd.Context(), filter)
			if err != nil {
				return err
			}

			for _, t := range page.Tasks {
				fmt.Printf("%-7s  %-24s  %s\n", t.StatusLabel(), t.OwnerLabel(), t.Title)
			}
			fmt.Printf("\npage %d/%d, %d matching task(s)\n", page.Page, page.TotalPages, page.TotalData)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", task.StatusAll, "filter: all, success or pending")
	cmd.Flags().StringVar(&filter.Search, "search", "", "match title, owner or status label")
	cmd.Flags().IntVar(&filter.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 20, "page size")

	cmd.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List the distinct task owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			owners, err := a.client.AdminOwners(cmd.Context())
			if err != nil {
				return err
			}
			for _, owner := range owners {
				fmt.Printf("%s  %s\n", owner.ID, owner.Label)
			}
			return nil
		},
	})
	return cmd
}
