// Package cli implements the taskboard command line front end. It is the
// terminal stand-in for the web views: the same client SDK, session store,
// and normalization underneath, with text output on top.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/session"
)

type app struct {
	client  *client.Client
	session *session.Store
	logger  *log.Logger
}

// New builds the root command with all subcommands attached.
func New() *cobra.Command {
	cfg := config.Load()
	a := &app{}

	var apiURL, sessionFile string

	root := &cobra.Command{
		Use:   "todo",
		Short: "Manage your taskboard to-do list from the terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
			a.session = session.NewStore(sessionFile)
			a.client = client.New(apiURL, a.session,
				client.WithLogger(a.logger),
				client.WithOnUnauthorized(func() {
					fmt.Fprintln(os.Stderr, "Your session has expired. Run `todo login` to sign in again.")
				}),
			)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&apiURL, "api", cfg.APIBaseURL, "taskboard API base URL")
	root.PersistentFlags().StringVar(&sessionFile, "session-file", cfg.SessionFile, "path of the persisted session")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.listCmd(),
		a.addCmd(),
		a.markCmd("done", client.ActionDone),
		a.markCmd("undone", client.ActionUndone),
		a.removeCmd(),
		a.adminCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", client.Message(err))
		os.Exit(1)
	}
}

// requireAuth fails early with a friendly message instead of letting the
// API answer 401 for an obviously anonymous session.
func (a *app) requireAuth() error {
	if !a.session.Current().IsAuthenticated() {
		return fmt.Errorf("you are not logged in, run `todo login` first")
	}
	return nil
}
