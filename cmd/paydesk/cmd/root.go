package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/paydesk/internal/client/cli"
	"github.com/dmitrijs2005/paydesk/internal/client/config"
)

var (
	app       *cli.App
	cfg       *config.Config
	noBrowser bool

	closeApp = (*cli.App).Close
)

var rootCmd = &cobra.Command{
	Use:   "paydesk",
	Short: "paydesk is a command-line client for the paydesk API",
	Long: `Log in, manage samples and buy credits against a paydesk backend.
The session is kept in a local SQLite file and shared by every paydesk
process using the same file. Run without a subcommand for an interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		a, err := cli.NewApp(cmd.Context(), c, noBrowser)
		if err != nil {
			return err
		}
		cfg, app = c, a
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		app.Root(cmd.Context())
	},
}

// run executes the command tree for args and releases the App afterwards,
// whether or not the command succeeded. Commands report their own failures;
// only errors from before the App existed are printed here.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	if app == nil {
		if err != nil {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "paydesk:", err)
		}
		return err
	}
	cerr := closeApp(app)
	app = nil
	return errors.Join(err, cerr)
}

func Execute() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVar(&noBrowser, "no-browser", false, "print checkout links instead of opening a browser")
}
