package cmd

import "github.com/spf13/cobra"

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in with username and password",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Login(cmd.Context(), optArg(args, 0))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Register(cmd.Context())
	},
}

var googleLoginCmd = &cobra.Command{
	Use:   "google-login [access-token]",
	Short: "Log in with a Google access token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.GoogleLogin(cmd.Context(), optArg(args, 0))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Logout(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and token expiry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Whoami(cmd.Context())
	},
}

func optArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, googleLoginCmd, logoutCmd, whoamiCmd)
}
