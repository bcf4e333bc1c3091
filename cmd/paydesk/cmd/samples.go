package cmd

import "github.com/spf13/cobra"

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List and add samples",
}

var samplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all samples",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.ListSamples(cmd.Context())
	},
}

var samplesAddCmd = &cobra.Command{
	Use:   "add [name] [age]",
	Short: "Add a sample; missing values are prompted for",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.AddSample(cmd.Context(), optArg(args, 0), optArg(args, 1))
	},
}

func init() {
	samplesCmd.AddCommand(samplesListCmd, samplesAddCmd)
	rootCmd.AddCommand(samplesCmd)
}
