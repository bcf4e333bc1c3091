package cmd

import "github.com/spf13/cobra"

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the credit balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Account(cmd.Context())
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List credit packs for sale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Products(cmd.Context())
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy [product-id]",
	Short: "Start a checkout for a product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Buy(cmd.Context(), optArg(args, 0))
	},
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Show payment history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Payments(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(accountCmd, productsCmd, buyCmd, paymentsCmd)
}
