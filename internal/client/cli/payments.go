package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/paydesk/internal/client/models"
)

// Payments prints the payment history of the current user.
func (a *App) Payments(ctx context.Context) error {
	rows, err := a.payments.History(ctx)
	if err != nil {
		a.report(err, "Failed to load payment history")
		return err
	}
	a.renderPayments(rows)
	return nil
}

func (a *App) renderPayments(rows []models.PaymentTransaction) {
	if len(rows) == 0 {
		a.println("You have no payment transactions yet. Buy some credits to get started!")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRANSACTION ID\tAMOUNT\tSTATUS\tDATE")
	for _, t := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			t.TransactionID,
			formatMoney(t.Amount, t.Currency),
			t.Status.Title(),
			formatTime(t.CreatedAt),
		)
	}
	_ = tw.Flush()
}

// Products prints the catalog.
func (a *App) Products(ctx context.Context) error {
	rows, err := a.payments.Products(ctx)
	if err != nil {
		a.report(err, "Failed to load products")
		return err
	}
	a.renderProducts(rows)
	return nil
}

func (a *App) renderProducts(rows []models.Product) {
	if len(rows) == 0 {
		a.println("No products found")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCREDITS\tDESCRIPTION")
	for _, p := range rows {
		credits := "-"
		if p.Credits > 0 {
			credits = fmt.Sprint(p.Credits)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, formatMoney(p.Price, p.Currency), credits, p.Description)
	}
	_ = tw.Flush()
}

// Buy starts a checkout for productID and hands the URL to the browser.
func (a *App) Buy(ctx context.Context, productID string) error {
	productID, err := a.ask(productID, "Enter product id")
	if err != nil {
		return err
	}
	url, err := a.payments.Checkout(ctx, productID)
	if url != "" {
		a.println("Checkout:", url)
	}
	switch {
	case err != nil && url != "":
		a.println("Could not open a browser, open the link above manually")
		return err
	case err != nil:
		a.report(err, "Error creating payment")
		return err
	}
	a.println("Continue the payment in your browser")
	return nil
}

// Account prints the credit balance.
func (a *App) Account(ctx context.Context) error {
	acc, err := a.payments.Account(ctx)
	if err != nil {
		a.report(err, "Failed to load account")
		return err
	}
	a.printf("Credits: %s\n", acc.AccountValue.String())
	return nil
}

// formatMoney prefixes the ISO code when known; the backend's default
// currency is USD, so an unlabeled amount gets a dollar sign.
func formatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return "$" + amount.StringFixed(2)
	}
	return strings.ToUpper(currency) + " " + amount.StringFixed(2)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
