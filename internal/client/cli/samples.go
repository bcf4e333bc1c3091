package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/paydesk/internal/client/models"
)

// ListSamples loads and prints all samples.
func (a *App) ListSamples(ctx context.Context) error {
	rows, err := a.samples.List(ctx)
	if err != nil {
		a.report(err, "Error fetching samples")
		return err
	}
	a.renderSamples(rows)
	return nil
}

func (a *App) renderSamples(rows []models.Sample) {
	if len(rows) == 0 {
		a.println("No samples found")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE")
	for _, s := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", s.ID, s.Name, s.Age)
	}
	_ = tw.Flush()
}

// AddSample creates a sample. Empty name or age are prompted for.
func (a *App) AddSample(ctx context.Context, name, age string) error {
	name, err := a.ask(name, "Enter name")
	if err != nil {
		return err
	}
	age, err = a.ask(age, "Enter age")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(age)
	if err != nil {
		a.println("Age must be a whole number")
		return fmt.Errorf("parse age: %w", err)
	}

	created, err := a.samples.Add(ctx, models.NewSample{Name: name, Age: n})
	if err != nil {
		a.report(err, "Error adding sample")
		return err
	}
	a.printf("Sample added successfully (id %d)\n", created.ID)
	return nil
}
