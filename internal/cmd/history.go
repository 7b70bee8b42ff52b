package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"toga/internal/domain"
	"toga/internal/ports"
	"toga/internal/services"
)

// HistoryCmd lists journaled backend attempts
type HistoryCmd struct {
	Format     string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Identifier string `help:"Only attempts for this cédula"`
	Kind       string `help:"Only attempts of this kind (verify or generate)"`
	Limit      int    `help:"Maximum number of attempts to show" default:"20"`
	Summary    bool   `help:"Show counts per outcome instead of the list"`
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	ctx := context.Background()
	svc := cli.Container.AttemptService

	if h.Summary {
		summary, err := svc.Summary(ctx)
		if err != nil {
			return err
		}
		return h.printSummary(summary)
	}

	kind := domain.AttemptKind(h.Kind)
	if kind != "" && kind != domain.AttemptVerify && kind != domain.AttemptGenerate {
		return fmt.Errorf("unknown attempt kind %q: %w", h.Kind, domain.ErrValidation)
	}

	attempts, err := svc.List(ctx, ports.AttemptFilter{
		Identifier: h.Identifier,
		Kind:       kind,
		Limit:      h.Limit,
	})
	if err != nil {
		return err
	}

	if h.Format == "json" {
		data, err := json.MarshalIndent(attempts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(attempts) == 0 {
		fmt.Println("No attempts recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "When\tKind\tCédula\tOutcome\tError\tDuration")
	fmt.Fprintln(w, "────\t────\t──────\t───────\t─────\t────────")
	for _, a := range attempts {
		errorKind := string(a.ErrorKind)
		if errorKind == "" {
			errorKind = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			a.Kind,
			a.Identifier,
			a.Outcome,
			errorKind,
			a.Duration.Round(10*time.Millisecond))
	}
	return w.Flush()
}

func (h *HistoryCmd) printSummary(summary services.AttemptSummary) error {
	if h.Format == "json" {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	outcomes := make([]string, 0, len(summary.ByOutcome))
	for o := range summary.ByOutcome {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Outcome\tCount")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%d\n", o, summary.ByOutcome[domain.AttemptOutcome(o)])
	}
	fmt.Fprintf(w, "total\t%d\n", summary.Total)
	return w.Flush()
}
