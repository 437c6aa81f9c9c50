package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"finsight/internal/finance"
)

// app holds the global flags and output streams shared by every command.
type app struct {
	snapshotPath string
	currency     string
	asJSON       bool
	plain        bool
	style        string

	out    io.Writer
	errOut io.Writer
}

// newCommander registers the global flags on fs and every command.
func newCommander(fs *flag.FlagSet, out, errOut io.Writer) *subcommands.Commander {
	a := &app{out: out, errOut: errOut}
	fs.StringVar(&a.snapshotPath, "snapshot", "snapshot.json", "Path to the JSON snapshot of financial records")
	fs.StringVar(&a.currency, "currency", "USD", "ISO 4217 currency used to display amounts")
	fs.BoolVar(&a.asJSON, "json", false, "Print results as JSON instead of Markdown")
	fs.BoolVar(&a.plain, "plain", false, "Print raw Markdown without terminal styling")
	fs.StringVar(&a.style, "style", "auto", "Glamour style used for Markdown output (auto, dark, light, notty)")

	c := subcommands.NewCommander(fs, "finsight")
	c.Output = out
	c.Error = errOut
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&netWorthCmd{app: a}, "insights")
	c.Register(&budgetCmd{app: a}, "insights")
	c.Register(&cashFlowCmd{app: a}, "insights")
	c.Register(&goalsCmd{app: a}, "insights")
	c.Register(&debtsCmd{app: a}, "insights")
	c.Register(&portfolioCmd{app: a}, "insights")
	c.Register(&assetsCmd{app: a}, "insights")
	c.Register(&billsCmd{app: a}, "insights")
	c.Register(&reportCmd{app: a}, "insights")
	return c
}

// load reads the snapshot file, fills in defaults for unset optional fields and
// checks the display currency.
func (a *app) load() (finance.Snapshot, error) {
	var snap finance.Snapshot
	if money.GetCurrency(a.currency) == nil {
		return snap, fmt.Errorf("unknown currency %q", a.currency)
	}

	f, err := os.Open(a.snapshotPath)
	if err != nil {
		return snap, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return snap, fmt.Errorf("decoding %s: %w", a.snapshotPath, err)
	}
	return snap.WithDefaults(), nil
}

// emit prints v as JSON with -json, otherwise the Markdown produced by md.
func (a *app) emit(v any, md func(formatter) string) error {
	if a.asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return a.printMarkdown(md(formatter{currency: a.currency}))
}

func (a *app) printMarkdown(md string) error {
	if a.plain {
		_, err := io.WriteString(a.out, md)
		return err
	}

	opt := glamour.WithStandardStyle(a.style)
	if a.style == "auto" {
		opt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	rendered, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.out, rendered)
	return err
}

// fail reports err and maps it to an exit status: bad flag values are usage
// errors, everything else is a failure.
func (a *app) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut, "Error: %v\n", err)
	var uerr usageError
	if errors.As(err, &uerr) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

type usageError struct{ error }

// asOfFlag registers the -as-of flag shared by commands.
func asOfFlag(f *flag.FlagSet, p *string) {
	f.StringVar(p, "as-of", "", "Evaluation date (YYYY-MM-DD or RFC3339, default today)")
}

func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, usageError{fmt.Errorf("invalid -as-of %q: use YYYY-MM-DD or RFC3339", s)}
	}
	return t, nil
}
