// Package cli implements the clientview terminal commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/JonMunkholm/clientview/internal/config"
	"github.com/JonMunkholm/clientview/internal/core"
)

// Commands is every clientview subcommand.
var Commands = []subcommands.Command{
	&listCmd{},
	&showCmd{},
	&branchesCmd{},
	&reportCmd{},
	&exportCmd{},
	&statusCmd{},
}

var (
	branchesSource = flag.String("branches", "", "branches sheet URL or file (default: SHEET_BRANCHES_URL)")
	clientsSource  = flag.String("clients", "", "clients sheet URL or file (default: SHEET_CLIENTS_URL)")
	accountsSource = flag.String("accounts", "", "accounts sheet URL or file (default: SHEET_ACCOUNTS_URL)")
	plainOutput    = flag.Bool("plain", false, "print raw markdown instead of rendering it")
)

// Register adds every command to c.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// openService loads the configuration, applies the source flags and loads
// one snapshot. Sheet failures are printed as warnings; the snapshot is
// still usable with whatever loaded.
func openService(ctx context.Context) (*core.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *branchesSource != "" {
		cfg.Sheets.BranchesURL = *branchesSource
	}
	if *clientsSource != "" {
		cfg.Sheets.ClientsURL = *clientsSource
	}
	if *accountsSource != "" {
		cfg.Sheets.AccountsURL = *accountsSource
	}

	svc, err := core.NewServiceFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	snap := svc.Reload(core.ContextWithTrigger(ctx, core.TriggerCLI))
	for _, e := range snap.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %s sheet: %s\n", e.Sheet, core.FormatUserError(e.Err))
	}
	return svc, nil
}

// printMarkdown renders md for the terminal, or prints it raw with -plain
// or when rendering fails.
func printMarkdown(md string) {
	if *plainOutput {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
