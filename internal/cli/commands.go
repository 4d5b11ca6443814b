package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/JonMunkholm/clientview/internal/core"
	"github.com/JonMunkholm/clientview/internal/export"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	search      string
	matchBranch bool
	minAge      int
	maxAge      int
	sort        string
	dir         string
	page        int
	size        int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list clients with search, sort and pagination" }
func (*listCmd) Usage() string {
	return `clientview list [-s <term>] [-b] [-min-age N] [-max-age N] [-sort key] [-dir asc|desc] [-page N] [-size N]

  Lists one page of clients. The search term matches name, tax id and
  email, ignoring case; -b also matches branch name, address and code.
  Sort keys: name, annualIncome, netWorth, age.

`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "s", "", "search term")
	f.BoolVar(&c.matchBranch, "b", false, "also match the search term against the client's branch")
	f.IntVar(&c.minAge, "min-age", -1, "minimum age, inclusive (-1 for none)")
	f.IntVar(&c.maxAge, "max-age", -1, "maximum age, inclusive (-1 for none)")
	f.StringVar(&c.sort, "sort", string(core.SortByName), "sort key")
	f.StringVar(&c.dir, "dir", string(core.Ascending), "sort direction: asc or desc")
	f.IntVar(&c.page, "page", 1, "page number; pages past the end show the last page")
	f.IntVar(&c.size, "size", 0, "page size (default: first permitted size)")
}

func (c *listCmd) query(svc *core.Service) (core.Query, error) {
	key, err := core.ParseSortKey(c.sort)
	if err != nil {
		return core.Query{}, err
	}
	order, err := core.ParseSortOrder(c.dir)
	if err != nil {
		return core.Query{}, err
	}

	q := svc.NewQuery().
		WithSearch(c.search).
		WithBranchMatch(c.matchBranch).
		WithAgeRange(ageBound(c.minAge), ageBound(c.maxAge)).
		WithSort(key, order)
	if c.size != 0 {
		if q, err = q.WithPageSize(c.size, svc.PageSizes()); err != nil {
			return core.Query{}, err
		}
	}
	if c.page < 1 {
		return core.Query{}, fmt.Errorf("page %d: %w", c.page, core.ErrInvalidParameter)
	}
	q.Page = c.page
	return q, nil
}

func ageBound(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	q, err := c.query(svc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		return subcommands.ExitUsageError
	}

	page, err := svc.Clients(ctx, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		return subcommands.ExitFailure
	}

	printMarkdown(export.ClientsMarkdown(page, svc.Now()))
	return subcommands.ExitSuccess
}

// showCmd prints one client with its accounts.
type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show a client with its accounts and totals" }
func (*showCmd) Usage() string {
	return `clientview show <client-id>

  Shows one client, the branch, every account owned by the client's tax id
  and the account totals.

`
}

func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: show takes exactly one client id")
		return subcommands.ExitUsageError
	}

	svc, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	detail, err := svc.ClientDetail(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		return subcommands.ExitFailure
	}

	printMarkdown(export.DetailMarkdown(detail))
	return subcommands.ExitSuccess
}

type branchesCmd struct{}

func (*branchesCmd) Name() string     { return "branches" }
func (*branchesCmd) Synopsis() string { return "list bank branches" }
func (*branchesCmd) Usage() string {
	return `clientview branches

  Lists every branch in sheet order.

`
}

func (*branchesCmd) SetFlags(*flag.FlagSet) {}

func (*branchesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(export.BranchesMarkdown(svc.Branches()))
	return subcommands.ExitSuccess
}

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the client distribution report" }
func (*reportCmd) Usage() string {
	return `clientview report

  Prints the balance, credit limit, available credit, income and age
  distributions over every client.

`
}

func (*reportCmd) SetFlags(*flag.FlagSet) {}

func (*reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := svc.Report(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		return subcommands.ExitFailure
	}

	printMarkdown(export.Markdown(report))
	return subcommands.ExitSuccess
}

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the report to an xlsx, pdf or markdown file" }
func (*exportCmd) Usage() string {
	return `clientview export [-f xlsx|pdf|md] [-o <file>]

  Writes the distribution report to a file. Without -o the file is named
  client-report-<timestamp>.<format> in the current directory. Use -o - to
  write to standard output.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "f", string(export.FormatXLSX), "output format: xlsx, pdf or md")
	f.StringVar(&c.output, "o", "", "output file, or - for standard output")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := export.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		return subcommands.ExitUsageError
	}

	svc, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := svc.Report(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		return subcommands.ExitFailure
	}

	if err := writeExport(c.output, format, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeExport writes the report to path, to stdout for "-", or to the
// default file name for "".
func writeExport(path string, format export.Format, report core.Report) (err error) {
	if path == "-" {
		return export.WriteReport(os.Stdout, format, report)
	}
	if path == "" {
		path = format.Filename(report)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := export.WriteReport(f, format, report); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "load the sheets and report what loaded" }
func (*statusCmd) Usage() string {
	return `clientview status

  Loads the three sheets and prints the row counts and any sheet that failed.
  Exits with a failure status when a sheet failed.

`
}

func (*statusCmd) SetFlags(*flag.FlagSet) {}

func (*statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	snap := svc.Snapshot()
	printMarkdown(statusMarkdown(snap))
	if len(snap.Errors) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func statusMarkdown(snap *core.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Snapshot %s\n\n", snap.ID)
	fmt.Fprintf(&b, "Loaded %s\n\n", snap.LoadedAt.Format("02/01/2006 15:04:05"))
	fmt.Fprintln(&b, "| Sheet | Rows | Status |")
	fmt.Fprintln(&b, "|:---|---:|:---|")
	for _, s := range []struct {
		sheet core.Sheet
		rows  int
	}{
		{core.SheetBranches, len(snap.Branches)},
		{core.SheetClients, len(snap.Clients)},
		{core.SheetAccounts, len(snap.Accounts)},
	} {
		status := "ok"
		for _, e := range snap.Errors {
			if e.Sheet == s.sheet {
				msg := core.MapError(e.Err)
				status = msg.Message + " (" + msg.Code + ")"
			}
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n", s.sheet, s.rows, status)
	}
	return b.String()
}
