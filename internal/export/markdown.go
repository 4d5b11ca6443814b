package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/clientview/internal/core"
)

// Markdown renders r as one table per histogram.
func Markdown(r core.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ReportTitle)
	fmt.Fprintf(&b, "%s\n\n", subtitle(r))

	for _, h := range r.Histograms {
		fmt.Fprintf(&b, "## %s\n\n", h.Title)
		fmt.Fprintln(&b, "| Category | Count |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, bucket := range h.Buckets {
			fmt.Fprintf(&b, "| %s | %d |\n", bucket.Label, bucket.Count)
		}
		fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", h.Total())
	}
	return b.String()
}

// ClientsMarkdown renders one page of the client list.
func ClientsMarkdown(page core.PageResult[core.Client], now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Clients\n\n")
	if page.TotalItems == 0 {
		fmt.Fprintln(&b, "_No clients match._")
		return b.String()
	}

	fmt.Fprintln(&b, "| ID | Name | Tax ID | Age | Annual income | Net worth | Branch |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")
	for _, c := range page.Items {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			cell(c.ID),
			cell(c.Name),
			core.FormatTaxID(c.TaxID),
			ageText(c.BirthDate, now),
			core.FormatBRL(c.AnnualIncome),
			core.FormatBRL(c.NetWorth),
			cell(branchText(c.Branch)),
		)
	}
	fmt.Fprintf(&b, "\nPage %d of %d (%d clients, %d per page)\n",
		page.Page, page.TotalPages, page.TotalItems, page.PageSize)
	return b.String()
}

// DetailMarkdown renders one client and its accounts.
func DetailMarkdown(d core.ClientDetail) string {
	c := d.Client
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	if c.SocialName != "" {
		fmt.Fprintf(&b, "_Social name: %s_\n\n", c.SocialName)
	}

	age := "unknown"
	if d.AgeKnown {
		age = fmt.Sprintf("%d", d.Age)
	}

	fmt.Fprintln(&b, "| Field | Value |")
	fmt.Fprintln(&b, "|:---|:---|")
	for _, row := range [][2]string{
		{"ID", c.ID},
		{"Tax ID", core.FormatTaxID(c.TaxID) + " (" + c.TaxIDKind().String() + ")"},
		{"National ID", c.NationalID},
		{"Birth date", core.FormatDate(c.BirthDate)},
		{"Age", age},
		{"Email", c.Email},
		{"Address", c.Address},
		{"Marital status", c.MaritalStatus},
		{"Annual income", core.FormatBRL(c.AnnualIncome)},
		{"Net worth", core.FormatBRL(c.NetWorth)},
		{"Branch", branchText(c.Branch)},
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], cell(row[1]))
	}

	fmt.Fprintf(&b, "\n## Accounts (%d)\n\n", len(d.Accounts))
	if len(d.Accounts) == 0 {
		fmt.Fprintln(&b, "_No accounts._")
		return b.String()
	}
	fmt.Fprintln(&b, "| ID | Type | Balance | Credit limit | Available credit |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, a := range d.Accounts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			cell(a.ID), cell(a.RawType),
			core.FormatBRL(a.Balance), core.FormatBRL(a.CreditLimit), core.FormatBRL(a.AvailableCredit))
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | **%s** | **%s** |\n",
		core.FormatBRL(d.Totals.Balance), core.FormatBRL(d.Totals.CreditLimit), core.FormatBRL(d.Totals.AvailableCredit))
	return b.String()
}

// BranchesMarkdown renders the branch list.
func BranchesMarkdown(branches []core.Branch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Branches\n\n")
	if len(branches) == 0 {
		fmt.Fprintln(&b, "_No branches loaded._")
		return b.String()
	}
	fmt.Fprintln(&b, "| Code | Name | Address |")
	fmt.Fprintln(&b, "|---:|:---|:---|")
	for _, br := range branches {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", br.Code, cell(br.Name), cell(br.Address))
	}
	return b.String()
}

func ageText(birth, now time.Time) string {
	if age, ok := core.Age(birth, now); ok {
		return fmt.Sprintf("%d", age)
	}
	return "-"
}

func branchText(br *core.Branch) string {
	if br == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", br.Name, br.Code)
}

// cell escapes pipes so a value cannot break the table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
