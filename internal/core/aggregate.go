package core

// aggregate.go buckets clients into the categorical histograms shown on the
// reports screen and written by the exporters.
//
// Every client is counted once per histogram, except where a band does not
// apply: incomes below one reference wage and ages outside 18+ (or unknown)
// are left out of their histograms. Account totals only include accounts
// whose owner tax id equals the client's tax id.

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier labels.
const (
	LabelLow    = "Low"
	LabelMedium = "Medium"
	LabelHigh   = "High"
)

// Income band labels, in multiples of the reference wage (RW).
const (
	LabelIncome1to4   = "1-4 RW"
	LabelIncome5to10  = "5-10 RW"
	LabelIncome11to20 = "11-20 RW"
	LabelIncome20Plus = "20+ RW"
)

// Age band labels.
const (
	LabelAge18to25 = "18-25"
	LabelAge26to40 = "26-40"
	LabelAge41to60 = "41-60"
	LabelAge60Plus = "60+"
)

// Metric names a histogram.
type Metric string

const (
	MetricBalance         Metric = "balance"
	MetricCreditLimit     Metric = "creditLimit"
	MetricAvailableCredit Metric = "availableCredit"
	MetricIncome          Metric = "income"
	MetricAge             Metric = "age"
)

// Bucket is one category of a histogram.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Histogram counts clients per category. Buckets keep their display order.
type Histogram struct {
	Metric  Metric   `json:"metric"`
	Title   string   `json:"title"`
	Buckets []Bucket `json:"buckets"`
}

func newHistogram(metric Metric, title string, labels ...string) Histogram {
	h := Histogram{Metric: metric, Title: title, Buckets: make([]Bucket, len(labels))}
	for i, l := range labels {
		h.Buckets[i].Label = l
	}
	return h
}

func (h *Histogram) add(label string) {
	for i := range h.Buckets {
		if h.Buckets[i].Label == label {
			h.Buckets[i].Count++
			return
		}
	}
}

// Count returns the count for label, or zero for an unknown label.
func (h Histogram) Count(label string) int {
	for _, b := range h.Buckets {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

// Map returns the histogram as label → count.
func (h Histogram) Map() map[string]int {
	m := make(map[string]int, len(h.Buckets))
	for _, b := range h.Buckets {
		m[b.Label] = b.Count
	}
	return m
}

// Total returns the number of clients counted in the histogram.
func (h Histogram) Total() int {
	n := 0
	for _, b := range h.Buckets {
		n += b.Count
	}
	return n
}

// Totals sums the money held across a client's accounts.
type Totals struct {
	Accounts        int             `json:"accounts"`
	Balance         decimal.Decimal `json:"balance"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
}

// SumAccounts adds up balances and credit across accounts.
func SumAccounts(accounts []Account) Totals {
	t := Totals{
		Accounts:        len(accounts),
		Balance:         decimal.Zero,
		CreditLimit:     decimal.Zero,
		AvailableCredit: decimal.Zero,
	}
	for _, a := range accounts {
		t.Balance = t.Balance.Add(a.Balance)
		t.CreditLimit = t.CreditLimit.Add(a.CreditLimit)
		t.AvailableCredit = t.AvailableCredit.Add(a.AvailableCredit)
	}
	return t
}

// AccountIndex groups accounts by owner tax id.
type AccountIndex map[string][]Account

// IndexAccounts groups accounts by OwnerTaxID, keeping input order.
// Accounts with an empty owner tax id belong to nobody.
func IndexAccounts(accounts []Account) AccountIndex {
	idx := make(AccountIndex)
	for _, a := range accounts {
		if a.OwnerTaxID == "" {
			continue
		}
		idx[a.OwnerTaxID] = append(idx[a.OwnerTaxID], a)
	}
	return idx
}

// For returns the accounts owned by taxID.
func (idx AccountIndex) For(taxID string) []Account {
	if taxID == "" {
		return nil
	}
	return idx[taxID]
}

// IncomeBand returns the income band label for income, expressed in
// multiples of wage. Incomes below one wage have no band.
func IncomeBand(income, wage decimal.Decimal) (string, bool) {
	if !wage.IsPositive() {
		return "", false
	}
	m := income.Div(wage)
	switch {
	case m.LessThan(decimal.NewFromInt(1)):
		return "", false
	case m.LessThanOrEqual(decimal.NewFromInt(4)):
		return LabelIncome1to4, true
	case m.LessThanOrEqual(decimal.NewFromInt(10)):
		return LabelIncome5to10, true
	case m.LessThanOrEqual(decimal.NewFromInt(20)):
		return LabelIncome11to20, true
	default:
		return LabelIncome20Plus, true
	}
}

// AgeBand returns the age band label for age. Ages under 18 have no band.
func AgeBand(age int) (string, bool) {
	switch {
	case age >= 18 && age <= 25:
		return LabelAge18to25, true
	case age >= 26 && age <= 40:
		return LabelAge26to40, true
	case age >= 41 && age <= 60:
		return LabelAge41to60, true
	case age > 60:
		return LabelAge60Plus, true
	default:
		return "", false
	}
}

// Report holds every histogram for one set of clients and accounts.
type Report struct {
	GeneratedAt   time.Time       `json:"generatedAt"`
	ReferenceWage decimal.Decimal `json:"referenceWage"`
	Clients       int             `json:"clients"`
	Histograms    []Histogram     `json:"histograms"`
}

// Histogram returns the histogram for metric.
func (r Report) Histogram(metric Metric) (Histogram, bool) {
	for _, h := range r.Histograms {
		if h.Metric == metric {
			return h, true
		}
	}
	return Histogram{}, false
}

// Aggregate buckets clients by account totals, income and age.
// The inputs are only read.
func Aggregate(clients []Client, accounts []Account, policy Policy, now time.Time) Report {
	balance := newHistogram(MetricBalance, "Balance distribution", LabelLow, LabelMedium, LabelHigh)
	credit := newHistogram(MetricCreditLimit, "Credit limit distribution", LabelLow, LabelMedium, LabelHigh)
	available := newHistogram(MetricAvailableCredit, "Available credit distribution", LabelLow, LabelMedium, LabelHigh)
	income := newHistogram(MetricIncome,
		"Annual income distribution (reference wage: "+FormatBRL(policy.ReferenceWage)+")",
		LabelIncome1to4, LabelIncome5to10, LabelIncome11to20, LabelIncome20Plus)
	ages := newHistogram(MetricAge, "Client age distribution",
		LabelAge18to25, LabelAge26to40, LabelAge41to60, LabelAge60Plus)

	idx := IndexAccounts(accounts)
	for _, c := range clients {
		totals := SumAccounts(idx.For(c.TaxID))

		balance.add(policy.Balance.Label(totals.Balance))
		credit.add(policy.CreditLimit.Label(totals.CreditLimit))
		available.add(policy.AvailableCredit.Label(totals.AvailableCredit))

		if label, ok := IncomeBand(c.AnnualIncome, policy.ReferenceWage); ok {
			income.add(label)
		}
		if age, ok := Age(c.BirthDate, now); ok {
			if label, ok := AgeBand(age); ok {
				ages.add(label)
			}
		}
	}

	return Report{
		GeneratedAt:   now,
		ReferenceWage: policy.ReferenceWage,
		Clients:       len(clients),
		Histograms:    []Histogram{balance, credit, available, income, ages},
	}
}
