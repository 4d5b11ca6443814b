// Package core provides the client/account data pipeline.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is one decoded CSV line keyed by header name.
// Records never leave the normalizer; everything downstream uses typed values.
type Record map[string]string

// Branch is a bank agency, identified by its numeric code.
type Branch struct {
	ID      string `json:"id"`
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// BranchIndex maps a branch code to its branch.
type BranchIndex map[int]*Branch

// NewBranchIndex indexes branches by code. The first branch wins on duplicate codes.
func NewBranchIndex(branches []Branch) BranchIndex {
	idx := make(BranchIndex, len(branches))
	for i := range branches {
		b := &branches[i]
		if _, exists := idx[b.Code]; !exists {
			idx[b.Code] = b
		}
	}
	return idx
}

// Lookup returns the branch for code, or nil when none matches.
func (idx BranchIndex) Lookup(code int) *Branch {
	if idx == nil {
		return nil
	}
	return idx[code]
}

// TaxIDKind classifies a tax id by its length.
type TaxIDKind int

const (
	TaxIDUnknown    TaxIDKind = iota
	TaxIDIndividual           // 11 digits (CPF)
	TaxIDEntity               // 14 digits (CNPJ)
)

func (k TaxIDKind) String() string {
	switch k {
	case TaxIDIndividual:
		return "individual"
	case TaxIDEntity:
		return "entity"
	default:
		return "unknown"
	}
}

// Client is a bank customer.
type Client struct {
	ID            string          `json:"id"`
	TaxID         string          `json:"taxId"`
	NationalID    string          `json:"nationalId,omitempty"`
	BirthDate     time.Time       `json:"birthDate"`
	Name          string          `json:"name"`
	SocialName    string          `json:"socialName,omitempty"`
	Email         string          `json:"email"`
	Address       string          `json:"address"`
	AnnualIncome  decimal.Decimal `json:"annualIncome"`
	NetWorth      decimal.Decimal `json:"netWorth"`
	MaritalStatus string          `json:"maritalStatus"`
	BranchCode    int             `json:"branchCode"`
	Branch        *Branch         `json:"branch,omitempty"`
}

// TaxIDKind reports whether the client is an individual or an entity.
func (c Client) TaxIDKind() TaxIDKind {
	switch len(c.TaxID) {
	case 11:
		return TaxIDIndividual
	case 14:
		return TaxIDEntity
	default:
		return TaxIDUnknown
	}
}

// AccountType is the kind of an account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountOther    AccountType = "other"
)

// ParseAccountType maps the sheet's account type text to an AccountType.
// Both the Portuguese labels used by the spreadsheet and English ones are accepted.
func ParseAccountType(s string) AccountType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "corrente", "conta corrente", "checking":
		return AccountChecking
	case "poupança", "poupanca", "conta poupança", "savings":
		return AccountSavings
	default:
		return AccountOther
	}
}

// Account is a financial account owned by the client whose TaxID equals OwnerTaxID.
type Account struct {
	ID              string          `json:"id"`
	OwnerTaxID      string          `json:"ownerTaxId"`
	Type            AccountType     `json:"type"`
	RawType         string          `json:"rawType"`
	Balance         decimal.Decimal `json:"balance"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
	BranchCode      int             `json:"branchCode"`
	Branch          *Branch         `json:"branch,omitempty"`
}

// Sheet names one of the three source spreadsheets.
type Sheet string

const (
	SheetBranches Sheet = "branches"
	SheetClients  Sheet = "clients"
	SheetAccounts Sheet = "accounts"
)

// Fixed column orders. They override whatever header row the export carries.
var (
	BranchColumns  = []string{"id", "code", "name", "address"}
	ClientColumns  = []string{"id", "taxId", "nationalId", "birthDate", "name", "socialName", "email", "address", "annualIncome", "netWorth", "maritalStatus", "branchCode"}
	AccountColumns = []string{"id", "ownerTaxId", "type", "balance", "creditLimit", "availableCredit", "branchCode"}
)

// SheetError records a sheet that failed to load.
type SheetError struct {
	Sheet  Sheet
	Source string
	Err    error
}

func (e SheetError) Error() string {
	return string(e.Sheet) + ": " + e.Err.Error()
}

func (e SheetError) Unwrap() error { return e.Err }

// Snapshot is one complete, immutable load of the three sheets.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time
	Branches []Branch
	Clients  []Client
	Accounts []Account
	Errors   []SheetError
}

// Failed reports whether the given sheet failed to load in this snapshot.
func (s *Snapshot) Failed(sheet Sheet) bool {
	for _, e := range s.Errors {
		if e.Sheet == sheet {
			return true
		}
	}
	return false
}

// FindClient returns the client with the given id.
func (s *Snapshot) FindClient(id string) (Client, bool) {
	for _, c := range s.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// SortKey selects the client field used for ordering.
type SortKey string

const (
	SortByName         SortKey = "name"
	SortByAnnualIncome SortKey = "annualIncome"
	SortByNetWorth     SortKey = "netWorth"
	SortByAge          SortKey = "age"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// PageResult is one window of an ordered collection.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
