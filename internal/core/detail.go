package core

import (
	"errors"
	"time"
)

// ErrClientNotFound is returned when no client has the requested id.
var ErrClientNotFound = errors.New("client not found")

// ClientDetail is everything the detail screen shows for one client.
type ClientDetail struct {
	Client   Client    `json:"client"`
	Age      int       `json:"age"`
	AgeKnown bool      `json:"ageKnown"`
	Accounts []Account `json:"accounts"`
	Totals   Totals    `json:"totals"`
}

// Detail joins c with its accounts. Accounts owned by other tax ids,
// including orphans, are never included.
func Detail(c Client, idx AccountIndex, now time.Time) ClientDetail {
	accounts := idx.For(c.TaxID)
	if accounts == nil {
		accounts = []Account{}
	}
	age, ok := Age(c.BirthDate, now)
	return ClientDetail{
		Client:   c,
		Age:      age,
		AgeKnown: ok,
		Accounts: accounts,
		Totals:   SumAccounts(accounts),
	}
}
