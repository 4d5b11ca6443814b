package core

import "testing"

func TestDetail(t *testing.T) {
	c := sampleClients()[0]
	idx := IndexAccounts([]Account{
		{ID: "a1", OwnerTaxID: c.TaxID, Type: AccountChecking, Balance: dec("1200")},
		{ID: "a2", OwnerTaxID: "other", Balance: dec("99999")},
		{ID: "a3", OwnerTaxID: c.TaxID, Type: AccountSavings, Balance: dec("800"), CreditLimit: dec("5000")},
	})

	d := Detail(c, idx, refNow)

	if d.Client.ID != c.ID {
		t.Errorf("Client.ID = %s, want %s", d.Client.ID, c.ID)
	}
	if !d.AgeKnown || d.Age != 35 {
		t.Errorf("Age = (%d, %v), want (35, true)", d.Age, d.AgeKnown)
	}
	if len(d.Accounts) != 2 || d.Accounts[0].ID != "a1" || d.Accounts[1].ID != "a3" {
		t.Errorf("Accounts = %+v, want a1 and a3", d.Accounts)
	}
	if !d.Totals.Balance.Equal(dec("2000")) || !d.Totals.CreditLimit.Equal(dec("5000")) {
		t.Errorf("Totals = %+v", d.Totals)
	}
}

func TestDetailWithoutAccounts(t *testing.T) {
	c := sampleClients()[2]
	d := Detail(c, IndexAccounts(nil), refNow)

	if d.Accounts == nil || len(d.Accounts) != 0 {
		t.Errorf("Accounts = %#v, want empty non-nil", d.Accounts)
	}
	if d.AgeKnown {
		t.Error("AgeKnown = true for a client without birth date")
	}
	if d.Totals.Accounts != 0 || !d.Totals.Balance.IsZero() {
		t.Errorf("Totals = %+v, want zero", d.Totals)
	}
}
