package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// refNow is the clock used by tests that depend on age.
var refNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int { return &v }

func clientNames(clients []Client) []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	return names
}

// sampleClients is a small, varied client list. Branch 1 is "Centro".
func sampleClients() []Client {
	centro := &Branch{ID: "b1", Code: 1, Name: "Centro", Address: "Rua Sete, 100"}
	praia := &Branch{ID: "b2", Code: 27, Name: "Praia do Canto", Address: "Av. Rio Branco, 9"}
	return []Client{
		{ID: "1", Name: "Ana Souza", TaxID: "12345678901", Email: "ana@example.com",
			BirthDate: date(1990, time.March, 15), AnnualIncome: dec("60000"), NetWorth: dec("150000"),
			BranchCode: 1, Branch: centro},
		{ID: "2", Name: "bruno lima", TaxID: "98765432100", Email: "BRUNO@corp.com",
			BirthDate: date(2000, time.December, 1), AnnualIncome: dec("30000"), NetWorth: dec("5000"),
			BranchCode: 27, Branch: praia},
		{ID: "3", Name: "Carla Dias", TaxID: "11222333000181", Email: "contato@dias.com",
			BirthDate: time.Time{}, AnnualIncome: dec("250000"), NetWorth: dec("900000"),
			BranchCode: 99},
		{ID: "4", Name: "Élio Prado", TaxID: "55566677788", Email: "elio@example.com",
			BirthDate: date(1960, time.June, 16), AnnualIncome: dec("30000"), NetWorth: dec("300000"),
			BranchCode: 1, Branch: centro},
	}
}
