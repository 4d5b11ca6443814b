package core

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayCurrency is the ISO code used for every amount in the sheets.
const displayCurrency = money.BRL

// FormatBRL formats an amount as Brazilian reais, e.g. "R$1.234,56".
func FormatBRL(d decimal.Decimal) string {
	cur := money.GetCurrency(displayCurrency)
	cents := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(cents, displayCurrency).Display()
}

// FormatTaxID masks an 11-digit CPF as 000.000.000-00 and a 14-digit CNPJ as
// 00.000.000/0000-00. Any other value is returned as is.
func FormatTaxID(s string) string {
	if !allDigits(s) {
		return s
	}
	switch len(s) {
	case 11:
		return s[0:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:11]
	case 14:
		return s[0:2] + "." + s[2:5] + "." + s[5:8] + "/" + s[8:12] + "-" + s[12:14]
	default:
		return s
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatDate formats a date day-first (02/01/2006). The invalid sentinel formats as "".
func FormatDate(t time.Time) string {
	if !IsValidDate(t) {
		return ""
	}
	return t.Format("02/01/2006")
}
