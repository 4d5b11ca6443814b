package core

// NormalizeBranch builds a Branch from a decoded branches-sheet record.
func NormalizeBranch(rec Record) Branch {
	return Branch{
		ID:      CleanCell(rec["id"]),
		Code:    ParseInt(rec["code"]),
		Name:    CleanCell(rec["name"]),
		Address: CleanCell(rec["address"]),
	}
}

// NormalizeClient builds a Client from a decoded clients-sheet record and
// attaches its branch when the code matches one in idx.
func NormalizeClient(rec Record, idx BranchIndex) Client {
	c := Client{
		ID:            CleanCell(rec["id"]),
		TaxID:         CleanCell(rec["taxId"]),
		NationalID:    CleanCell(rec["nationalId"]),
		BirthDate:     ParseDate(rec["birthDate"]),
		Name:          CleanCell(rec["name"]),
		SocialName:    CleanCell(rec["socialName"]),
		Email:         CleanCell(rec["email"]),
		Address:       CleanCell(rec["address"]),
		AnnualIncome:  ParseDecimal(rec["annualIncome"]),
		NetWorth:      ParseDecimal(rec["netWorth"]),
		MaritalStatus: CleanCell(rec["maritalStatus"]),
		BranchCode:    ParseInt(rec["branchCode"]),
	}
	c.Branch = idx.Lookup(c.BranchCode)
	return c
}

// NormalizeAccount builds an Account from a decoded accounts-sheet record and
// attaches its branch when the code matches one in idx.
func NormalizeAccount(rec Record, idx BranchIndex) Account {
	raw := CleanCell(rec["type"])
	a := Account{
		ID:              CleanCell(rec["id"]),
		OwnerTaxID:      CleanCell(rec["ownerTaxId"]),
		Type:            ParseAccountType(raw),
		RawType:         raw,
		Balance:         ParseDecimal(rec["balance"]),
		CreditLimit:     ParseDecimal(rec["creditLimit"]),
		AvailableCredit: ParseDecimal(rec["availableCredit"]),
		BranchCode:      ParseInt(rec["branchCode"]),
	}
	a.Branch = idx.Lookup(a.BranchCode)
	return a
}

// NormalizeBranches decodes every branch record.
func NormalizeBranches(recs []Record) []Branch {
	out := make([]Branch, len(recs))
	for i, rec := range recs {
		out[i] = NormalizeBranch(rec)
	}
	return out
}

// NormalizeClients decodes every client record against idx.
func NormalizeClients(recs []Record, idx BranchIndex) []Client {
	out := make([]Client, len(recs))
	for i, rec := range recs {
		out[i] = NormalizeClient(rec, idx)
	}
	return out
}

// NormalizeAccounts decodes every account record against idx.
func NormalizeAccounts(recs []Record, idx BranchIndex) []Account {
	out := make([]Account, len(recs))
	for i, rec := range recs {
		out[i] = NormalizeAccount(rec, idx)
	}
	return out
}
