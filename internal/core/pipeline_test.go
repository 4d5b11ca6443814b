package core

import (
	"testing"
)

const (
	pipelineClientsCSV = "id,cpfCnpj,rg,dataNascimento,nome,nomeSocial,email,endereco,rendaAnual,patrimonio,estadoCivil,codigoAgencia\n" +
		"c1,11111111111,,1990-03-15,Ana Souza,,ana@example.com,Rua A,60000,150000,Casada,1\n" +
		"c2,22222222222,,01/12/2000,Bruno Lima,,bruno@example.com,Rua B,30000,5000,Solteiro,1\n" +
		"c3,33333333333,,,Carla Dias,,carla@example.com,Rua C,1000,0,Solteira,1\n"
	pipelineAccountsCSV = "id,cpfCnpj,tipo,saldo,limiteCredito,creditoDisponivel,codigoAgencia\n" +
		"a1,11111111111,Corrente,4000,1000,500,1\n" +
		"a2,99999999999,Poupança,50000,0,0,1\n"
)

func decodePipeline() ([]Client, []Account) {
	idx := NewBranchIndex(NormalizeBranches(Decode(branchesCSV, BranchColumns)))
	clients := NormalizeClients(Decode(pipelineClientsCSV, ClientColumns), idx)
	accounts := NormalizeAccounts(Decode(pipelineAccountsCSV, AccountColumns), idx)
	return clients, accounts
}

func TestPipelineExcludesOrphanAccounts(t *testing.T) {
	clients, accounts := decodePipeline()
	if len(clients) != 3 || len(accounts) != 2 {
		t.Fatalf("decoded %d clients, %d accounts; want 3, 2", len(clients), len(accounts))
	}

	idx := IndexAccounts(accounts)
	wantBalances := map[string]string{"c1": "4000", "c2": "0", "c3": "0"}
	for _, c := range clients {
		d := Detail(c, idx, refNow)
		for _, a := range d.Accounts {
			if a.OwnerTaxID != c.TaxID {
				t.Errorf("Detail(%s) includes account %s owned by %s", c.ID, a.ID, a.OwnerTaxID)
			}
		}
		if !d.Totals.Balance.Equal(dec(wantBalances[c.ID])) {
			t.Errorf("Detail(%s) balance = %s, want %s", c.ID, d.Totals.Balance, wantBalances[c.ID])
		}
	}

	report := Aggregate(clients, accounts, DefaultPolicy(), refNow)
	balance, ok := report.Histogram(MetricBalance)
	if !ok {
		t.Fatal("balance histogram missing")
	}
	if got := balance.Map(); got[LabelLow] != 3 || got[LabelMedium] != 0 || got[LabelHigh] != 0 {
		t.Errorf("balance histogram = %v, want Low:3", got)
	}
}

func TestFilterExactNameAlwaysMatches(t *testing.T) {
	clients := sampleClients()
	for _, c := range clients {
		for _, matchBranch := range []bool{false, true} {
			got := Filter(clients, FilterParams{Search: c.Name, MatchBranch: matchBranch}, refNow)
			found := false
			for _, g := range got {
				if g.ID == c.ID {
					found = true
				}
			}
			if !found {
				t.Errorf("Filter(Search=%q, MatchBranch=%v) = %v, missing %s", c.Name, matchBranch, clientNames(got), c.ID)
			}
		}
	}
}
