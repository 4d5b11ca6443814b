package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/clientview/internal/config"
)

func TestNewServiceFromConfig(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"branches.csv": branchesCSV,
		"clients.csv":  clientsCSV,
		"accounts.csv": accountsCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	policyFile := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(policyFile, []byte("balance:\n  low_below: 100\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Sheets: config.SheetsConfig{
			BranchesURL: filepath.Join(dir, "branches.csv"),
			ClientsURL:  filepath.Join(dir, "clients.csv"),
			AccountsURL: "file://" + filepath.Join(dir, "accounts.csv"),
		},
		Pagination: config.PaginationConfig{PageSizes: []int{10, 50}},
		Report:     config.ReportConfig{ReferenceWage: 2000, PolicyFile: policyFile},
	}

	svc, err := NewServiceFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewServiceFromConfig() error = %v", err)
	}
	if got := svc.PageSizes().Default(); got != 10 {
		t.Errorf("default page size = %d, want 10", got)
	}
	p := svc.Policy()
	if !p.ReferenceWage.Equal(dec("2000")) || !p.Balance.LowBelow.Equal(dec("100")) {
		t.Errorf("policy = %+v", p)
	}

	snap := svc.Reload(context.Background())
	if len(snap.Errors) != 0 {
		t.Fatalf("Reload() errors = %v", snap.Errors)
	}
	if len(snap.Branches) != 2 || len(snap.Clients) != 3 || len(snap.Accounts) != 2 {
		t.Errorf("snapshot sizes = %d/%d/%d", len(snap.Branches), len(snap.Clients), len(snap.Accounts))
	}
}

func TestNewServiceFromConfigBadPolicy(t *testing.T) {
	cfg := &config.Config{Report: config.ReportConfig{PolicyFile: filepath.Join(t.TempDir(), "missing.yaml")}}
	if _, err := NewServiceFromConfig(cfg); err == nil {
		t.Error("expected error for missing policy file")
	}
}
