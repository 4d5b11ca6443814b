package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultReferenceWage is the monthly minimum wage used to express income as a multiple.
const DefaultReferenceWage = 1518

// Tiers splits an amount into Low / Medium / High.
// Amounts below LowBelow are Low, below MediumBelow are Medium, the rest High.
type Tiers struct {
	LowBelow    decimal.Decimal
	MediumBelow decimal.Decimal
}

// Label returns the tier label for v.
func (t Tiers) Label(v decimal.Decimal) string {
	switch {
	case v.LessThan(t.LowBelow):
		return LabelLow
	case v.LessThan(t.MediumBelow):
		return LabelMedium
	default:
		return LabelHigh
	}
}

func (t Tiers) validate(name string) error {
	if !t.LowBelow.LessThan(t.MediumBelow) {
		return fmt.Errorf("%s: low_below (%s) must be less than medium_below (%s)", name, t.LowBelow, t.MediumBelow)
	}
	return nil
}

// Policy holds the band boundaries used by Aggregate.
type Policy struct {
	ReferenceWage   decimal.Decimal
	Balance         Tiers
	CreditLimit     Tiers
	AvailableCredit Tiers
}

// DefaultPolicy returns the boundaries the reports have always used.
func DefaultPolicy() Policy {
	return Policy{
		ReferenceWage:   decimal.NewFromInt(DefaultReferenceWage),
		Balance:         Tiers{LowBelow: decimal.NewFromInt(5000), MediumBelow: decimal.NewFromInt(20000)},
		CreditLimit:     Tiers{LowBelow: decimal.NewFromInt(5000), MediumBelow: decimal.NewFromInt(15000)},
		AvailableCredit: Tiers{LowBelow: decimal.NewFromInt(3000), MediumBelow: decimal.NewFromInt(10000)},
	}
}

// Validate checks that every tier is increasing and the wage is positive.
func (p Policy) Validate() error {
	var errs []string
	if !p.ReferenceWage.IsPositive() {
		errs = append(errs, "reference_wage must be positive")
	}
	for _, t := range []struct {
		name  string
		tiers Tiers
	}{
		{"balance", p.Balance},
		{"credit_limit", p.CreditLimit},
		{"available_credit", p.AvailableCredit},
	} {
		if err := t.tiers.validate(t.name); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid report policy:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// policyFile is the YAML shape of a policy file. Missing keys keep the base value.
type policyFile struct {
	ReferenceWage   *float64   `yaml:"reference_wage"`
	Balance         *tiersFile `yaml:"balance"`
	CreditLimit     *tiersFile `yaml:"credit_limit"`
	AvailableCredit *tiersFile `yaml:"available_credit"`
}

type tiersFile struct {
	LowBelow    *float64 `yaml:"low_below"`
	MediumBelow *float64 `yaml:"medium_below"`
}

func (f *tiersFile) apply(t Tiers) Tiers {
	if f == nil {
		return t
	}
	if f.LowBelow != nil {
		t.LowBelow = decimal.NewFromFloat(*f.LowBelow)
	}
	if f.MediumBelow != nil {
		t.MediumBelow = decimal.NewFromFloat(*f.MediumBelow)
	}
	return t
}

// ParsePolicy overlays the YAML document data on base and validates the result.
//
// Example:
//
//	reference_wage: 1518
//	balance:
//	  low_below: 5000
//	  medium_below: 20000
func ParsePolicy(data []byte, base Policy) (Policy, error) {
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("parse report policy: %w", err)
	}

	p := base
	if f.ReferenceWage != nil {
		p.ReferenceWage = decimal.NewFromFloat(*f.ReferenceWage)
	}
	p.Balance = f.Balance.apply(p.Balance)
	p.CreditLimit = f.CreditLimit.apply(p.CreditLimit)
	p.AvailableCredit = f.AvailableCredit.apply(p.AvailableCredit)

	if err := p.Validate(); err != nil {
		return base, err
	}
	return p, nil
}

// LoadPolicy reads a policy file from path and overlays it on base.
// An empty path returns base unchanged.
func LoadPolicy(path string, base Policy) (Policy, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, fmt.Errorf("report policy file %s does not exist: %w", path, err)
		}
		return base, fmt.Errorf("read report policy: %w", err)
	}
	return ParsePolicy(data, base)
}
