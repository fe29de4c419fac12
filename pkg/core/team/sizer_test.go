package team

import (
	"math"
	"testing"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/tam"
)

func TestAggressiveRound(t *testing.T) {
	cases := []struct {
		raw  float64
		want float64
	}{
		// Below one: retained as a two-decimal fraction.
		{0.2423, 0.24}, // 72.69M / 300M
		{0.995, 1.0},   // two-decimal rounding, not the 0.75 policy
		{0.5, 0.5},
		// At or above one: floor unless remainder >= 0.75.
		{1.7, 1},
		{1.8, 2},
		{1.75, 2},
		{3.0, 3},
		{2.749, 2},
		// Garbage in, zero out.
		{-0.5, 0},
	}
	for _, c := range cases {
		if got := AggressiveRound(c.raw, 0.75); got != c.want {
			t.Errorf("AggressiveRound(%f): expected %f, got %f", c.raw, c.want, got)
		}
	}
}

func sizerFixture(totals map[string]float64) (*account.Index, map[string]tam.Breakdown) {
	th := account.Thresholds{Mega: 700e9, Strategic: 100e9, Enterprise: 10e9, Commercial: 1e9}
	var accounts []*account.Account
	breakdowns := make(map[string]tam.Breakdown)
	for id, total := range totals {
		a := &account.Account{ID: id, TotalAssets: 50e9} // all Enterprise
		accounts = append(accounts, a)
		breakdowns[id] = tam.Breakdown{AccountID: id, Tier: account.TierEnterprise, PerEmployeeAgent: total, Total: total}
	}
	return account.BuildIndex(accounts, th), breakdowns
}

func TestSizeTeamFractionalShare(t *testing.T) {
	// 72.69M TAM against 300M per AE -> raw 0.2423, retained as 0.24.
	idx, breakdowns := sizerFixture(map[string]float64{"bank-1": 72690000})
	capacity := assumption.CapacityAssumptions{
		TAMPerAE:         map[account.Tier]float64{account.TierEnterprise: 300e6},
		SEPerAE:          map[account.Tier]float64{account.TierEnterprise: 0.5},
		RoundUpThreshold: assumption.Global(0.75),
	}

	sizings := SizeTeam(idx, breakdowns, capacity)
	var ent TierSizing
	for _, s := range sizings {
		if s.Tier == account.TierEnterprise {
			ent = s
		}
	}
	if len(ent.Accounts) != 1 {
		t.Fatalf("expected 1 sized account, got %d", len(ent.Accounts))
	}
	if got := ent.Accounts[0].AE; got != 0.24 {
		t.Errorf("expected fractional AE share 0.24, got %f", got)
	}
	if ent.AE != 0.24 {
		t.Errorf("tier AE total: expected 0.24, got %f", ent.AE)
	}
}

func TestTierTotalIsSumOfRoundedShares(t *testing.T) {
	// Three accounts with raw shares 1.7, 1.8, 0.2423 (TAM / 100M each).
	// Rounded per account: 1 + 2 + 0.24 = 3.24.
	// Rounding the tier aggregate instead (3.7423 -> 3) would be wrong.
	idx, breakdowns := sizerFixture(map[string]float64{
		"bank-a": 170e6,
		"bank-b": 180e6,
		"bank-c": 24.23e6,
	})
	capacity := assumption.CapacityAssumptions{
		TAMPerAE:         map[account.Tier]float64{account.TierEnterprise: 100e6},
		SEPerAE:          map[account.Tier]float64{account.TierEnterprise: 0},
		RoundUpThreshold: assumption.Global(0.75),
	}

	sizings := SizeTeam(idx, breakdowns, capacity)
	for _, s := range sizings {
		if s.Tier != account.TierEnterprise {
			continue
		}
		if math.Abs(s.AE-3.24) > 1e-9 {
			t.Errorf("tier AE must be sum of rounded shares 3.24, got %f", s.AE)
		}
		var sum float64
		for _, share := range s.Accounts {
			sum += share.AE
		}
		if math.Abs(s.AE-sum) > 1e-9 {
			t.Errorf("tier total %f diverges from share sum %f", s.AE, sum)
		}
	}
}

func TestSESharesFollowRatioThenRound(t *testing.T) {
	// Raw AE 3.5 with 0.5 SE/AE -> raw SE 1.75, aggressive-rounds to 2.
	idx, breakdowns := sizerFixture(map[string]float64{"bank-x": 350e6})
	capacity := assumption.CapacityAssumptions{
		TAMPerAE:         map[account.Tier]float64{account.TierEnterprise: 100e6},
		SEPerAE:          map[account.Tier]float64{account.TierEnterprise: 0.5},
		RoundUpThreshold: assumption.Global(0.75),
	}
	sizings := SizeTeam(idx, breakdowns, capacity)
	for _, s := range sizings {
		if s.Tier != account.TierEnterprise {
			continue
		}
		if s.Accounts[0].AE != 3 { // 3.5 floors
			t.Errorf("expected AE 3, got %f", s.Accounts[0].AE)
		}
		if s.Accounts[0].SE != 2 { // 1.75 ceilings
			t.Errorf("expected SE 2, got %f", s.Accounts[0].SE)
		}
	}
}

func TestUnconfiguredTierSizesToZero(t *testing.T) {
	idx, breakdowns := sizerFixture(map[string]float64{"bank-1": 100e6})
	capacity := assumption.CapacityAssumptions{RoundUpThreshold: assumption.Global(0.75)}
	for _, s := range SizeTeam(idx, breakdowns, capacity) {
		if s.AE != 0 || s.SE != 0 {
			t.Errorf("tier %s without tamPerAE must size to zero, got AE %f SE %f", s.Tier, s.AE, s.SE)
		}
	}
}
