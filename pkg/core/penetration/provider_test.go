package penetration

import (
	"testing"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
)

func testConfig() assumption.PenetrationConfig {
	actual := 0.04
	return assumption.PenetrationConfig{
		TierDefaults: map[account.Tier]map[assumption.Product]assumption.QuarterSchedule{
			account.TierEnterprise: {
				assumption.ProductDeveloperSeat: {
					1: {Target: 0.05},
					2: {Target: 0.10, Actual: &actual},
					3: {Target: 0.15},
				},
			},
		},
		AccountOverrides: map[string]map[assumption.Product]assumption.QuarterSchedule{
			"acct-1": {
				// Sparse override: only Q2 customized.
				assumption.ProductDeveloperSeat: {
					2: {Target: 0.50},
				},
			},
		},
	}
}

func TestResolveHierarchy(t *testing.T) {
	p := NewProvider(testConfig())

	// Q2: exact-quarter account override wins.
	res := p.Resolve("acct-1", account.TierEnterprise, assumption.ProductDeveloperSeat, 2)
	if res.Target != 0.50 || res.Provenance != assumption.ProvenanceAccountOverride {
		t.Errorf("Q2: expected 0.50/ACCOUNT_OVERRIDE, got %f/%s", res.Target, res.Provenance)
	}

	// Q1: override is sparse, falls back to tier default.
	res = p.Resolve("acct-1", account.TierEnterprise, assumption.ProductDeveloperSeat, 1)
	if res.Target != 0.05 || res.Provenance != assumption.ProvenanceTierDefault {
		t.Errorf("Q1: expected 0.05/TIER_DEFAULT, got %f/%s", res.Target, res.Provenance)
	}

	// Account without override uses tier default, including the actual.
	res = p.Resolve("acct-2", account.TierEnterprise, assumption.ProductDeveloperSeat, 2)
	if res.Target != 0.10 || res.Provenance != assumption.ProvenanceTierDefault {
		t.Errorf("acct-2 Q2: expected 0.10/TIER_DEFAULT, got %f/%s", res.Target, res.Provenance)
	}
	if res.Actual == nil || *res.Actual != 0.04 {
		t.Error("observed actual lost in resolution")
	}
}

func TestResolveZeroFallback(t *testing.T) {
	p := NewProvider(testConfig())

	// Quarter beyond the defined schedule.
	res := p.Resolve("acct-1", account.TierEnterprise, assumption.ProductDeveloperSeat, 9)
	if res.Target != 0 || res.Provenance != assumption.ProvenanceUnset {
		t.Errorf("undefined quarter: expected 0/UNSET, got %f/%s", res.Target, res.Provenance)
	}

	// Tier with no defaults at all.
	res = p.Resolve("acct-3", account.TierCommercial, assumption.ProductEnterpriseSeat, 1)
	if res.Target != 0 {
		t.Errorf("unconfigured tier: expected 0, got %f", res.Target)
	}
}
