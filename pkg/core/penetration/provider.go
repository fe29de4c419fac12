// Package penetration resolves time-phased adoption targets from the
// three-level override hierarchy: account-specific override, then the
// account tier's default schedule, then zero.
package penetration

import (
	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
)

// Resolution is the outcome of one (account, product, quarter) lookup.
type Resolution struct {
	Target     float64               `json:"target"`
	Actual     *float64              `json:"actual,omitempty"`
	Provenance assumption.Provenance `json:"provenance"`
}

// Provider is a pure lookup over an immutable penetration configuration.
type Provider struct {
	cfg assumption.PenetrationConfig
}

func NewProvider(cfg assumption.PenetrationConfig) *Provider {
	return &Provider{cfg: cfg}
}

// Resolve returns the adoption target for an account/product/quarter.
// Account overrides may be sparse: an override entry wins only for the
// exact quarters it defines; every other quarter falls back to the tier
// default, and an absent tier default resolves to zero.
func (p *Provider) Resolve(accountID string, tier account.Tier, product assumption.Product, quarter int) Resolution {
	if byProduct, ok := p.cfg.AccountOverrides[accountID]; ok {
		if entry, ok := byProduct[product][quarter]; ok {
			return Resolution{Target: entry.Target, Actual: entry.Actual, Provenance: assumption.ProvenanceAccountOverride}
		}
	}
	if byProduct, ok := p.cfg.TierDefaults[tier]; ok {
		if entry, ok := byProduct[product][quarter]; ok {
			return Resolution{Target: entry.Target, Actual: entry.Actual, Provenance: assumption.ProvenanceTierDefault}
		}
	}
	return Resolution{Provenance: assumption.ProvenanceUnset}
}
