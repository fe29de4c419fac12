// Package tam computes the annual Total Addressable Market per account,
// decomposed into the four independent product revenue components.
package tam

import (
	"fmt"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
)

// RevenueBasis records which revenue figure fed the revenue-share component.
type RevenueBasis string

const (
	BasisFiscalYear        RevenueBasis = "FISCAL_YEAR"
	BasisAnnualizedQuarter RevenueBasis = "ANNUALIZED_QUARTER"
	BasisMissing           RevenueBasis = "MISSING"
)

// Breakdown is the annual TAM for one account. The four components always
// sum exactly to Total; no rounding is applied before the report stage.
type Breakdown struct {
	AccountID string       `json:"account_id"`
	Tier      account.Tier `json:"tier"`

	DeveloperSeat    float64 `json:"developer_seat"`
	EnterpriseSeat   float64 `json:"enterprise_seat"`
	PerEmployeeAgent float64 `json:"per_employee_agent"`
	RevenueShare     float64 `json:"revenue_share"`
	Total            float64 `json:"total"`

	RevenueBasis RevenueBasis `json:"revenue_basis"`
	// DataGaps flags missing financial inputs. A gap zeroes the affected
	// components; it is never a fatal error.
	DataGaps []string `json:"data_gaps,omitempty"`
}

// Component returns one product's share of the breakdown.
func (b Breakdown) Component(p assumption.Product) float64 {
	switch p {
	case assumption.ProductDeveloperSeat:
		return b.DeveloperSeat
	case assumption.ProductEnterpriseSeat:
		return b.EnterpriseSeat
	case assumption.ProductPerEmployeeAgent:
		return b.PerEmployeeAgent
	case assumption.ProductRevenueShare:
		return b.RevenueShare
	default:
		return 0
	}
}

// Engine derives TAM breakdowns from product assumptions, honoring
// per-account pricing overrides.
type Engine struct {
	products  assumption.ProductAssumptions
	overrides map[string]assumption.ProductOverride
}

func NewEngine(set *assumption.Set) *Engine {
	return &Engine{products: set.Products, overrides: set.Overrides}
}

// effective resolves one leaf for an account: override if present,
// otherwise the global value.
func effective(global assumption.Value, override *float64) float64 {
	if override != nil {
		return *override
	}
	return global.Value
}

// Compute derives the annual TAM breakdown for one account.
func (e *Engine) Compute(acct *account.Account, tier account.Tier) Breakdown {
	b := Breakdown{AccountID: acct.ID, Tier: tier, RevenueBasis: BasisMissing}
	ov := e.overrides[acct.ID]

	devPrice := effective(e.products.DevSeatPriceMonth, ov.DevSeatPriceMonth)
	devEligibility := effective(e.products.DevEligibilityRate, ov.DevEligibilityRate)
	entPrice := effective(e.products.EntSeatPriceMonth, ov.EntSeatPriceMonth)
	entAdoption := effective(e.products.EntAdoptionRate, ov.EntAdoptionRate)
	agentsPerFTE := effective(e.products.AgentsPerEmployee, ov.AgentsPerEmployee)
	agentPrice := effective(e.products.AgentPriceMonth, ov.AgentPriceMonth)
	revShare := effective(e.products.RevenueShareFraction, ov.RevenueShareFraction)
	platformShare := effective(e.products.PlatformShareFraction, ov.PlatformShareFraction)

	// FTE-driven components.
	if acct.FTECount > 0 {
		b.DeveloperSeat = devPrice * (acct.FTECount * devEligibility) * 12
		b.EnterpriseSeat = entPrice * (acct.FTECount * entAdoption) * 12
		b.PerEmployeeAgent = agentsPerFTE * acct.FTECount * agentPrice * 12
	} else {
		b.DataGaps = append(b.DataGaps, fmt.Sprintf("%s: missing FTE count, seat and agent TAM set to 0", acct.ID))
	}

	// Revenue-share component: fiscal year-end figure preferred, latest
	// quarter annualized (x4) as fallback, recording which path ran.
	switch {
	case acct.AnnualRevenueFY != nil:
		b.RevenueBasis = BasisFiscalYear
		b.RevenueShare = *acct.AnnualRevenueFY * revShare * platformShare
	case acct.QuarterlyRevenue != nil:
		b.RevenueBasis = BasisAnnualizedQuarter
		b.RevenueShare = *acct.QuarterlyRevenue * 4 * revShare * platformShare
	default:
		b.DataGaps = append(b.DataGaps, fmt.Sprintf("%s: no revenue figure, revenue-share TAM set to 0", acct.ID))
	}

	if b.DeveloperSeat < 0 || b.EnterpriseSeat < 0 || b.PerEmployeeAgent < 0 || b.RevenueShare < 0 {
		// Negative inputs (e.g. a loss-making quarter annualized) would
		// poison every downstream stage; clamp and flag.
		b.DataGaps = append(b.DataGaps, fmt.Sprintf("%s: negative TAM component clamped to 0", acct.ID))
		b.DeveloperSeat = max0(b.DeveloperSeat)
		b.EnterpriseSeat = max0(b.EnterpriseSeat)
		b.PerEmployeeAgent = max0(b.PerEmployeeAgent)
		b.RevenueShare = max0(b.RevenueShare)
	}

	b.Total = b.DeveloperSeat + b.EnterpriseSeat + b.PerEmployeeAgent + b.RevenueShare
	return b
}

// ComputeAll derives breakdowns for every account in the index, keyed by
// account id.
func (e *Engine) ComputeAll(idx *account.Index) map[string]Breakdown {
	out := make(map[string]Breakdown, len(idx.Accounts))
	for _, acct := range idx.Accounts {
		out[acct.ID] = e.Compute(acct, idx.TierOf[acct.ID])
	}
	return out
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
