// Package projection combines annual TAM with penetration schedules into
// quarterly and three-year revenue projections per account.
package projection

import (
	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/penetration"
	"bank_dashboard/pkg/core/tam"
)

// YearOfQuarter maps a horizon quarter (1..12) to its planning year (1..3).
func YearOfQuarter(quarter int) int { return (quarter + 3) / 4 }

// FourthQuarterOf returns the Q4 horizon quarter of a planning year.
func FourthQuarterOf(year int) int { return 4 * year }

// QuarterRevenue is one quarter's projected revenue for an account.
type QuarterRevenue struct {
	Quarter   int                            `json:"quarter"`
	ByProduct map[assumption.Product]float64 `json:"by_product"`
	Total     float64                        `json:"total"`
}

// AccountProjection is the full 12-quarter projection for one account.
//
// ThreeYearAchievable is the sum of all 12 quarters. RunRateRevenue is a
// different animal: the Q4-of-year figure annualized (x4), a snapshot of
// exit velocity. The two are reported separately and must never be
// conflated.
type AccountProjection struct {
	AccountID           string                           `json:"account_id"`
	Quarters            []QuarterRevenue                 `json:"quarters"`
	ThreeYearAchievable float64                          `json:"three_year_achievable"`
	RunRateRevenue      [assumption.HorizonYears]float64 `json:"run_rate_revenue"`
}

// Projector derives projections from TAM breakdowns and the penetration
// provider. Pure; safe for concurrent use across request snapshots.
type Projector struct {
	provider *penetration.Provider
}

func NewProjector(provider *penetration.Provider) *Projector {
	return &Projector{provider: provider}
}

// QuarterlyRevenue computes one quarter:
// sum over products of (annual TAM / 4) * penetration target.
func (p *Projector) QuarterlyRevenue(breakdown tam.Breakdown, tier account.Tier, quarter int) QuarterRevenue {
	q := QuarterRevenue{Quarter: quarter, ByProduct: make(map[assumption.Product]float64, 4)}
	for _, product := range assumption.Products() {
		res := p.provider.Resolve(breakdown.AccountID, tier, product, quarter)
		rev := (breakdown.Component(product) / 4) * res.Target
		q.ByProduct[product] = rev
		q.Total += rev
	}
	return q
}

// Project builds the full horizon projection for one account.
func (p *Projector) Project(breakdown tam.Breakdown, tier account.Tier) AccountProjection {
	proj := AccountProjection{
		AccountID: breakdown.AccountID,
		Quarters:  make([]QuarterRevenue, 0, assumption.HorizonQuarters),
	}
	for quarter := 1; quarter <= assumption.HorizonQuarters; quarter++ {
		q := p.QuarterlyRevenue(breakdown, tier, quarter)
		proj.Quarters = append(proj.Quarters, q)
		proj.ThreeYearAchievable += q.Total
	}
	for year := 1; year <= assumption.HorizonYears; year++ {
		proj.RunRateRevenue[year-1] = proj.Quarters[FourthQuarterOf(year)-1].Total * 4
	}
	return proj
}
