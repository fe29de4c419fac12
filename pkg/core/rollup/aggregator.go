// Package rollup aggregates the per-quarter allocation audit into tier,
// quarter, and year views for the presentation layer.
package rollup

import (
	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/coverage"
	"bank_dashboard/pkg/core/projection"
)

// TierQuarter is one tier's potential and captured revenue in one quarter.
type TierQuarter struct {
	Tier      account.Tier `json:"tier"`
	Quarter   int          `json:"quarter"`
	Potential float64      `json:"potential"`
	Captured  float64      `json:"captured"`
}

// TierYear is one tier's yearly view. Potential and Captured are the sum
// of the four quarters in the year. AdjustedPotentialRRR and
// AdjustedCapturedRRR are the distinct Q4-annualized run-rate figures;
// the two families must never be conflated.
type TierYear struct {
	Tier                 account.Tier `json:"tier"`
	Year                 int          `json:"year"`
	Potential            float64      `json:"potential"`
	Captured             float64      `json:"captured"`
	AdjustedPotentialRRR float64      `json:"adjusted_potential_rrr"`
	AdjustedCapturedRRR  float64      `json:"adjusted_captured_rrr"`
}

// Rollup is the aggregate view over the whole horizon.
type Rollup struct {
	ByTierQuarter []TierQuarter `json:"by_tier_quarter"`
	ByTierYear    []TierYear    `json:"by_tier_year"`

	TotalPotential float64 `json:"total_potential"`
	TotalCaptured  float64 `json:"total_captured"`
}

// Aggregate rolls the allocation audit up by tier and quarter. Output
// ordering is fixed (tier order, then quarter/year ascending) so results
// are reproducible byte for byte.
func Aggregate(quarters []coverage.QuarterAllocation) Rollup {
	type key struct {
		tier    account.Tier
		quarter int
	}
	potential := make(map[key]float64)
	captured := make(map[key]float64)

	for _, qa := range quarters {
		for _, alloc := range qa.Accounts {
			k := key{alloc.Tier, qa.Quarter}
			potential[k] += alloc.PotentialRevenue
			captured[k] += alloc.CapturedRevenue
		}
	}

	var r Rollup
	for _, tier := range account.Tiers() {
		for quarter := 1; quarter <= assumption.HorizonQuarters; quarter++ {
			k := key{tier, quarter}
			if potential[k] == 0 && captured[k] == 0 {
				continue
			}
			r.ByTierQuarter = append(r.ByTierQuarter, TierQuarter{
				Tier:      tier,
				Quarter:   quarter,
				Potential: potential[k],
				Captured:  captured[k],
			})
			r.TotalPotential += potential[k]
			r.TotalCaptured += captured[k]
		}

		for year := 1; year <= assumption.HorizonYears; year++ {
			ty := TierYear{Tier: tier, Year: year}
			for quarter := 4*year - 3; quarter <= 4*year; quarter++ {
				k := key{tier, quarter}
				ty.Potential += potential[k]
				ty.Captured += captured[k]
			}
			q4 := key{tier, projection.FourthQuarterOf(year)}
			ty.AdjustedPotentialRRR = potential[q4] * 4
			ty.AdjustedCapturedRRR = captured[q4] * 4
			if ty.Potential == 0 && ty.Captured == 0 {
				continue
			}
			r.ByTierYear = append(r.ByTierYear, ty)
		}
	}
	return r
}
