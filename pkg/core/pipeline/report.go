// Package pipeline wires the pure engine stages into a typed flow and
// assembles the allocation report consumed by the presentation layer.
// Each stage consumes the previous stage's typed output, so ordering
// dependencies (sizing before allocation) are structural, not
// conventional.
package pipeline

import (
	"github.com/shopspring/decimal"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/coverage"
	"bank_dashboard/pkg/core/rollup"
	"bank_dashboard/pkg/core/tam"
	"bank_dashboard/pkg/core/team"
)

// CoverageSummary is the covered/uncovered headline of the report.
type CoverageSummary struct {
	TargetCoverageCount int      `json:"target_coverage_count"`
	CoveredCount        int      `json:"covered_count"`
	UncoveredCount      int      `json:"uncovered_count"`
	TAMCovered          float64  `json:"tam_covered"`
	TAMUncovered        float64  `json:"tam_uncovered"`
	CoveragePercent     *float64 `json:"coverage_percent,omitempty"`
}

// AccountDetail is the per-account row of the report.
type AccountDetail struct {
	AccountID           string                           `json:"account_id"`
	Name                string                           `json:"name,omitempty"`
	Tier                account.Tier                     `json:"tier"`
	Covered             bool                             `json:"covered"`
	TAM                 tam.Breakdown                    `json:"tam"`
	AssignedAEs         []string                         `json:"assigned_aes,omitempty"`
	ThreeYearAchievable float64                          `json:"three_year_achievable"`
	RunRateRevenue      [assumption.HorizonYears]float64 `json:"run_rate_revenue"`
}

// ProductQuarter is one product's projected revenue in one quarter,
// summed over all accounts.
type ProductQuarter struct {
	Product assumption.Product `json:"product"`
	Quarter int                `json:"quarter"`
	Revenue float64            `json:"revenue"`
}

// Report is the full allocation report: a pure function of its inputs,
// recomputed on demand and never persisted.
type Report struct {
	RunID             string `json:"run_id"`
	GeneratedAt       string `json:"generated_at"`
	AssumptionVersion string `json:"assumption_version"`

	Coverage    CoverageSummary              `json:"coverage"`
	TeamSizing  []team.TierSizing            `json:"team_sizing"`
	Projections []ProductQuarter             `json:"projections_by_product"`
	Accounts    []AccountDetail              `json:"accounts"`
	Quarters    []coverage.QuarterAllocation `json:"quarters"`
	Rollup      rollup.Rollup                `json:"rollup"`

	// DataQuality lists missing-input gaps; Warnings carries capacity
	// clamps and similar audit notes. Neither is fatal.
	DataQuality []string `json:"data_quality,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// roundMoney rounds a currency figure to cents for the report boundary.
// Engine math runs unrounded; only reported aggregates are snapped.
func roundMoney(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
