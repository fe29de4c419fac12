package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/coverage"
	"bank_dashboard/pkg/core/penetration"
	"bank_dashboard/pkg/core/projection"
	"bank_dashboard/pkg/core/rollup"
	"bank_dashboard/pkg/core/tam"
	"bank_dashboard/pkg/core/team"
)

// Inputs is one request-scoped, immutable snapshot. Concurrent requests
// must each build their own Inputs; the orchestrator never mutates them
// and keeps no state between runs.
type Inputs struct {
	Accounts    []*account.Account
	Assumptions *assumption.Set
	Roster      *team.Roster

	// TargetCoverageCount, when positive, overrides the assumption set's
	// value for scenario comparison without touching the shared snapshot.
	TargetCoverageCount int
}

// Orchestrator runs the engine stages in their structural order:
// index -> TAM -> projection -> coverage selection -> sizing -> allocation
// -> rollup. It is a synchronous, single-threaded batch computation with
// no I/O; all fetching happens before Run.
type Orchestrator struct {
	Ramp team.RampCurve

	// NewRunID and Now are injectable for reproducible output in tests.
	NewRunID func() string
	Now      func() time.Time
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		Ramp:     team.LinearRamp,
		NewRunID: func() string { return uuid.New().String() },
		Now:      time.Now,
	}
}

// Run executes the full pipeline over one input snapshot.
func (o *Orchestrator) Run(in Inputs) (*Report, error) {
	if in.Assumptions == nil {
		return nil, fmt.Errorf("assumption set is required")
	}
	if in.Roster == nil {
		in.Roster = &team.Roster{}
	}
	if err := in.Assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumption set %q: %w", in.Assumptions.Version, err)
	}

	// Request-scoped copy so a scenario override never leaks into the
	// shared assumption snapshot.
	capacity := in.Assumptions.Capacity
	if in.TargetCoverageCount > 0 {
		capacity.TargetCoverageCount = in.TargetCoverageCount
	}

	// Stage 1: single indexing pass shared by every downstream stage.
	idx := account.BuildIndex(in.Accounts, in.Assumptions.Thresholds)

	// Stage 2: TAM.
	engine := tam.NewEngine(in.Assumptions)
	breakdowns := engine.ComputeAll(idx)

	// Stage 3: projections.
	projector := projection.NewProjector(penetration.NewProvider(in.Assumptions.Penetration))
	projections := make(map[string]projection.AccountProjection, len(idx.Accounts))
	for _, acct := range idx.Accounts {
		projections[acct.ID] = projector.Project(breakdowns[acct.ID], idx.TierOf[acct.ID])
	}

	// Stage 4: coverage split.
	sel := coverage.Select(idx.Accounts, breakdowns, capacity.TargetCoverageCount)

	// Stage 5: team sizing (consumed by the allocator's capacity model).
	sizings := team.SizeTeam(idx, breakdowns, capacity)

	// Stage 6: capacity allocation over the covered set.
	allocator := coverage.NewAllocator(capacity, o.Ramp)
	quarters := allocator.Allocate(sel, breakdowns, projections, in.Roster)

	// Stage 7: rollups.
	rolled := rollup.Aggregate(quarters)

	return o.assemble(in, capacity, idx, breakdowns, projections, sel, sizings, quarters, rolled), nil
}

func (o *Orchestrator) assemble(
	in Inputs,
	capacity assumption.CapacityAssumptions,
	idx *account.Index,
	breakdowns map[string]tam.Breakdown,
	projections map[string]projection.AccountProjection,
	sel coverage.Selection,
	sizings []team.TierSizing,
	quarters []coverage.QuarterAllocation,
	rolled rollup.Rollup,
) *Report {

	report := &Report{
		RunID:             o.NewRunID(),
		GeneratedAt:       o.Now().UTC().Format(time.RFC3339),
		AssumptionVersion: in.Assumptions.Version,
		TeamSizing:        sizings,
		Quarters:          quarters,
		Rollup:            rolled,
	}

	report.Coverage = CoverageSummary{
		TargetCoverageCount: capacity.TargetCoverageCount,
		CoveredCount:        len(sel.Covered),
		UncoveredCount:      len(sel.Uncovered),
		TAMCovered:          roundMoney(sel.TAMCovered),
		TAMUncovered:        roundMoney(sel.TAMUncovered),
		CoveragePercent:     sel.CoveragePercent,
	}

	// Portfolio-level projections by product and quarter.
	totals := make(map[assumption.Product][assumption.HorizonQuarters]float64)
	for _, acct := range idx.Accounts {
		proj := projections[acct.ID]
		for _, q := range proj.Quarters {
			for product, rev := range q.ByProduct {
				arr := totals[product]
				arr[q.Quarter-1] += rev
				totals[product] = arr
			}
		}
	}
	for _, product := range assumption.Products() {
		arr := totals[product]
		for quarter := 1; quarter <= assumption.HorizonQuarters; quarter++ {
			report.Projections = append(report.Projections, ProductQuarter{
				Product: product,
				Quarter: quarter,
				Revenue: roundMoney(arr[quarter-1]),
			})
		}
	}

	// Per-account detail in tier order, assets descending within a tier.
	covered := make(map[string]bool, len(sel.Covered))
	for _, a := range sel.Covered {
		covered[a.ID] = true
	}
	assignedAEs := in.Roster.AssignedAEsByAccount()
	for _, tier := range account.Tiers() {
		for _, acct := range idx.ByTier[tier] {
			b := breakdowns[acct.ID]
			proj := projections[acct.ID]
			detail := AccountDetail{
				AccountID:           acct.ID,
				Name:                acct.Name,
				Tier:                tier,
				Covered:             covered[acct.ID],
				TAM:                 b,
				ThreeYearAchievable: roundMoney(proj.ThreeYearAchievable),
			}
			for i, rrr := range proj.RunRateRevenue {
				detail.RunRateRevenue[i] = roundMoney(rrr)
			}
			for _, m := range assignedAEs[acct.ID] {
				detail.AssignedAEs = append(detail.AssignedAEs, m.ID)
			}
			report.Accounts = append(report.Accounts, detail)
			report.DataQuality = append(report.DataQuality, b.DataGaps...)
		}
	}

	for _, qa := range quarters {
		report.Warnings = append(report.Warnings, qa.Warnings...)
	}
	return report
}
