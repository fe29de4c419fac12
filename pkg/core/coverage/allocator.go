package coverage

import (
	"fmt"
	"sort"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/projection"
	"bank_dashboard/pkg/core/tam"
	"bank_dashboard/pkg/core/team"
)

// CoverageType classifies how an account's revenue is captured in a quarter.
type CoverageType string

const (
	// CoverageAssigned: an AE explicitly owns the account; dominates greedy
	// allocation by construction.
	CoverageAssigned CoverageType = "ASSIGNED"
	// CoverageDedicated: won a full-capacity slot in the greedy walk.
	CoverageDedicated CoverageType = "DEDICATED"
	// CoverageReactive: no capacity left; flat discounted capture.
	CoverageReactive CoverageType = "REACTIVE"
)

// AccountAllocation is the per-account audit row for one quarter.
type AccountAllocation struct {
	AccountID        string       `json:"account_id"`
	Tier             account.Tier `json:"tier"`
	CoverageType     CoverageType `json:"coverage_type"`
	CoverageRatio    float64      `json:"coverage_ratio"`
	RequiredCapacity float64      `json:"required_capacity"`
	PotentialRevenue float64      `json:"potential_revenue"`
	CapturedRevenue  float64      `json:"captured_revenue"`
}

// QuarterAllocation is one quarter of the capacity-allocation audit.
type QuarterAllocation struct {
	Quarter int `json:"quarter"`

	RawAE             int     `json:"raw_ae"`
	RawSE             int     `json:"raw_se"`
	EffectiveCapacity float64 `json:"effective_capacity"`
	AssignedConsumed  float64 `json:"assigned_consumed"`

	FullPotential    float64 `json:"full_potential"`
	AssignedRevenue  float64 `json:"assigned_revenue"`
	DedicatedRevenue float64 `json:"dedicated_revenue"`
	ReactiveRevenue  float64 `json:"reactive_revenue"`
	CapturedRevenue  float64 `json:"captured_revenue"`
	// CaptureRate is captured/potential, 0 when there is no potential.
	CaptureRate float64 `json:"capture_rate"`

	Accounts []AccountAllocation `json:"accounts"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Allocator distributes time-phased, ramping sales capacity across the
// covered accounts: explicit assignments first, then greedy-by-TAM
// dedicated coverage, then the flat reactive haircut.
type Allocator struct {
	capacity assumption.CapacityAssumptions
	ramp     team.RampCurve
}

func NewAllocator(capacity assumption.CapacityAssumptions, ramp team.RampCurve) *Allocator {
	if ramp == nil {
		ramp = team.LinearRamp
	}
	return &Allocator{capacity: capacity, ramp: ramp}
}

// requiredShare is the combined AE+SE capacity an account needs for full
// dedicated coverage. Zero when the tier has no TAMPerAE assumption.
func (a *Allocator) requiredShare(b tam.Breakdown) float64 {
	tamPerAE := a.capacity.TAMPerAE[b.Tier]
	if tamPerAE <= 0 {
		return 0
	}
	aeShare := b.Total / tamPerAE
	return aeShare + aeShare*a.capacity.SEPerAE[b.Tier]
}

// Allocate walks the 12-quarter horizon. Inputs are immutable; the result
// is a pure function of them, with the account-id tiebreak keeping every
// ordering deterministic.
func (a *Allocator) Allocate(
	sel Selection,
	breakdowns map[string]tam.Breakdown,
	projections map[string]projection.AccountProjection,
	roster *team.Roster,
) []QuarterAllocation {

	timeline := team.BuildTimeline(roster, a.capacity.RampQuarters, a.ramp)
	assignedAEs := roster.AssignedAEsByAccount()

	// Split the covered set once: assigned accounts never enter the greedy
	// walk. Greedy order is TAM descending, id ascending.
	var assigned, unassigned []*account.Account
	for _, acct := range sel.Covered {
		if len(assignedAEs[acct.ID]) > 0 {
			assigned = append(assigned, acct)
		} else {
			unassigned = append(unassigned, acct)
		}
	}
	sort.Slice(assigned, func(i, j int) bool { return assigned[i].ID < assigned[j].ID })
	sort.Slice(unassigned, func(i, j int) bool {
		ti, tj := breakdowns[unassigned[i].ID].Total, breakdowns[unassigned[j].ID].Total
		if ti != tj {
			return ti > tj
		}
		return unassigned[i].ID < unassigned[j].ID
	})

	out := make([]QuarterAllocation, 0, assumption.HorizonQuarters)
	for quarter := 1; quarter <= assumption.HorizonQuarters; quarter++ {
		qc := timeline.At(quarter)
		qa := QuarterAllocation{
			Quarter:           quarter,
			RawAE:             qc.RawAE,
			RawSE:             qc.RawSE,
			EffectiveCapacity: qc.Effective(),
		}

		// Capacity consumed by reps who carry explicit assignments: they are
		// dedicated by construction and unavailable to the greedy pool.
		for _, m := range roster.Members {
			if m.HasAssignments() {
				qa.AssignedConsumed += team.Contribution(m, quarter, a.capacity.RampQuarters, a.ramp)
			}
		}
		remaining := qa.EffectiveCapacity - qa.AssignedConsumed
		if remaining < 0 {
			qa.Warnings = append(qa.Warnings, fmt.Sprintf(
				"Q%d: assigned reps consume %.2f capacity against %.2f available; remaining clamped to 0",
				quarter, qa.AssignedConsumed, qa.EffectiveCapacity))
			remaining = 0
		}

		// 1. Assigned partition.
		for _, acct := range assigned {
			b := breakdowns[acct.ID]
			potential := projections[acct.ID].Quarters[quarter-1].Total

			ratio := 0.0
			if b.Total > 0 {
				aeCount := 0
				for _, m := range assignedAEs[acct.ID] {
					if m.PresentAt(quarter) {
						aeCount++
					}
				}
				ratio = float64(aeCount) * a.capacity.TAMPerAE[b.Tier] / b.Total
				if ratio > 1 {
					ratio = 1
				}
			}
			captured := potential * ratio

			qa.FullPotential += potential
			qa.AssignedRevenue += captured
			qa.Accounts = append(qa.Accounts, AccountAllocation{
				AccountID:        acct.ID,
				Tier:             b.Tier,
				CoverageType:     CoverageAssigned,
				CoverageRatio:    ratio,
				RequiredCapacity: a.requiredShare(b),
				PotentialRevenue: potential,
				CapturedRevenue:  captured,
			})
		}

		// 2. Greedy partition: dedicate while the account's AE+SE share
		// fits, otherwise fall through to reactive capture.
		for _, acct := range unassigned {
			b := breakdowns[acct.ID]
			potential := projections[acct.ID].Quarters[quarter-1].Total
			required := a.requiredShare(b)

			alloc := AccountAllocation{
				AccountID:        acct.ID,
				Tier:             b.Tier,
				RequiredCapacity: required,
				PotentialRevenue: potential,
			}
			if required <= remaining {
				remaining -= required
				alloc.CoverageType = CoverageDedicated
				alloc.CoverageRatio = 1
				alloc.CapturedRevenue = potential
				qa.DedicatedRevenue += alloc.CapturedRevenue
			} else {
				rate := a.capacity.ReactiveCaptureRate.Value
				alloc.CoverageType = CoverageReactive
				alloc.CoverageRatio = rate
				alloc.CapturedRevenue = potential * rate
				qa.ReactiveRevenue += alloc.CapturedRevenue
			}
			qa.FullPotential += potential
			qa.Accounts = append(qa.Accounts, alloc)
		}

		qa.CapturedRevenue = qa.AssignedRevenue + qa.DedicatedRevenue + qa.ReactiveRevenue
		if qa.FullPotential > 0 {
			qa.CaptureRate = qa.CapturedRevenue / qa.FullPotential
		}
		out = append(out, qa)
	}
	return out
}
