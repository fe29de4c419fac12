package team

import (
	"fmt"

	"bank_dashboard/pkg/core/assumption"
)

// RampCurve maps a rep's tenure to their productive-capacity fraction.
// The shape is deliberately pluggable: the default is linear, pending
// product confirmation of the intended curve.
type RampCurve func(quartersSinceHire, rampQuarters int) float64

// LinearRamp ramps linearly from 1/rampQuarters in the hire quarter to
// full capacity after rampQuarters quarters.
func LinearRamp(quartersSinceHire, rampQuarters int) float64 {
	if rampQuarters <= 0 {
		return 1
	}
	f := float64(quartersSinceHire+1) / float64(rampQuarters)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// QuarterCapacity is one quarter of the derived capacity timeline: raw
// headcount by role and ramp-adjusted effective capacity by role.
type QuarterCapacity struct {
	Quarter     int     `json:"quarter"`
	RawAE       int     `json:"raw_ae"`
	RawSE       int     `json:"raw_se"`
	EffectiveAE float64 `json:"effective_ae"`
	EffectiveSE float64 `json:"effective_se"`
}

// Effective is the combined AE+SE effective capacity pool.
func (q QuarterCapacity) Effective() float64 { return q.EffectiveAE + q.EffectiveSE }

// Timeline is the derived (never persisted) capacity view over the
// 12-quarter horizon.
type Timeline struct {
	Quarters []QuarterCapacity `json:"quarters"`
}

// At returns the capacity for a horizon quarter (1..12).
func (t Timeline) At(quarter int) QuarterCapacity { return t.Quarters[quarter-1] }

// Contribution is a single member's ramp-adjusted capacity in a quarter.
func Contribution(m Member, quarter, rampQuarters int, curve RampCurve) float64 {
	if !m.PresentAt(quarter) {
		return 0
	}
	if m.HireQuarter <= 0 {
		return 1
	}
	return curve(m.QuartersSinceHire(quarter), rampQuarters)
}

// BuildTimeline derives raw and effective headcount per quarter from the
// roster and hiring plan. Planned hires become synthetic members with
// deterministic ids so repeated builds are byte-identical.
func BuildTimeline(roster *Roster, rampQuarters int, curve RampCurve) Timeline {
	members := make([]Member, 0, len(roster.Members))
	members = append(members, roster.Members...)
	for i, hire := range roster.HiringPlan {
		for n := 0; n < hire.Count; n++ {
			members = append(members, Member{
				ID:          fmt.Sprintf("plan-%d-%s-q%d-%d", i, hire.Role, hire.Quarter, n),
				Role:        hire.Role,
				Active:      true,
				HireQuarter: hire.Quarter,
			})
		}
	}

	tl := Timeline{Quarters: make([]QuarterCapacity, 0, assumption.HorizonQuarters)}
	for quarter := 1; quarter <= assumption.HorizonQuarters; quarter++ {
		qc := QuarterCapacity{Quarter: quarter}
		for _, m := range members {
			if !m.PresentAt(quarter) {
				continue
			}
			c := Contribution(m, quarter, rampQuarters, curve)
			switch m.Role {
			case RoleAE:
				qc.RawAE++
				qc.EffectiveAE += c
			case RoleSE:
				qc.RawSE++
				qc.EffectiveSE += c
			}
		}
		tl.Quarters = append(tl.Quarters, qc)
	}
	return tl
}
