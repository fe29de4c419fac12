package assumption

// Planning horizon: 12 contiguous fiscal quarters (3 years). Quarters are
// numbered 1..12; year y spans quarters 4y-3 .. 4y.
const (
	HorizonQuarters = 12
	HorizonYears    = 3
)

// Documented fallbacks for missing capacity fields. Every default the
// engine can apply is named here; nothing falls back silently inside the
// calculation code.
const (
	DefaultReactiveCaptureRate = 0.25
	DefaultRampQuarters        = 4
	// DefaultRoundUpThreshold is the aggressive-rounding cutoff: a
	// per-account headcount share of 1.8 rounds to 2, 1.7 floors to 1.
	DefaultRoundUpThreshold    = 0.75
	DefaultTargetCoverageCount = 100
)

// ApplyDefaults fills unset capacity fields with the named defaults,
// tagging them as globally sourced. Product pricing has no defaults: a
// missing price simply prices that component at zero, which the TAM
// engine surfaces as a data-quality gap.
func (s *Set) ApplyDefaults() {
	if s.Capacity.ReactiveCaptureRate.Provenance == "" {
		s.Capacity.ReactiveCaptureRate = Global(DefaultReactiveCaptureRate)
	}
	if s.Capacity.RampQuarters == 0 {
		s.Capacity.RampQuarters = DefaultRampQuarters
	}
	if s.Capacity.RoundUpThreshold.Provenance == "" {
		s.Capacity.RoundUpThreshold = Global(DefaultRoundUpThreshold)
	}
	if s.Capacity.TargetCoverageCount == 0 {
		s.Capacity.TargetCoverageCount = DefaultTargetCoverageCount
	}
	tagProducts(&s.Products)
}

// tagProducts marks untagged product leaves as global so serialized sets
// always carry explicit provenance.
func tagProducts(p *ProductAssumptions) {
	for _, v := range []*Value{
		&p.DevSeatPriceMonth, &p.DevEligibilityRate,
		&p.EntSeatPriceMonth, &p.EntAdoptionRate,
		&p.AgentsPerEmployee, &p.AgentPriceMonth,
		&p.RevenueShareFraction, &p.PlatformShareFraction,
	} {
		if v.Provenance == "" {
			v.Provenance = ProvenanceGlobal
		}
	}
}
