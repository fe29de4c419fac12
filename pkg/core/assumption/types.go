// Package assumption implements the versioned assumption set driving the
// TAM projection and capacity-allocation engines. Sets are immutable
// snapshots: a change produces a new version, never an in-place edit, and
// every leaf value carries provenance so the dashboard can show where a
// number came from.
package assumption

import (
	"fmt"
	"time"

	"bank_dashboard/pkg/core/account"
)

// Provenance records where a configuration leaf came from.
type Provenance string

const (
	ProvenanceGlobal          Provenance = "GLOBAL"
	ProvenanceAccountOverride Provenance = "ACCOUNT_OVERRIDE"
	ProvenanceTierDefault     Provenance = "TIER_DEFAULT"
	ProvenanceUnset           Provenance = "UNSET"
)

// Product identifies one of the four independent TAM revenue components.
type Product string

const (
	ProductDeveloperSeat    Product = "DEVELOPER_SEAT"
	ProductEnterpriseSeat   Product = "ENTERPRISE_SEAT"
	ProductPerEmployeeAgent Product = "PER_EMPLOYEE_AGENT"
	ProductRevenueShare     Product = "REVENUE_SHARE_AGENT"
)

// Products returns the four products in stable reporting order.
func Products() []Product {
	return []Product{ProductDeveloperSeat, ProductEnterpriseSeat, ProductPerEmployeeAgent, ProductRevenueShare}
}

// Value is a single assumption leaf with provenance.
type Value struct {
	Value      float64    `json:"value"`
	Provenance Provenance `json:"provenance"`
}

// Global constructs a globally-sourced leaf.
func Global(v float64) Value { return Value{Value: v, Provenance: ProvenanceGlobal} }

// ProductAssumptions holds the global pricing and rate inputs for the four
// TAM components.
type ProductAssumptions struct {
	// Developer seats: monthly seat price applied to the eligible share of FTEs.
	DevSeatPriceMonth  Value `json:"dev_seat_price_month"`
	DevEligibilityRate Value `json:"dev_eligibility_rate"`

	// Enterprise seats: monthly seat price applied to the adopting share of FTEs.
	EntSeatPriceMonth Value `json:"ent_seat_price_month"`
	EntAdoptionRate   Value `json:"ent_adoption_rate"`

	// Per-employee agents.
	AgentsPerEmployee Value `json:"agents_per_employee"`
	AgentPriceMonth   Value `json:"agent_price_month"`

	// Revenue share.
	RevenueShareFraction  Value `json:"revenue_share_fraction"`
	PlatformShareFraction Value `json:"platform_share_fraction"`
}

// ProductOverride is a partial per-account override of ProductAssumptions.
// Nil fields fall through to the global value.
type ProductOverride struct {
	DevSeatPriceMonth     *float64 `json:"dev_seat_price_month,omitempty"`
	DevEligibilityRate    *float64 `json:"dev_eligibility_rate,omitempty"`
	EntSeatPriceMonth     *float64 `json:"ent_seat_price_month,omitempty"`
	EntAdoptionRate       *float64 `json:"ent_adoption_rate,omitempty"`
	AgentsPerEmployee     *float64 `json:"agents_per_employee,omitempty"`
	AgentPriceMonth       *float64 `json:"agent_price_month,omitempty"`
	RevenueShareFraction  *float64 `json:"revenue_share_fraction,omitempty"`
	PlatformShareFraction *float64 `json:"platform_share_fraction,omitempty"`
}

// CapacityAssumptions drives team sizing and the capacity allocator.
type CapacityAssumptions struct {
	// TAMPerAE is the annual TAM one Account Executive can carry, per tier.
	TAMPerAE map[account.Tier]float64 `json:"tam_per_ae"`
	// SEPerAE is the Solutions Engineer ratio per AE, per tier.
	SEPerAE map[account.Tier]float64 `json:"se_per_ae"`

	// ReactiveCaptureRate is the flat capture fraction for accounts with no
	// dedicated sales capacity.
	ReactiveCaptureRate Value `json:"reactive_capture_rate"`
	// RampQuarters is how many quarters a new hire takes to reach full
	// productive capacity.
	RampQuarters int `json:"ramp_quarters"`
	// RoundUpThreshold is the fractional remainder at or above which a
	// per-account headcount share of >= 1 rounds up instead of flooring.
	RoundUpThreshold Value `json:"round_up_threshold"`
	// TargetCoverageCount is how many accounts (ranked by assets) receive
	// sales effort at all.
	TargetCoverageCount int `json:"target_coverage_count"`
}

// ScheduleEntry is one quarter's adoption target (and optionally the
// observed actual) for a product.
type ScheduleEntry struct {
	Target float64  `json:"target"`
	Actual *float64 `json:"actual,omitempty"`
}

// QuarterSchedule maps quarter (1..HorizonQuarters) to an entry. Sparse:
// missing quarters fall through to the next resolution level.
type QuarterSchedule map[int]ScheduleEntry

// PenetrationConfig holds the two override layers of the penetration
// schedule. Resolution order is account override > tier default > zero.
type PenetrationConfig struct {
	TierDefaults     map[account.Tier]map[Product]QuarterSchedule `json:"tier_defaults"`
	AccountOverrides map[string]map[Product]QuarterSchedule       `json:"account_overrides"`
}

// Set is one versioned assumption snapshot.
type Set struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	Thresholds  account.Thresholds         `json:"tier_thresholds"`
	Products    ProductAssumptions         `json:"products"`
	Overrides   map[string]ProductOverride `json:"product_overrides,omitempty"`
	Capacity    CapacityAssumptions        `json:"capacity"`
	Penetration PenetrationConfig          `json:"penetration"`
}

// Validate fails fast on configuration that would silently corrupt the
// pipeline. Called once at load; the engine assumes a validated set.
func (s *Set) Validate() error {
	if s.Version == "" {
		return fmt.Errorf("assumption set must carry a version")
	}
	if err := s.Thresholds.Validate(); err != nil {
		return fmt.Errorf("tier thresholds: %w", err)
	}
	if r := s.Capacity.ReactiveCaptureRate.Value; r < 0 || r > 1 {
		return fmt.Errorf("reactive capture rate must be in [0,1], got %f", r)
	}
	if th := s.Capacity.RoundUpThreshold.Value; th <= 0 || th > 1 {
		return fmt.Errorf("round-up threshold must be in (0,1], got %f", th)
	}
	if s.Capacity.RampQuarters < 1 {
		return fmt.Errorf("ramp quarters must be >= 1, got %d", s.Capacity.RampQuarters)
	}
	if s.Capacity.TargetCoverageCount < 0 {
		return fmt.Errorf("target coverage count must be >= 0, got %d", s.Capacity.TargetCoverageCount)
	}
	for _, tier := range account.Tiers() {
		if v, ok := s.Capacity.TAMPerAE[tier]; ok && v <= 0 {
			return fmt.Errorf("tam per AE for %s must be positive, got %f", tier, v)
		}
		if v, ok := s.Capacity.SEPerAE[tier]; ok && v < 0 {
			return fmt.Errorf("se per AE for %s must be >= 0, got %f", tier, v)
		}
	}
	for tier, byProduct := range s.Penetration.TierDefaults {
		if err := validateSchedules(fmt.Sprintf("tier default %s", tier), byProduct); err != nil {
			return err
		}
	}
	for id, byProduct := range s.Penetration.AccountOverrides {
		if err := validateSchedules(fmt.Sprintf("account override %s", id), byProduct); err != nil {
			return err
		}
	}
	return nil
}

func validateSchedules(scope string, byProduct map[Product]QuarterSchedule) error {
	for product, schedule := range byProduct {
		for quarter, entry := range schedule {
			if quarter < 1 || quarter > HorizonQuarters {
				return fmt.Errorf("%s schedule for %s: quarter %d outside 1..%d", scope, product, quarter, HorizonQuarters)
			}
			if entry.Target < 0 || entry.Target > 1 {
				return fmt.Errorf("%s schedule for %s Q%d: target %f outside [0,1]", scope, product, quarter, entry.Target)
			}
		}
	}
	return nil
}
