// Package account defines the immutable account snapshot consumed by the
// TAM and capacity-allocation engines, plus asset-size tier classification.
package account

import (
	"fmt"
	"sort"
)

// Tier is the asset-size-based account segment.
type Tier string

const (
	TierMega          Tier = "MEGA"
	TierStrategic     Tier = "STRATEGIC"
	TierEnterprise    Tier = "ENTERPRISE"
	TierCommercial    Tier = "COMMERCIAL"
	TierSmallBusiness Tier = "SMALL_BUSINESS"
)

// Tiers returns all tiers in descending asset-size order.
func Tiers() []Tier {
	return []Tier{TierMega, TierStrategic, TierEnterprise, TierCommercial, TierSmallBusiness}
}

// Account is a snapshot of one institution's financial metrics.
// The snapshot is immutable per computation; Tier is always derived via
// Thresholds.Classify and never treated as authoritative stored state.
type Account struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	TotalAssets float64 `json:"total_assets"`
	FTECount    float64 `json:"fte_count"`

	// AnnualRevenueFY is the most recent fiscal year-end (full-year
	// cumulative) revenue. QuarterlyRevenue is the latest quarterly figure,
	// used annualized (x4) only when the fiscal-year figure is absent.
	AnnualRevenueFY  *float64 `json:"annual_revenue_fy,omitempty"`
	QuarterlyRevenue *float64 `json:"quarterly_revenue,omitempty"`

	NetIncome *float64 `json:"net_income,omitempty"`
}

// Thresholds holds the asset floors for each tier above SmallBusiness,
// in actual currency units. An account at or above a floor belongs to
// that tier; below the Commercial floor it is SmallBusiness.
type Thresholds struct {
	Mega       float64 `json:"mega"`
	Strategic  float64 `json:"strategic"`
	Enterprise float64 `json:"enterprise"`
	Commercial float64 `json:"commercial"`
}

// Validate rejects non-strictly-decreasing thresholds at load time.
// A silent misclassification here would corrupt every downstream stage.
func (t Thresholds) Validate() error {
	if t.Commercial <= 0 {
		return fmt.Errorf("commercial threshold must be positive, got %f", t.Commercial)
	}
	if !(t.Mega > t.Strategic && t.Strategic > t.Enterprise && t.Enterprise > t.Commercial) {
		return fmt.Errorf("tier thresholds must be strictly decreasing (mega %f > strategic %f > enterprise %f > commercial %f)",
			t.Mega, t.Strategic, t.Enterprise, t.Commercial)
	}
	return nil
}

// Classify maps total assets to a tier: first descending threshold the
// value meets or exceeds wins. Pure and total; callers are expected to
// have run Validate once at configuration load.
func (t Thresholds) Classify(totalAssets float64) Tier {
	switch {
	case totalAssets >= t.Mega:
		return TierMega
	case totalAssets >= t.Strategic:
		return TierStrategic
	case totalAssets >= t.Enterprise:
		return TierEnterprise
	case totalAssets >= t.Commercial:
		return TierCommercial
	default:
		return TierSmallBusiness
	}
}

// Index is the one-pass view every downstream stage shares: tier per
// account and accounts grouped by tier, so the account list is traversed
// once instead of per stage.
type Index struct {
	Accounts []*Account
	ByID     map[string]*Account
	TierOf   map[string]Tier
	ByTier   map[Tier][]*Account
}

// BuildIndex classifies every account once and groups by tier. Accounts
// within a tier are ordered by total assets descending with an id
// tiebreak so every consumer sees the same deterministic order.
func BuildIndex(accounts []*Account, thresholds Thresholds) *Index {
	idx := &Index{
		Accounts: accounts,
		ByID:     make(map[string]*Account, len(accounts)),
		TierOf:   make(map[string]Tier, len(accounts)),
		ByTier:   make(map[Tier][]*Account),
	}
	for _, a := range accounts {
		idx.ByID[a.ID] = a
		tier := thresholds.Classify(a.TotalAssets)
		idx.TierOf[a.ID] = tier
		idx.ByTier[tier] = append(idx.ByTier[tier], a)
	}
	for _, tier := range Tiers() {
		group := idx.ByTier[tier]
		sort.Slice(group, func(i, j int) bool {
			if group[i].TotalAssets != group[j].TotalAssets {
				return group[i].TotalAssets > group[j].TotalAssets
			}
			return group[i].ID < group[j].ID
		})
	}
	return idx
}
