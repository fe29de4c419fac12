package team

import (
	"math"
	"sort"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/tam"
)

// AccountShare is one account's required headcount share, raw and rounded.
type AccountShare struct {
	AccountID string  `json:"account_id"`
	RawAE     float64 `json:"raw_ae"`
	AE        float64 `json:"ae"`
	RawSE     float64 `json:"raw_se"`
	SE        float64 `json:"se"`
}

// TierSizing is the required headcount for one tier. AE and SE are the
// sums of the already-rounded per-account shares; summing raw values and
// rounding the aggregate gives different (wrong) numbers.
type TierSizing struct {
	Tier     account.Tier   `json:"tier"`
	TotalTAM float64        `json:"total_tam"`
	AE       float64        `json:"ae"`
	SE       float64        `json:"se"`
	Accounts []AccountShare `json:"accounts"`
}

// AggressiveRound applies the headcount rounding policy: values below one
// stay fractional (two decimals, partial/pooled coverage); values at or
// above one floor unless the fractional remainder reaches roundUpThreshold,
// in which case they ceiling. The threshold is configuration, not a magic
// number — changing it materially changes team size.
func AggressiveRound(raw, roundUpThreshold float64) float64 {
	if raw < 0 {
		return 0
	}
	if raw < 1 {
		return math.Round(raw*100) / 100
	}
	whole := math.Floor(raw)
	if raw-whole >= roundUpThreshold {
		return whole + 1
	}
	return whole
}

// SizeTeam converts per-account TAM into required AE/SE headcount per
// tier. Rounding happens per account before aggregation (hard invariant).
// Tiers without a TAMPerAE assumption size to zero headcount.
func SizeTeam(idx *account.Index, breakdowns map[string]tam.Breakdown, capacity assumption.CapacityAssumptions) []TierSizing {
	threshold := capacity.RoundUpThreshold.Value
	out := make([]TierSizing, 0, len(account.Tiers()))

	for _, tier := range account.Tiers() {
		sizing := TierSizing{Tier: tier}
		tamPerAE := capacity.TAMPerAE[tier]
		sePerAE := capacity.SEPerAE[tier]

		for _, acct := range idx.ByTier[tier] {
			b := breakdowns[acct.ID]
			sizing.TotalTAM += b.Total
			if tamPerAE <= 0 {
				continue
			}
			share := AccountShare{AccountID: acct.ID}
			share.RawAE = b.Total / tamPerAE
			share.AE = AggressiveRound(share.RawAE, threshold)
			share.RawSE = share.RawAE * sePerAE
			share.SE = AggressiveRound(share.RawSE, threshold)
			sizing.AE += share.AE
			sizing.SE += share.SE
			sizing.Accounts = append(sizing.Accounts, share)
		}
		sort.Slice(sizing.Accounts, func(i, j int) bool {
			return sizing.Accounts[i].AccountID < sizing.Accounts[j].AccountID
		})
		out = append(out, sizing)
	}
	return out
}
