// Package coverage splits the portfolio into covered and uncovered
// accounts and allocates finite, time-phased sales capacity across the
// covered set.
package coverage

import (
	"sort"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/tam"
)

// Selection is the covered/uncovered split. Only covered accounts ever
// reach the capacity allocator.
type Selection struct {
	Covered   []*account.Account `json:"-"`
	Uncovered []*account.Account `json:"-"`

	CoveredIDs   []string `json:"covered_ids"`
	UncoveredIDs []string `json:"uncovered_ids"`

	TAMCovered   float64 `json:"tam_covered"`
	TAMUncovered float64 `json:"tam_uncovered"`
	// CoveragePercent is tamCovered / (tamCovered + tamUncovered), clipped
	// to [0,1]. Nil when the portfolio has no TAM at all (no NaN).
	CoveragePercent *float64 `json:"coverage_percent,omitempty"`
}

// Select ranks accounts by total assets descending (id tiebreak) and
// takes the top targetCount as covered.
func Select(accounts []*account.Account, breakdowns map[string]tam.Breakdown, targetCount int) Selection {
	ranked := make([]*account.Account, len(accounts))
	copy(ranked, accounts)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalAssets != ranked[j].TotalAssets {
			return ranked[i].TotalAssets > ranked[j].TotalAssets
		}
		return ranked[i].ID < ranked[j].ID
	})

	if targetCount > len(ranked) {
		targetCount = len(ranked)
	}
	if targetCount < 0 {
		targetCount = 0
	}

	sel := Selection{Covered: ranked[:targetCount], Uncovered: ranked[targetCount:]}
	for _, a := range sel.Covered {
		sel.CoveredIDs = append(sel.CoveredIDs, a.ID)
		sel.TAMCovered += breakdowns[a.ID].Total
	}
	for _, a := range sel.Uncovered {
		sel.UncoveredIDs = append(sel.UncoveredIDs, a.ID)
		sel.TAMUncovered += breakdowns[a.ID].Total
	}

	if total := sel.TAMCovered + sel.TAMUncovered; total > 0 {
		pct := sel.TAMCovered / total
		if pct < 0 {
			pct = 0
		}
		if pct > 1 {
			pct = 1
		}
		sel.CoveragePercent = &pct
	}
	return sel
}
