package render

import (
	"strings"
	"testing"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/pipeline"
	"bank_dashboard/pkg/core/rollup"
	"bank_dashboard/pkg/core/team"
)

func testReport() *pipeline.Report {
	pct := 0.8
	return &pipeline.Report{
		RunID:             "run-1",
		GeneratedAt:       "2026-09-01T00:00:00Z",
		AssumptionVersion: "fy26-v1",
		Coverage: pipeline.CoverageSummary{
			TargetCoverageCount: 2,
			CoveredCount:        2,
			UncoveredCount:      1,
			TAMCovered:          80e6,
			TAMUncovered:        20e6,
			CoveragePercent:     &pct,
		},
		TeamSizing: []team.TierSizing{
			{Tier: account.TierEnterprise, TotalTAM: 80e6, AE: 0.24, SE: 0.12},
		},
		Rollup: rollup.Rollup{
			ByTierYear: []rollup.TierYear{
				{Tier: account.TierEnterprise, Year: 1, Potential: 1e6, Captured: 0.5e6, AdjustedCapturedRRR: 0.8e6},
			},
		},
		Warnings: []string{"Q3: assigned reps consume 2.00 capacity against 1.50 available; remaining clamped to 0"},
	}
}

func TestSummaryContent(t *testing.T) {
	md := Summary(testReport())

	for _, want := range []string{
		"run-1", "fy26-v1", "80.0%", "ENTERPRISE", "0.24", "Warnings",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("summary missing %q", want)
		}
	}
	if !Valid(md) {
		t.Error("summary failed markdown validation")
	}
}

func TestClean(t *testing.T) {
	fenced := "```markdown\n# Title\nBody\n```"
	if got := Clean(fenced); got != "# Title\nBody" {
		t.Errorf("fence not stripped: %q", got)
	}
	plain := "# Already clean"
	if got := Clean("  " + plain + "  "); got != plain {
		t.Errorf("whitespace not trimmed: %q", got)
	}
}
