// Package render turns an allocation report into a markdown executive
// summary for the dashboard, and defines the seam to the external
// narrative-drafting collaborators.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"bank_dashboard/pkg/core/pipeline"
)

// NarrativeDrafter is implemented by the external LLM wrapper services
// that draft research-report prose from an allocation report. The engine
// ships no implementation; the seam exists so the API layer can plug one
// in.
type NarrativeDrafter interface {
	DraftNarrative(ctx context.Context, report *pipeline.Report) (string, error)
}

// Summary renders a markdown digest of the report: coverage headline,
// team sizing, and year rollups.
func Summary(report *pipeline.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capacity Allocation Report\n\n")
	fmt.Fprintf(&b, "Run `%s` | assumptions `%s` | generated %s\n\n", report.RunID, report.AssumptionVersion, report.GeneratedAt)

	fmt.Fprintf(&b, "## Coverage\n\n")
	fmt.Fprintf(&b, "- Covered accounts: %d of %d (target %d)\n",
		report.Coverage.CoveredCount,
		report.Coverage.CoveredCount+report.Coverage.UncoveredCount,
		report.Coverage.TargetCoverageCount)
	if report.Coverage.CoveragePercent != nil {
		fmt.Fprintf(&b, "- TAM coverage: %.1f%%\n", *report.Coverage.CoveragePercent*100)
	} else {
		fmt.Fprintf(&b, "- TAM coverage: n/a (portfolio has no TAM)\n")
	}
	fmt.Fprintf(&b, "- TAM covered: $%.0f | uncovered: $%.0f\n\n", report.Coverage.TAMCovered, report.Coverage.TAMUncovered)

	fmt.Fprintf(&b, "## Team Sizing\n\n")
	fmt.Fprintf(&b, "| Tier | TAM | AE | SE |\n|---|---|---|---|\n")
	for _, sizing := range report.TeamSizing {
		fmt.Fprintf(&b, "| %s | $%.0f | %.2f | %.2f |\n", sizing.Tier, sizing.TotalTAM, sizing.AE, sizing.SE)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Yearly Rollup\n\n")
	fmt.Fprintf(&b, "| Tier | Year | Potential | Captured | Captured RRR |\n|---|---|---|---|---|\n")
	for _, ty := range report.Rollup.ByTierYear {
		fmt.Fprintf(&b, "| %s | %d | $%.0f | $%.0f | $%.0f |\n",
			ty.Tier, ty.Year, ty.Potential, ty.Captured, ty.AdjustedCapturedRRR)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(&b, "\n## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

// Clean strips conversational filler and outer code fences from drafted
// narrative so the output is pure markdown ready for rendering.
func Clean(input string) string {
	cleaned := strings.TrimSpace(input)
	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// Valid checks that a string parses as markdown. Goldmark is permissive,
// so this is a basic sanity gate before handing text to the frontend.
func Valid(input string) bool {
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader([]byte(input)))
	return doc != nil
}
