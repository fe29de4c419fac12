package allocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bank_dashboard/pkg/core/pipeline"
	"bank_dashboard/pkg/core/render"
	"bank_dashboard/pkg/core/store"
	"bank_dashboard/pkg/core/team"
)

// Handler holds dependencies for the allocation report endpoint.
type Handler struct {
	Repo    *store.SnapshotRepo
	Drafter render.NarrativeDrafter // optional
}

// NewHandler creates a new allocation handler.
func NewHandler(repo *store.SnapshotRepo, drafter render.NarrativeDrafter) *Handler {
	return &Handler{Repo: repo, Drafter: drafter}
}

type ReportRequest struct {
	AssumptionVersion   string `json:"assumption_version"`
	TargetCoverageCount int    `json:"target_coverage_count"`
	IncludeMarkdown     bool   `json:"include_markdown"`
	IncludeNarrative    bool   `json:"include_narrative"`
}

type ReportResponse struct {
	Report    *pipeline.Report `json:"report"`
	Markdown  string           `json:"markdown,omitempty"`
	Narrative string           `json:"narrative,omitempty"`
}

// HandleReport recomputes the full allocation report from the current
// snapshot. The report is never persisted; every request is a fresh run.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ReportRequest
	if r.Body != nil {
		// An empty body means default version, no overrides.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	ctx := r.Context()
	fmt.Printf("[ALLOCATION] Report request: version=%q coverage_override=%d\n",
		req.AssumptionVersion, req.TargetCoverageCount)

	inputs, err := h.loadInputs(ctx, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	report, err := pipeline.NewOrchestrator().Run(inputs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	fmt.Printf("[ALLOCATION] Run %s complete: %d accounts, %d warnings\n",
		report.RunID, len(report.Accounts), len(report.Warnings))

	resp := ReportResponse{Report: report}
	if req.IncludeMarkdown {
		resp.Markdown = render.Summary(report)
	}
	if req.IncludeNarrative && h.Drafter != nil {
		draftCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
		narrative, err := h.Drafter.DraftNarrative(draftCtx, report)
		if err != nil {
			fmt.Printf("[WARNING] Narrative drafting failed: %v\n", err)
		} else {
			narrative = render.Clean(narrative)
			if render.Valid(narrative) {
				resp.Narrative = narrative
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) loadInputs(ctx context.Context, req ReportRequest) (pipeline.Inputs, error) {
	set, err := h.Repo.LoadAssumptions(ctx, req.AssumptionVersion)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	accounts, err := h.Repo.LoadAccounts(ctx)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	roster, err := h.Repo.LoadRoster(ctx)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	if roster == nil {
		roster = &team.Roster{}
	}
	return pipeline.Inputs{
		Accounts:            accounts,
		Assumptions:         set,
		Roster:              roster,
		TargetCoverageCount: req.TargetCoverageCount,
	}, nil
}
