package config

import (
	"encoding/json"
	"net/http"

	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/store"
)

// Handler holds dependencies for assumption-set endpoints.
type Handler struct {
	Repo *store.SnapshotRepo
}

// NewHandler creates a new config handler.
func NewHandler(repo *store.SnapshotRepo) *Handler {
	return &Handler{Repo: repo}
}

// HandleVersions lists stored assumption-set versions, newest first.
func (h *Handler) HandleVersions(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	versions, err := h.Repo.ListAssumptionVersions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if versions == nil {
		versions = []store.AssumptionVersion{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(versions)
}

// HandleGet returns one assumption set. The version comes from the
// `version` query parameter; empty selects the latest.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	set, err := h.Repo.LoadAssumptions(r.Context(), r.URL.Query().Get("version"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(set)
}

// HandleSave upserts a versioned assumption set after validation.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	set := &assumption.Set{}
	if err := json.NewDecoder(r.Body).Decode(set); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	set.ApplyDefaults()
	if err := h.Repo.SaveAssumptions(r.Context(), set); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "saved", "version": set.Version})
}
