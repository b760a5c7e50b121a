package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/formfill/rules"
)

// RegisterHTTP mounts the gateway endpoints on a chi router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/v1/rules", s.handleListRules)
	r.Post("/api/v1/rules", s.handleAddRule)
	r.Delete("/api/v1/rules/{id}", s.handleDeleteRule)
	r.Post("/api/v1/fill", s.handleFill)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleListRules(w http.ResponseWriter, r *http.Request) {
	profile, global, err := s.ListRules(r.Context())
	if err != nil {
		s.logger.Error("gateway: list rules failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch tier := rules.Tier(r.URL.Query().Get("tier")); {
	case tier == "":
		writeJSON(w, http.StatusOK, map[string][]rules.Rule{
			"profile": orEmpty(profile),
			"global":  orEmpty(global),
		})
	case tier == rules.TierProfile:
		writeJSON(w, http.StatusOK, map[string][]rules.Rule{"profile": orEmpty(profile)})
	case tier == rules.TierGlobal:
		writeJSON(w, http.StatusOK, map[string][]rules.Rule{"global": orEmpty(global)})
	default:
		http.Error(w, "Invalid tier", http.StatusBadRequest)
	}
}

type addRuleRequest struct {
	Tier rules.Tier `json:"tier"`
	rules.Rule
}

func (s *Service) handleAddRule(w http.ResponseWriter, r *http.Request) {
	var req addRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.AddRule(r.Context(), req.Tier, &req.Rule); err != nil {
		s.logger.Warn("gateway: add rule rejected", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, req.Rule)
}

func (s *Service) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.DeleteRule(r.Context(), id); err != nil {
		s.logger.Error("gateway: delete rule failed", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Service) handleFill(w http.ResponseWriter, r *http.Request) {
	var req FillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := s.Fill(r.Context(), req)
	switch {
	case errors.Is(err, ErrNoBrowser):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		s.logger.Error("gateway: fill failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func orEmpty(rs []rules.Rule) []rules.Rule {
	if rs == nil {
		return []rules.Rule{}
	}
	return rs
}
