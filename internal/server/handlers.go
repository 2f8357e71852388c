package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/buildagent/multibuild/internal/quickcalc"
	"github.com/buildagent/multibuild/internal/session"
)

// calculateRequest accepts the explicit fields plus a free-text message
// like "1.2 qm Pizzaofen premium"; explicit fields win over extracted ones.
type calculateRequest struct {
	quickcalc.Requirements
	Message string `json:"message"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var cr calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := cr.Requirements
	if cr.Message != "" {
		extracted := quickcalc.ExtractRequirements(cr.Message)
		if req.AreaSqm == 0 {
			req.AreaSqm = extracted.AreaSqm
		}
		if req.Quality == "" {
			req.Quality = extracted.Quality
		}
	}

	list, err := s.quick.Run(req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	quality := quickcalc.Tier(r.PathValue("quality"))

	area := 0.0
	if raw := r.URL.Query().Get("area"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid area parameter")
			return
		}
		area = parsed
	}

	list, err := s.quick.Run(quickcalc.Requirements{AreaSqm: area, Quality: quality})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, http.StatusOK, list)
}

type demoResult struct {
	Label  string                 `json:"label"`
	Area   float64                `json:"area_sqm"`
	Tier   quickcalc.Tier         `json:"quality_option"`
	Result quickcalc.ShoppingList `json:"result"`
}

func (s *Server) handleDemo(w http.ResponseWriter, _ *http.Request) {
	demos := []struct {
		label string
		area  float64
		tier  quickcalc.Tier
	}{
		{"Kompakter Ofen", 1.2, quickcalc.TierGuenstig},
		{"Standard Ofen", 1.8, quickcalc.TierSchnell},
		{"Großer Ofen", 2.5, quickcalc.TierPremium},
	}

	results := make([]demoResult, 0, len(demos))
	for _, d := range demos {
		list, err := s.quick.Run(quickcalc.Requirements{AreaSqm: d.area, Quality: d.tier})
		if err != nil {
			s.respondInternal(w, err)
			return
		}
		results = append(results, demoResult{Label: d.label, Area: d.area, Tier: d.tier, Result: list})
	}
	s.respond(w, http.StatusOK, map[string]any{"demo_results": results})
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	materials := s.catalog.Materials()
	if q := r.URL.Query().Get("q"); q != "" {
		materials = s.catalog.Search(q)
	}

	min, max := s.quick.Bounds()
	s.respond(w, http.StatusOK, map[string]any{
		"materials":       materials,
		"stats":           s.catalog.GetStats(),
		"oven_components": s.quick.Components(),
		"project_info": map[string]any{
			"name":         s.quick.Project(),
			"min_area_sqm": min,
			"max_area_sqm": max,
		},
	})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		s.respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := s.engine.ProcessMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respond(w, http.StatusOK, resp)
}

func (s *Server) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.engine.Info(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, session.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "session not found")
	case err != nil:
		s.respondInternal(w, err)
	default:
		s.respond(w, http.StatusOK, info)
	}
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.engine.Delete(r.Context(), id); err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
