package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/pcode-matching/internal/admin"
)

// ResolveResponse is the result of one resolution request.
type ResolveResponse struct {
	Country    string `json:"country"`
	Input      string `json:"input"`
	AdminLevel int    `json:"admin_level"`
	PCode      string `json:"pcode"`
	Exact      bool   `json:"exact"`
}

// PCodesResponse lists the registered codes for one admin level.
type PCodesResponse struct {
	AdminLevel int      `json:"admin_level"`
	PCodes     []string `json:"pcodes"`
}

// MatchResponse is one logged successful resolution.
type MatchResponse struct {
	Context string `json:"context"`
	Country string `json:"country"`
	Input   string `json:"input"`
	Output  string `json:"output"`
	Method  string `json:"method"`
}

// SkipResponse is one logged ignored or failed resolution.
type SkipResponse struct {
	Context string `json:"context"`
	Country string `json:"country"`
	Name    string `json:"name,omitempty"`
}

func (s *Server) levelFromQuery(w http.ResponseWriter, r *http.Request) (*admin.Level, int, bool) {
	raw := r.URL.Query().Get("level")
	if raw == "" {
		http.Error(w, "missing level parameter", http.StatusBadRequest)
		return nil, 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "invalid level parameter", http.StatusBadRequest)
		return nil, 0, false
	}
	level := s.levels[n]
	if level == nil {
		http.Error(w, "unknown admin level", http.StatusNotFound)
		return nil, 0, false
	}
	return level, n, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
	}
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	level, n, ok := s.levelFromQuery(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	countryISO3 := q.Get("country")
	input := q.Get("input")
	if countryISO3 == "" || input == "" {
		http.Error(w, "missing country or input parameter", http.StatusBadRequest)
		return
	}
	fuzzy := true
	if raw := q.Get("fuzzy"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "invalid fuzzy parameter", http.StatusBadRequest)
			return
		}
		fuzzy = parsed
	}
	logname := q.Get("context")
	if logname == "" {
		logname = "api"
	}

	pcode, exact := level.Resolve(countryISO3, input, fuzzy, logname)
	writeJSON(w, ResolveResponse{
		Country:    countryISO3,
		Input:      input,
		AdminLevel: n,
		PCode:      pcode,
		Exact:      exact,
	})
}

func (s *Server) handlePCodes(w http.ResponseWriter, r *http.Request) {
	level, n, ok := s.levelFromQuery(w, r)
	if !ok {
		return
	}
	pcodes := level.PCodes()
	if pcodes == nil {
		pcodes = []string{}
	}
	writeJSON(w, PCodesResponse{AdminLevel: n, PCodes: pcodes})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	level, _, ok := s.levelFromQuery(w, r)
	if !ok {
		return
	}
	out := make([]MatchResponse, 0)
	for _, rec := range level.Matches() {
		out = append(out, MatchResponse{
			Context: rec.Logname,
			Country: rec.CountryISO3,
			Input:   rec.Input,
			Output:  rec.Output,
			Method:  rec.Method,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleIgnored(w http.ResponseWriter, r *http.Request) {
	level, _, ok := s.levelFromQuery(w, r)
	if !ok {
		return
	}
	out := make([]SkipResponse, 0)
	for _, rec := range level.Ignored() {
		out = append(out, SkipResponse{
			Context: rec.Logname,
			Country: rec.CountryISO3,
			Name:    rec.Name,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	level, _, ok := s.levelFromQuery(w, r)
	if !ok {
		return
	}
	out := make([]SkipResponse, 0)
	for _, rec := range level.Errors() {
		out = append(out, SkipResponse{
			Context: rec.Logname,
			Country: rec.CountryISO3,
			Name:    rec.Name,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	for _, level := range s.levels {
		level.ResetDiagnostics()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	levels := make([]int, 0, len(s.levels))
	for n := range s.levels {
		levels = append(levels, n)
	}
	sort.Ints(levels)
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"levels": levels,
	})
}
