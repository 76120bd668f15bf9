package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
	"github.com/Tjindl/HackTheCoast-sub000/internal/catalog"
	"github.com/Tjindl/HackTheCoast-sub000/internal/matching"
)

type matchResponse struct {
	TotalMatches int                   `json:"totalMatches"`
	Matches      []*matching.Outcome   `json:"matches"`
	Categorized  matching.Categories   `json:"categorized"`
	StudentData  *award.StudentProfile `json:"studentData"`
}

type analyzeChanceRequest struct {
	StudentData *award.StudentProfile `json:"studentData"`
	AwardID     string                `json:"awardId"`
}

type analyzeChancesRequest struct {
	StudentData *award.StudentProfile `json:"studentData"`
	AwardIDs    []string              `json:"awardIds,omitempty"`
	Limit       int                   `json:"limit,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "award matching API is running",
	})
}

func (s *Server) listAwards(w http.ResponseWriter, _ *http.Request) {
	awards, err := s.catalog.List()
	if err != nil {
		s.logger.Error("listing awards", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, awards.Items)
}

func (s *Server) getAward(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	a, err := s.catalog.Get(id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "award not found: "+id)
		return
	}
	if err != nil {
		s.logger.Error("getting award", zap.String("award_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	var profile award.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := profile.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	awards, err := s.catalog.List()
	if err != nil {
		s.logger.Error("listing awards for matching", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	result := matching.RankAndCategorize(&profile, awards)

	s.logger.Info("matched student to awards",
		zap.Int("catalog_size", awards.Len()),
		zap.Int("total_matches", result.TotalMatches),
	)

	respondJSON(w, http.StatusOK, matchResponse{
		TotalMatches: result.TotalMatches,
		Matches:      result.Matches,
		Categorized:  result.Categorized,
		StudentData:  &profile,
	})
}

func (s *Server) analyzeChance(w http.ResponseWriter, r *http.Request) {
	var req analyzeChanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.StudentData.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AwardID == "" {
		respondError(w, http.StatusBadRequest, "awardId is required")
		return
	}

	a, err := s.catalog.Get(req.AwardID)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "award not found: "+req.AwardID)
		return
	}
	if err != nil {
		s.logger.Error("getting award for analysis", zap.String("award_id", req.AwardID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	assessment := s.assessor.Assess(r.Context(), req.StudentData, a)
	respondJSON(w, http.StatusOK, assessment)
}

func (s *Server) analyzeChances(w http.ResponseWriter, r *http.Request) {
	var req analyzeChancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.StudentData.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var targets []*award.Award

	if len(req.AwardIDs) > 0 {
		for _, id := range req.AwardIDs {
			a, err := s.catalog.Get(id)
			if errors.Is(err, catalog.ErrNotFound) {
				respondError(w, http.StatusNotFound, "award not found: "+id)
				return
			}
			if err != nil {
				s.logger.Error("getting award for analysis", zap.String("award_id", id), zap.Error(err))
				respondError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			targets = append(targets, a)
		}
	} else {
		awards, err := s.catalog.List()
		if err != nil {
			s.logger.Error("listing awards for analysis", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		for _, m := range matching.Rank(req.StudentData, awards) {
			targets = append(targets, m.Award)
		}
	}

	assessments := s.assessor.AssessMany(r.Context(), req.StudentData, targets, req.Limit)
	respondJSON(w, http.StatusOK, assessments)
}
