// Package server exposes the matching engine and chance assessor over HTTP.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
	"github.com/Tjindl/HackTheCoast-sub000/internal/chance"
)

// Catalog is the read side of the award store consumed by the handlers.
type Catalog interface {
	List() (*award.Awards, error)
	Get(id string) (*award.Award, error)
}

type Server struct {
	catalog  Catalog
	assessor *chance.Assessor
	logger   *zap.Logger
}

func New(catalog Catalog, assessor *chance.Assessor, logger *zap.Logger) *Server {
	return &Server{
		catalog:  catalog,
		assessor: assessor,
		logger:   logger,
	}
}

// Handler builds the API router.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/health", s.health).Methods(http.MethodGet)
	router.HandleFunc("/api/awards", s.listAwards).Methods(http.MethodGet)
	router.HandleFunc("/api/awards/{id}", s.getAward).Methods(http.MethodGet)
	router.HandleFunc("/api/match", s.match).Methods(http.MethodPost)
	router.HandleFunc("/api/analyze-chance", s.analyzeChance).Methods(http.MethodPost)
	router.HandleFunc("/api/analyze-chances", s.analyzeChances).Methods(http.MethodPost)

	return router
}
