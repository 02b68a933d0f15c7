package httpapi

import (
	"net/http"

	"daytrip/internal/logging"
)

func (s *Server) handlePetTourSync(w http.ResponseWriter, r *http.Request) {
	if s.petTour == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "pet tour sync is not configured"})
		return
	}

	result, err := s.petTour.Run(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("manual pet tour sync failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "pet tour sync failed"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
