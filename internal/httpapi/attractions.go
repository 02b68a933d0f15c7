package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"daytrip/internal/logging"
	"daytrip/internal/models"
	"daytrip/internal/store"
)

type attractionRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Addr1    string  `json:"addr1" validate:"max=255"`
	Addr2    string  `json:"addr2" validate:"max=255"`
	Tel      string  `json:"tel" validate:"max=50"`
	Image    string  `json:"image"`
	MapX     float64 `json:"mapx" validate:"longitude"`
	MapY     float64 `json:"mapy" validate:"latitude"`
	AreaCode string  `json:"areacode" validate:"max=10"`
	Overview string  `json:"overview"`
}

func (req attractionRequest) model() models.Attraction {
	return models.Attraction{
		Title:    req.Title,
		Addr1:    req.Addr1,
		Addr2:    req.Addr2,
		Tel:      req.Tel,
		Image:    req.Image,
		MapX:     req.MapX,
		MapY:     req.MapY,
		AreaCode: req.AreaCode,
		Overview: req.Overview,
	}
}

type attractionPatchRequest struct {
	Title    *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Addr1    *string  `json:"addr1" validate:"omitempty,max=255"`
	Addr2    *string  `json:"addr2" validate:"omitempty,max=255"`
	Tel      *string  `json:"tel" validate:"omitempty,max=50"`
	Image    *string  `json:"image"`
	MapX     *float64 `json:"mapx" validate:"omitempty,longitude"`
	MapY     *float64 `json:"mapy" validate:"omitempty,latitude"`
	AreaCode *string  `json:"areacode" validate:"omitempty,max=10"`
	Overview *string  `json:"overview"`
}

func (req attractionPatchRequest) patch() models.AttractionPatch {
	return models.AttractionPatch{
		Title:    req.Title,
		Addr1:    req.Addr1,
		Addr2:    req.Addr2,
		Tel:      req.Tel,
		Image:    req.Image,
		MapX:     req.MapX,
		MapY:     req.MapY,
		AreaCode: req.AreaCode,
		Overview: req.Overview,
	}
}

func (s *Server) handleListAttractions(w http.ResponseWriter, r *http.Request) {
	filter := models.AttractionFilter{Location: r.URL.Query().Get("location")}
	attractions, err := s.attractions.List(r.Context(), filter)
	if err != nil {
		s.writeAttractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attractions)
}

func (s *Server) handleCreateAttraction(w http.ResponseWriter, r *http.Request) {
	var req attractionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := s.attractions.Create(r.Context(), req.model())
	if err != nil {
		s.writeAttractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetAttraction(w http.ResponseWriter, r *http.Request) {
	id, ok := attractionID(w, r)
	if !ok {
		return
	}
	attraction, err := s.attractions.Get(r.Context(), id)
	if err != nil {
		s.writeAttractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attraction)
}

func (s *Server) handleUpdateAttraction(w http.ResponseWriter, r *http.Request) {
	id, ok := attractionID(w, r)
	if !ok {
		return
	}
	var req attractionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	updated, err := s.attractions.Update(r.Context(), id, req.model())
	if err != nil {
		s.writeAttractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handlePatchAttraction(w http.ResponseWriter, r *http.Request) {
	id, ok := attractionID(w, r)
	if !ok {
		return
	}
	var req attractionPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if err := s.check(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	updated, err := s.attractions.Patch(r.Context(), id, req.patch())
	if err != nil {
		s.writeAttractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAttraction(w http.ResponseWriter, r *http.Request) {
	id, ok := attractionID(w, r)
	if !ok {
		return
	}
	if err := s.attractions.Delete(r.Context(), id); err != nil {
		s.writeAttractionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func attractionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid attraction id"})
		return 0, false
	}
	return id, true
}

func (s *Server) writeAttractionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrAttractionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrInvalidAttraction):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logging.WithContext(r.Context()).Error().Err(err).Msg("attraction request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
