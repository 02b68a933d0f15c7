package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"daytrip/internal/app/search"
	"daytrip/internal/app/trips"
	"daytrip/internal/geo"
	"daytrip/internal/logging"
)

type placeSearchRequest struct {
	Location  string   `json:"location" validate:"required"`
	Category  string   `json:"category"`
	MinRating *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
}

type locationTripRequest struct {
	Location      string   `json:"location"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,longitude"`
	DurationHours *float64 `json:"duration_hours" validate:"omitempty,gt=0,lte=24"`
	Transport     string   `json:"transport"`
	MinRating     *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
}

type dayTripRequest struct {
	Location     string   `json:"location" validate:"required"`
	Preferences  []string `json:"preferences"`
	DurationDays int      `json:"duration_days" validate:"omitempty,min=1,max=14"`
	TravelStyle  string   `json:"travel_style"`
	WithWho      string   `json:"with_who"`
}

type dbSearchRequest struct {
	Keyword       string   `json:"keyword"`
	UserType      string   `json:"user_type" validate:"omitempty,oneof=alone couple family friends"`
	DriveCourse   bool     `json:"is_drive_course"`
	KidsZone      bool     `json:"is_kids_zone"`
	NoKidsZone    bool     `json:"is_no_kids_zone"`
	PetZone       bool     `json:"is_pet_zone"`
	MaxTravelTime int      `json:"max_travel_time" validate:"gte=0"`
	Categories    []string `json:"categories"`
	SortBy        string   `json:"sort_by" validate:"omitempty,oneof=popularity rating review_count distance"`
	Page          int      `json:"page" validate:"gte=0"`
	PageSize      int      `json:"page_size" validate:"gte=0,lte=100"`
}

func (req dbSearchRequest) options() search.Options {
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = search.SortPopularity
	}
	return search.Options{
		Keyword:          req.Keyword,
		UserType:         req.UserType,
		DriveCourse:      req.DriveCourse,
		KidsZone:         req.KidsZone,
		NoKidsZone:       req.NoKidsZone,
		PetZone:          req.PetZone,
		MaxTravelMinutes: req.MaxTravelTime,
		Categories:       req.Categories,
		SortBy:           sortBy,
		Page:             req.Page,
		PageSize:         req.PageSize,
	}
}

func (s *Server) handlePlaceSearch(w http.ResponseWriter, r *http.Request) {
	var req placeSearchRequest
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req.Location = q.Get("location")
		req.Category = q.Get("category")
		rating, err := optionalFloat(q, "min_rating")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.MinRating = rating
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if err := s.check(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.trips.Search(r.Context(), trips.SearchRequest{
		Location:  req.Location,
		Category:  req.Category,
		MinRating: req.MinRating,
	})
	if err != nil {
		s.writeTripError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLocationTrip(w http.ResponseWriter, r *http.Request) {
	var req locationTripRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tripReq := trips.LocationTripRequest{
		Location:  req.Location,
		Transport: req.Transport,
		MinRating: req.MinRating,
	}
	if req.Latitude != nil && req.Longitude != nil {
		tripReq.Origin = &geo.Point{Lat: *req.Latitude, Lon: *req.Longitude}
	}
	if req.DurationHours != nil {
		tripReq.Hours = *req.DurationHours
	}

	plan, err := s.trips.LocationTrip(r.Context(), tripReq)
	if err != nil {
		s.writeTripError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDayTrip(w http.ResponseWriter, r *http.Request) {
	var req dayTripRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	plan, err := s.trips.DayTrip(r.Context(), trips.DayTripRequest{
		Location:    req.Location,
		Preferences: req.Preferences,
		Days:        req.DurationDays,
		Style:       req.TravelStyle,
		Companion:   req.WithWho,
	})
	if err != nil {
		s.writeTripError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDBSearch(w http.ResponseWriter, r *http.Request) {
	var req dbSearchRequest
	if r.Method == http.MethodGet {
		parsed, err := dbSearchFromQuery(r.URL.Query())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req = parsed
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if err := s.check(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	page, err := s.search.Search(r.Context(), req.options())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("keyword", req.Keyword).Msg("place search failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "place search failed"})
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func dbSearchFromQuery(q url.Values) (dbSearchRequest, error) {
	req := dbSearchRequest{
		Keyword:     q.Get("keyword"),
		UserType:    q.Get("user_type"),
		DriveCourse: q.Get("is_drive_course") == "true",
		KidsZone:    q.Get("is_kids_zone") == "true",
		NoKidsZone:  q.Get("is_no_kids_zone") == "true",
		PetZone:     q.Get("is_pet_zone") == "true",
		Categories:  q["categories"],
		SortBy:      q.Get("sort_by"),
	}
	var err error
	if req.MaxTravelTime, err = optionalInt(q, "max_travel_time"); err != nil {
		return req, err
	}
	if req.Page, err = optionalInt(q, "page"); err != nil {
		return req, err
	}
	if req.PageSize, err = optionalInt(q, "page_size"); err != nil {
		return req, err
	}
	return req, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New(key + " must be a number")
	}
	return &v, nil
}

func optionalInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}

func (s *Server) writeTripError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, trips.ErrLocationRequired) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	logging.WithContext(r.Context()).Error().Err(err).Msg("trip planning failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "trip planning failed"})
}
