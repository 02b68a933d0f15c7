package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"daytrip/internal/app/search"
	"daytrip/internal/app/trips"
	"daytrip/internal/app/users"
	"daytrip/internal/models"
	"daytrip/internal/pettour"
	"daytrip/internal/planner"
	"daytrip/internal/quota"
)

// UserService captures the account and quota operations needed by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, reg models.Registration) (users.Session, error)
	Login(ctx context.Context, email, password string) (users.Session, quota.Status, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	SearchStatus(ctx context.Context, userID int64) (quota.Status, error)
	UseSearch(ctx context.Context, userID int64) (quota.Status, error)
	ResetSearch(ctx context.Context, userID int64) (quota.Status, error)
}

// AttractionService describes attraction catalogue workflows.
type AttractionService interface {
	List(ctx context.Context, filter models.AttractionFilter) ([]models.Attraction, error)
	Get(ctx context.Context, id int64) (models.Attraction, error)
	Create(ctx context.Context, a models.Attraction) (models.Attraction, error)
	Update(ctx context.Context, id int64, a models.Attraction) (models.Attraction, error)
	Patch(ctx context.Context, id int64, patch models.AttractionPatch) (models.Attraction, error)
	Delete(ctx context.Context, id int64) error
}

// TripService plans trips and runs provider searches.
type TripService interface {
	Search(ctx context.Context, req trips.SearchRequest) (trips.SearchResult, error)
	LocationTrip(ctx context.Context, req trips.LocationTripRequest) (planner.TripPlan, error)
	DayTrip(ctx context.Context, req trips.DayTripRequest) (planner.TripPlan, error)
}

// SearchService runs the database-backed place search.
type SearchService interface {
	Search(ctx context.Context, opts search.Options) (search.Page, error)
}

// PetTourSyncer refreshes the pet-friendly spot mirror.
type PetTourSyncer interface {
	Run(ctx context.Context) (pettour.Result, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users       UserService
	attractions AttractionService
	trips       TripService
	search      SearchService
	petTour     PetTourSyncer
	validate    *validator.Validate
}

// New configures a Server. petTour may be nil, in which case manual syncs
// answer 503.
func New(
	users UserService,
	attractions AttractionService,
	trips TripService,
	search SearchService,
	petTour PetTourSyncer,
) *Server {
	return &Server{
		users:       users,
		attractions: attractions,
		trips:       trips,
		search:      search,
		petTour:     petTour,
		validate:    newValidator(),
	}
}

// Routes exposes the HTTP handlers. Paths answer with and without a trailing slash.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Attractions
	handle(r, "/api/attractions/", s.handleListAttractions, http.MethodGet)
	handle(r, "/api/attractions/", s.staffOnly(s.handleCreateAttraction), http.MethodPost)
	handle(r, "/api/attractions/{id:[0-9]+}/", s.handleGetAttraction, http.MethodGet)
	handle(r, "/api/attractions/{id:[0-9]+}/", s.staffOnly(s.handleUpdateAttraction), http.MethodPut)
	handle(r, "/api/attractions/{id:[0-9]+}/", s.staffOnly(s.handlePatchAttraction), http.MethodPatch)
	handle(r, "/api/attractions/{id:[0-9]+}/", s.staffOnly(s.handleDeleteAttraction), http.MethodDelete)

	// Trip planning and search
	handle(r, "/api/attractions/search/", s.handlePlaceSearch, http.MethodGet, http.MethodPost)
	handle(r, "/api/attractions/location-trip/", s.handleLocationTrip, http.MethodPost)
	handle(r, "/api/attractions/ai-trip/", s.handleDayTrip, http.MethodPost)
	for _, path := range []string{
		"/api/attractions/places/search/",
		"/api/attractions/attractions/search/",
		"/api/attractions/foods/search/",
	} {
		handle(r, path, s.handleDBSearch, http.MethodGet, http.MethodPost)
	}

	// Pet tour
	handle(r, "/api/pet-tour/sync/", s.staffOnly(s.handlePetTourSync), http.MethodPost)

	// Users
	handle(r, "/api/users/register/", s.handleRegister, http.MethodPost)
	handle(r, "/api/users/login/", s.handleLogin, http.MethodPost)
	handle(r, "/api/users/logout/", s.authenticated(s.handleLogout), http.MethodPost)
	handle(r, "/api/users/me/", s.authenticated(s.handleMe), http.MethodGet)
	handle(r, "/api/users/profile/", s.authenticated(s.handleUpdateProfile), http.MethodPut, http.MethodPatch)
	handle(r, "/api/users/check-email/", s.handleCheckEmail, http.MethodGet)
	handle(r, "/api/users/forgot-password/", s.handleForgotPassword, http.MethodPost)
	handle(r, "/api/users/search-count/", s.authenticated(s.handleSearchCount), http.MethodGet)
	handle(r, "/api/users/use-search/", s.authenticated(s.handleUseSearch), http.MethodPost)
	handle(r, "/api/users/reset-search-count/", s.authenticated(s.handleResetSearchCount), http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	return r
}

// handle registers h for path and for path without its trailing slash.
func handle(r *mux.Router, path string, h http.HandlerFunc, methods ...string) {
	r.HandleFunc(path, h).Methods(methods...)
	if trimmed := strings.TrimSuffix(path, "/"); trimmed != path && trimmed != "" {
		r.HandleFunc(trimmed, h).Methods(methods...)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// decodeAndValidate reads a JSON body into dst and validates it. The returned
// error message is safe to show to clients.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON payload")
	}
	return s.check(dst)
}

func (s *Server) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return errors.New(validationMessage(verrs[0]))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", fe.Field())
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", fe.Field(), fe.Tag())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
