package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"daytrip/internal/app/attractions"
	"daytrip/internal/app/search"
	"daytrip/internal/app/trips"
	"daytrip/internal/app/users"
	"daytrip/internal/auth"
	"daytrip/internal/catalog"
	"daytrip/internal/config"
	"daytrip/internal/http/middleware"
	"daytrip/internal/httpapi"
	"daytrip/internal/pettour"
	"daytrip/internal/placeapi"
	"daytrip/internal/quota"
	"daytrip/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, quotaStore quota.Store) http.Handler {
	var provider placeapi.Client
	if cfg.Places.KakaoAPIKey != "" {
		provider = placeapi.NewKakaoClient(cfg.Places.KakaoAPIKey,
			placeapi.WithBaseURL(cfg.Places.KakaoBaseURL),
			placeapi.WithTimeout(cfg.Places.Timeout),
		)
	} else {
		log.Warn().Msg("KAKAO_REST_API_KEY not set, provider lookups disabled")
	}

	places := catalog.New(dataStore, provider)

	userService := users.New(
		dataStore,
		auth.NewIssuer(cfg.Security.JWTSecret, cfg.Security.TokenTTL),
		quota.NewLimiter(quotaStore),
	)
	attractionService := attractions.New(dataStore)
	tripService := trips.New(places)
	searchService := search.New(places)

	var syncer httpapi.PetTourSyncer
	if s := newPetTourSyncer(cfg.PetTour, dataStore); s != nil {
		syncer = s
	}

	api := httpapi.New(userService, attractionService, tripService, searchService, syncer)

	var handler http.Handler = api.Routes()
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler
}

// newPetTourSyncer returns nil when no open-data key is configured.
func newPetTourSyncer(cfg config.PetTourConfig, dataStore *store.Store) *pettour.Syncer {
	if cfg.APIKey == "" {
		return nil
	}
	client := pettour.NewClient(cfg.APIKey, cfg.BaseURL, 0)
	return pettour.NewSyncer(client, dataStore, log.Logger.With().Str("component", "pettour").Logger())
}
