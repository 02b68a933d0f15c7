package attractions

import (
	"context"

	"daytrip/internal/models"
)

// Store describes the persistence operations required by the attraction service.
type Store interface {
	ListAttractions(ctx context.Context, filter models.AttractionFilter) ([]models.Attraction, error)
	AttractionByID(ctx context.Context, id int64) (models.Attraction, error)
	CreateAttraction(ctx context.Context, a models.Attraction) (models.Attraction, error)
	UpdateAttraction(ctx context.Context, a models.Attraction) (models.Attraction, error)
	DeleteAttraction(ctx context.Context, id int64) error
}

// Service exposes attraction catalogue workflows.
type Service interface {
	List(ctx context.Context, filter models.AttractionFilter) ([]models.Attraction, error)
	Get(ctx context.Context, id int64) (models.Attraction, error)
	Create(ctx context.Context, a models.Attraction) (models.Attraction, error)
	Update(ctx context.Context, id int64, a models.Attraction) (models.Attraction, error)
	Patch(ctx context.Context, id int64, patch models.AttractionPatch) (models.Attraction, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, filter models.AttractionFilter) ([]models.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAttractions(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (models.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return models.Attraction{}, err
	}
	return s.store.AttractionByID(ctx, id)
}

func (s *service) Create(ctx context.Context, a models.Attraction) (models.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return models.Attraction{}, err
	}
	a.ID = 0
	return s.store.CreateAttraction(ctx, a)
}

func (s *service) Update(ctx context.Context, id int64, a models.Attraction) (models.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return models.Attraction{}, err
	}
	a.ID = id
	return s.store.UpdateAttraction(ctx, a)
}

// Patch loads the attraction, applies the non-nil fields and saves it.
func (s *service) Patch(ctx context.Context, id int64, patch models.AttractionPatch) (models.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return models.Attraction{}, err
	}
	current, err := s.store.AttractionByID(ctx, id)
	if err != nil {
		return models.Attraction{}, err
	}
	return s.store.UpdateAttraction(ctx, patch.Apply(current))
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteAttraction(ctx, id)
}
