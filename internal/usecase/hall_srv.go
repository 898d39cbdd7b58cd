package usecase

import (
	"context"

	"cinema-boxoffice/internal/catalog"
	"cinema-boxoffice/internal/dto/response"

	"go.uber.org/zap"
)

// HallService is the read side of the hall catalog.
type HallService interface {
	List(ctx context.Context) []response.HallResponse
	Get(ctx context.Context, id string) (*response.HallResponse, error)
}

type hallService struct {
	store *catalog.Store
	log   *zap.Logger
}

func NewHallService(store *catalog.Store, log *zap.Logger) HallService {
	return &hallService{
		store: store,
		log:   log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) List(ctx context.Context) []response.HallResponse {
	halls := s.store.Halls()
	out := make([]response.HallResponse, 0, len(halls))
	for _, h := range halls {
		out = append(out, response.HallToResponse(h))
	}
	return out
}

func (s *hallService) Get(ctx context.Context, id string) (*response.HallResponse, error) {
	hall, err := s.store.Hall(id)
	if err != nil {
		return nil, err
	}
	resp := response.HallToResponse(hall)
	return &resp, nil
}
