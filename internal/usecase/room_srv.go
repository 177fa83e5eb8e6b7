package usecase

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	ListRoomTypes(ctx context.Context) ([]*response.RoomTypeResponse, error)
	GetRoomType(ctx context.Context, id uuid.UUID) (*response.RoomTypeResponse, error)
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) ListRoomTypes(ctx context.Context) ([]*response.RoomTypeResponse, error) {
	roomTypes, err := s.repo.RoomType.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*response.RoomTypeResponse, 0, len(roomTypes))
	for _, rt := range roomTypes {
		items = append(items, response.NewRoomTypeResponse(rt))
	}
	return items, nil
}

func (s *roomService) GetRoomType(ctx context.Context, id uuid.UUID) (*response.RoomTypeResponse, error) {
	rt, err := s.repo.RoomType.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rt == nil || !rt.IsActive {
		return nil, fmt.Errorf("%w: room type %s", ErrNotFound, id.String())
	}
	return response.NewRoomTypeResponse(rt), nil
}
