package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	// Check answers whether every night of the range can cover the requested
	// rooms. The answer is advisory and holds nothing; confirmation re-checks
	// under lock.
	Check(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Check(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	roomTypeID, start, end, err := parseStayRange(req.RoomTypeID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	rooms := req.Rooms
	if rooms == 0 {
		rooms = 1
	}

	roomType, err := s.repo.RoomType.FindByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	if roomType == nil || !roomType.IsActive {
		return nil, fmt.Errorf("%w: room type %s", ErrNotFound, req.RoomTypeID)
	}

	records, err := s.repo.Inventory.FindRange(ctx, roomTypeID, start, end)
	if err != nil {
		return nil, err
	}

	availableByNight := make(map[time.Time]int, len(records))
	for _, rec := range records {
		availableByNight[utils.NormalizeDate(rec.Night)] = rec.AvailableRooms
	}

	specialRules, err := s.repo.SpecialDay.FindForRange(ctx, roomTypeID, start, end)
	if err != nil {
		return nil, err
	}
	ruleByNight := indexRulesByNight(specialRules, roomTypeID)

	minAvailable := roomType.TotalRooms
	var blocking []string

	for _, night := range utils.Nights(start, end) {
		if rule, ok := ruleByNight[night]; ok && rule.RuleType == entity.SpecialDayBlocked {
			blocking = append(blocking, night.Format("2006-01-02"))
			minAvailable = 0
			continue
		}

		// A missing ledger row means nothing was ever decremented for the
		// night, so the full room count is still open.
		available, ok := availableByNight[night]
		if !ok {
			available = roomType.TotalRooms
		}

		if available < minAvailable {
			minAvailable = available
		}
		if available < rooms {
			blocking = append(blocking, night.Format("2006-01-02"))
		}
	}

	return &response.AvailabilityResponse{
		IsAvailable:     len(blocking) == 0,
		MinAvailability: minAvailable,
		BlockingDates:   blocking,
	}, nil
}
