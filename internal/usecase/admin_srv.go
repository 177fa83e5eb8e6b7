package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	CreateSpecialDay(ctx context.Context, req *request.CreateSpecialDayRequest) (*entity.SpecialDayRule, error)
	DeleteSpecialDay(ctx context.Context, id uuid.UUID) error
	ListSpecialDays(ctx context.Context) ([]*entity.SpecialDayRule, error)

	// AdjustInventory applies a manual correction to the ledger, for room
	// closures (maintenance) or reopenings. The same atomicity rules as
	// booking adjustments apply.
	AdjustInventory(ctx context.Context, req *request.AdjustInventoryRequest) error
	InventoryReport(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) (*response.InventoryReportResponse, error)

	Broadcast(ctx context.Context, req *request.BroadcastRequest) (int, error)
}

type adminService struct {
	repo     *repository.Repository
	notifier notify.Dispatcher
	log      *zap.Logger
	now      func() time.Time
}

func NewAdminService(repo *repository.Repository, notifier notify.Dispatcher, log *zap.Logger) AdminService {
	return &adminService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "admin")),
		now:      time.Now,
	}
}

func (s *adminService) CreateSpecialDay(ctx context.Context, req *request.CreateSpecialDayRequest) (*entity.SpecialDayRule, error) {
	night, err := time.ParseInLocation("2006-01-02", req.Night, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid night date", ErrValidation)
	}

	ruleType := entity.SpecialDayRuleType(req.RuleType)
	if ruleType == entity.SpecialDaySpecialRate && (req.RateType == nil || req.RateValue == nil) {
		return nil, fmt.Errorf("%w: special rate rules need a rate type and value", ErrValidation)
	}

	var roomTypeID *uuid.UUID
	if req.RoomTypeID != nil {
		id, err := uuid.Parse(*req.RoomTypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid room type id", ErrValidation)
		}
		rt, err := s.repo.RoomType.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if rt == nil {
			return nil, fmt.Errorf("%w: room type %s", ErrNotFound, id.String())
		}
		roomTypeID = &id
	}

	var rateType *entity.SpecialRateType
	if req.RateType != nil {
		rt := entity.SpecialRateType(*req.RateType)
		rateType = &rt
	}

	now := s.now()
	rule := &entity.SpecialDayRule{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Night:      utils.NormalizeDate(night),
		RoomTypeID: roomTypeID,
		RuleType:   ruleType,
		RateType:   rateType,
		RateValue:  req.RateValue,
	}

	if err := s.repo.SpecialDay.Create(ctx, rule); err != nil {
		return nil, err
	}

	s.log.Info("Special day rule created",
		zap.String("night", rule.Night.Format("2006-01-02")),
		zap.String("rule_type", string(rule.RuleType)),
	)

	return rule, nil
}

func (s *adminService) DeleteSpecialDay(ctx context.Context, id uuid.UUID) error {
	return s.repo.SpecialDay.Delete(ctx, id)
}

func (s *adminService) ListSpecialDays(ctx context.Context) ([]*entity.SpecialDayRule, error) {
	return s.repo.SpecialDay.FindAll(ctx, utils.NormalizeDate(s.now()))
}

func (s *adminService) AdjustInventory(ctx context.Context, req *request.AdjustInventoryRequest) error {
	roomTypeID, start, end, err := parseStayRange(req.RoomTypeID, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	direction := entity.AdjustDirection(req.Direction)

	err = s.repo.Inventory.AdjustRange(ctx, roomTypeID, start, end, req.Rooms, direction)
	if err != nil {
		return err
	}

	s.log.Info("Manual inventory adjustment applied",
		zap.String("room_type_id", roomTypeID.String()),
		zap.String("direction", string(direction)),
		zap.Int("rooms", req.Rooms),
	)

	return nil
}

func (s *adminService) InventoryReport(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) (*response.InventoryReportResponse, error) {
	roomType, err := s.repo.RoomType.FindByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	if roomType == nil {
		return nil, fmt.Errorf("%w: room type %s", ErrNotFound, roomTypeID.String())
	}

	records, err := s.repo.Inventory.FindRange(ctx, roomTypeID, start, end)
	if err != nil {
		return nil, err
	}

	availableByNight := make(map[time.Time]int, len(records))
	for _, rec := range records {
		availableByNight[utils.NormalizeDate(rec.Night)] = rec.AvailableRooms
	}

	nights := utils.Nights(start, end)
	report := &response.InventoryReportResponse{
		RoomTypeID: roomTypeID.String(),
		TotalRooms: roomType.TotalRooms,
		Nights:     make([]response.InventoryNight, 0, len(nights)),
	}

	for _, night := range nights {
		available, ok := availableByNight[night]
		if !ok {
			available = roomType.TotalRooms
		}
		report.Nights = append(report.Nights, response.InventoryNight{
			Night:          night.Format("2006-01-02"),
			AvailableRooms: available,
		})
	}

	return report, nil
}

func (s *adminService) Broadcast(ctx context.Context, req *request.BroadcastRequest) (int, error) {
	userIDs, err := s.repo.User.FindActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	data := map[string]string{"message": req.Message}
	sent := 0
	for _, id := range userIDs {
		if err := s.notifier.Send(ctx, id, notify.TypeBroadcast, notify.Channel(req.Channel), data); err != nil {
			s.log.Warn("Failed to broadcast to user",
				zap.Error(err),
				zap.String("user_id", id.String()),
			)
			continue
		}
		sent++
	}

	s.log.Info("Broadcast dispatched",
		zap.Int("recipients", sent),
		zap.String("channel", req.Channel),
	)

	return sent, nil
}
