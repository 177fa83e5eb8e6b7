package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "USD"

type PricingService interface {
	// Quote prices a stay night by night, applying special-day rules. A
	// blocked night anywhere in the range rejects the whole quote.
	Quote(ctx context.Context, req *request.AvailabilityRequest) (*response.PriceQuoteResponse, error)
}

type pricingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPricingService(repo *repository.Repository, log *zap.Logger) PricingService {
	return &pricingService{
		repo: repo,
		log:  log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Quote(ctx context.Context, req *request.AvailabilityRequest) (*response.PriceQuoteResponse, error) {
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

	rules, err := s.repo.SpecialDay.FindForRange(ctx, roomTypeID, start, end)
	if err != nil {
		return nil, err
	}
	ruleByNight := indexRulesByNight(rules, roomTypeID)

	nights := utils.Nights(start, end)
	nightPrices := make([]response.NightPrice, 0, len(nights))
	var total int64

	for _, night := range nights {
		price := roomType.BasePriceMinor
		special := false

		if rule, ok := ruleByNight[night]; ok {
			if rule.RuleType == entity.SpecialDayBlocked {
				return nil, fmt.Errorf("%w: %s is not bookable", ErrRuleViolation, night.Format("2006-01-02"))
			}
			price = applySpecialRate(roomType.BasePriceMinor, rule)
			special = true
		}

		nightTotal := price * int64(rooms)
		total += nightTotal
		nightPrices = append(nightPrices, response.NightPrice{
			Date:        night.Format("2006-01-02"),
			PriceMinor:  nightTotal,
			SpecialRate: special,
		})
	}

	deposit, err := s.requiredDeposit(ctx, rooms, total)
	if err != nil {
		return nil, err
	}

	return &response.PriceQuoteResponse{
		RoomTypeID:   roomTypeID.String(),
		Rooms:        rooms,
		Currency:     defaultCurrency,
		Nights:       nightPrices,
		TotalMinor:   total,
		DepositMinor: deposit,
	}, nil
}

func (s *pricingService) requiredDeposit(ctx context.Context, rooms int, totalMinor int64) (int64, error) {
	policies, err := s.repo.BookingRule.FindActiveDepositPolicies(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range policies {
		if !p.Covers(rooms) {
			continue
		}
		switch p.Type {
		case entity.DepositPercent:
			return roundHalfUp(float64(totalMinor) * p.Value / 100), nil
		case entity.DepositFixed:
			return roundHalfUp(p.Value), nil
		}
	}

	return 0, nil
}

// indexRulesByNight keeps at most one rule per night, letting a
// room-type-scoped rule shadow a global one.
func indexRulesByNight(rules []*entity.SpecialDayRule, roomTypeID uuid.UUID) map[time.Time]*entity.SpecialDayRule {
	byNight := make(map[time.Time]*entity.SpecialDayRule, len(rules))
	for _, rule := range rules {
		if !rule.AppliesTo(roomTypeID) {
			continue
		}
		night := utils.NormalizeDate(rule.Night)
		existing, ok := byNight[night]
		if ok && existing.RoomTypeID != nil && rule.RoomTypeID == nil {
			continue
		}
		byNight[night] = rule
	}
	return byNight
}

func applySpecialRate(baseMinor int64, rule *entity.SpecialDayRule) int64 {
	if rule.RateType == nil || rule.RateValue == nil {
		return baseMinor
	}
	switch *rule.RateType {
	case entity.RateMultiplier:
		return roundHalfUp(float64(baseMinor) * *rule.RateValue)
	case entity.RateFixed:
		return roundHalfUp(*rule.RateValue)
	default:
		return baseMinor
	}
}

// roundHalfUp rounds to the nearest minor unit, halves away from zero
// toward positive infinity. Prices are non-negative so this matches
// commercial rounding.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// parseStayRange validates and normalizes the shared id/date triple.
func parseStayRange(roomTypeID, startDate, endDate string) (uuid.UUID, time.Time, time.Time, error) {
	id, err := uuid.Parse(roomTypeID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("%w: invalid room type id", ErrValidation)
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date", ErrValidation)
	}

	end, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date", ErrValidation)
	}

	start = utils.NormalizeDate(start)
	end = utils.NormalizeDate(end)

	if !end.After(start) {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}

	return id, start, end, nil
}
