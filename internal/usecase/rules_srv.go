package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type RulesService interface {
	// ValidateWindow enforces the advance-booking and minimum-notice windows
	// for the guest class. Both bounds are inclusive: with a 90-day advance
	// limit, a stay starting exactly 90 days out is allowed.
	ValidateWindow(ctx context.Context, guestType entity.GuestType, startDate, now time.Time) error

	UpsertRule(ctx context.Context, guestType entity.GuestType, maxDaysAdvance, minDaysNotice int) error
}

type rulesService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRulesService(repo *repository.Repository, log *zap.Logger) RulesService {
	return &rulesService{
		repo: repo,
		log:  log.With(zap.String("service", "rules")),
	}
}

func (s *rulesService) ValidateWindow(ctx context.Context, guestType entity.GuestType, startDate, now time.Time) error {
	rule, err := s.repo.BookingRule.FindByGuestType(ctx, guestType)
	if err != nil {
		return err
	}
	if rule == nil {
		return fmt.Errorf("%w: no booking rule configured for guest type %s",
			ErrRuleViolation, string(guestType))
	}

	days := utils.DaysUntil(now, startDate)

	if days < rule.MinDaysNotice {
		return fmt.Errorf("%w: stays for %s guests need at least %d days notice",
			ErrRuleViolation, string(guestType), rule.MinDaysNotice)
	}

	if days > rule.MaxDaysAdvance {
		return fmt.Errorf("%w: stays for %s guests can start at most %d days ahead",
			ErrRuleViolation, string(guestType), rule.MaxDaysAdvance)
	}

	return nil
}

func (s *rulesService) UpsertRule(ctx context.Context, guestType entity.GuestType, maxDaysAdvance, minDaysNotice int) error {
	if minDaysNotice > maxDaysAdvance {
		return fmt.Errorf("%w: minimum notice cannot exceed the advance limit", ErrValidation)
	}

	rule := &entity.BookingRule{
		GuestType:      guestType,
		MaxDaysAdvance: maxDaysAdvance,
		MinDaysNotice:  minDaysNotice,
	}

	if err := s.repo.BookingRule.Upsert(ctx, rule); err != nil {
		return err
	}

	s.log.Info("Booking rule updated",
		zap.String("guest_type", string(guestType)),
		zap.Int("max_days_advance", maxDaysAdvance),
		zap.Int("min_days_notice", minDaysNotice),
	)

	return nil
}
