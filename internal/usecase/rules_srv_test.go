package usecase

import (
	"context"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRulesFixture(rules map[entity.GuestType]*entity.BookingRule) RulesService {
	repo := &repository.Repository{
		BookingRule: &stubBookingRuleRepo{rules: rules},
	}
	return NewRulesService(repo, zap.NewNop())
}

func regularRule() map[entity.GuestType]*entity.BookingRule {
	return map[entity.GuestType]*entity.BookingRule{
		entity.GuestRegular: {
			GuestType:      entity.GuestRegular,
			MaxDaysAdvance: 90,
			MinDaysNotice:  2,
		},
	}
}

func TestValidateWindowBoundsAreInclusive(t *testing.T) {
	svc := newRulesFixture(regularRule())
	now := mustDate("2026-01-01")

	tests := []struct {
		name    string
		start   string
		wantErr bool
	}{
		{"exactly at advance limit", "2026-04-01", false}, // 90 days out
		{"one past advance limit", "2026-04-02", true},    // 91 days out
		{"exactly at notice minimum", "2026-01-03", false},
		{"one under notice minimum", "2026-01-02", true},
		{"same day", "2026-01-01", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ValidateWindow(context.Background(), entity.GuestRegular, mustDate(tc.start), now)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrRuleViolation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateWindowMissingRule(t *testing.T) {
	svc := newRulesFixture(regularRule())

	err := svc.ValidateWindow(context.Background(), entity.GuestVIP, mustDate("2026-02-01"), mustDate("2026-01-01"))
	assert.ErrorIs(t, err, ErrRuleViolation)
}

func TestUpsertRuleRejectsInvertedWindow(t *testing.T) {
	svc := newRulesFixture(regularRule())

	err := svc.UpsertRule(context.Background(), entity.GuestRegular, 10, 20)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertRulePersists(t *testing.T) {
	stub := &stubBookingRuleRepo{rules: regularRule()}
	svc := NewRulesService(&repository.Repository{BookingRule: stub}, zap.NewNop())

	err := svc.UpsertRule(context.Background(), entity.GuestVIP, 180, 1)
	assert.NoError(t, err)
	assert.Len(t, stub.upserted, 1)
	assert.Equal(t, entity.GuestVIP, stub.upserted[0].GuestType)
}
