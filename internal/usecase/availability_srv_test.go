package usecase

import (
	"context"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAvailabilityFixture(roomType *entity.RoomType, records []*entity.InventoryRecord, rules []*entity.SpecialDayRule) AvailabilityService {
	repo := &repository.Repository{
		RoomType:   &stubRoomTypeRepo{roomTypes: map[uuid.UUID]*entity.RoomType{roomType.ID: roomType}},
		Inventory:  &stubInventoryRepo{records: records},
		SpecialDay: &stubSpecialDayRepo{rules: rules},
	}
	return NewAvailabilityService(repo, zap.NewNop())
}

func TestCheckMissingLedgerRowsMeanFullAvailability(t *testing.T) {
	roomType := standardRoomType()
	svc := newAvailabilityFixture(roomType, nil, nil)

	result, err := svc.Check(context.Background(), &request.AvailabilityRequest{
		RoomTypeID: roomType.ID.String(),
		StartDate:  "2026-10-01",
		EndDate:    "2026-10-04",
		Rooms:      5,
	})
	require.NoError(t, err)

	assert.True(t, result.IsAvailable)
	assert.Equal(t, roomType.TotalRooms, result.MinAvailability)
	assert.Empty(t, result.BlockingDates)
}

func TestCheckReportsBlockingNights(t *testing.T) {
	roomType := standardRoomType()

	records := []*entity.InventoryRecord{
		{
			Base:           entity.Base{ID: uuid.New()},
			RoomTypeID:     roomType.ID,
			Night:          mustDate("2026-10-02"),
			AvailableRooms: 1,
		},
	}

	svc := newAvailabilityFixture(roomType, records, nil)

	result, err := svc.Check(context.Background(), &request.AvailabilityRequest{
		RoomTypeID: roomType.ID.String(),
		StartDate:  "2026-10-01",
		EndDate:    "2026-10-04",
		Rooms:      3,
	})
	require.NoError(t, err)

	assert.False(t, result.IsAvailable)
	assert.Equal(t, 1, result.MinAvailability)
	assert.Equal(t, []string{"2026-10-02"}, result.BlockingDates)
}

func TestCheckPartialDepletionStillAvailable(t *testing.T) {
	roomType := standardRoomType()

	records := []*entity.InventoryRecord{
		{
			Base:           entity.Base{ID: uuid.New()},
			RoomTypeID:     roomType.ID,
			Night:          mustDate("2026-10-01"),
			AvailableRooms: 4,
		},
	}

	svc := newAvailabilityFixture(roomType, records, nil)

	result, err := svc.Check(context.Background(), &request.AvailabilityRequest{
		RoomTypeID: roomType.ID.String(),
		StartDate:  "2026-10-01",
		EndDate:    "2026-10-03",
		Rooms:      3,
	})
	require.NoError(t, err)

	assert.True(t, result.IsAvailable)
	assert.Equal(t, 4, result.MinAvailability)
}

func TestCheckBlockedNightBlocksRegardlessOfInventory(t *testing.T) {
	roomType := standardRoomType()

	rules := []*entity.SpecialDayRule{{
		Base:     entity.Base{ID: uuid.New()},
		Night:    mustDate("2026-10-02"),
		RuleType: entity.SpecialDayBlocked,
	}}

	svc := newAvailabilityFixture(roomType, nil, rules)

	result, err := svc.Check(context.Background(), &request.AvailabilityRequest{
		RoomTypeID: roomType.ID.String(),
		StartDate:  "2026-10-01",
		EndDate:    "2026-10-04",
		Rooms:      1,
	})
	require.NoError(t, err)

	assert.False(t, result.IsAvailable)
	assert.Contains(t, result.BlockingDates, "2026-10-02")
}

func TestCheckUnknownRoomType(t *testing.T) {
	roomType := standardRoomType()
	svc := newAvailabilityFixture(roomType, nil, nil)

	_, err := svc.Check(context.Background(), &request.AvailabilityRequest{
		RoomTypeID: uuid.NewString(),
		StartDate:  "2026-10-01",
		EndDate:    "2026-10-02",
		Rooms:      1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
