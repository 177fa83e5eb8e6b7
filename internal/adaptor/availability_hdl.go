package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	availability usecase.AvailabilityService
	pricing      usecase.PricingService
	log          *zap.Logger
}

func NewAvailabilityHandler(availability usecase.AvailabilityService, pricing usecase.PricingService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		pricing:      pricing,
		log:          log.With(zap.String("handler", "availability")),
	}
}

// CheckAvailability handles GET /api/availability (public)
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	req, ok := h.stayRequestFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.availability.Check(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// QuotePrice handles GET /api/quote (public)
func (h *AvailabilityHandler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	req, ok := h.stayRequestFromQuery(w, r)
	if !ok {
		return
	}

	quote, err := h.pricing.Quote(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote price")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

func (h *AvailabilityHandler) stayRequestFromQuery(w http.ResponseWriter, r *http.Request) (*request.AvailabilityRequest, bool) {
	query := r.URL.Query()

	req := &request.AvailabilityRequest{
		RoomTypeID: query.Get("room_type_id"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
		Rooms:      utils.ParseInt(query.Get("rooms"), 1),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return nil, false
	}

	return req, true
}
