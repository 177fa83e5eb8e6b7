package adaptor

import (
	"errors"
	"net/http"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	Availability *AvailabilityHandler
	Room         *RoomHandler
	Webhook      *WebhookHandler
	Access       *AccessHandler
	Admin        *AdminHandler
}

func NewHandler(service *usecase.Service, webhookSecret string, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, log),
		Availability: NewAvailabilityHandler(service.Availability, service.Pricing, log),
		Room:         NewRoomHandler(service.Room, log),
		Webhook:      NewWebhookHandler(service.Payment, webhookSecret, log),
		Access:       NewAccessHandler(service.Access, log),
		Admin:        NewAdminHandler(service.Admin, service.Rules, service.Booking, log),
	}
}

// Stable machine-readable error codes returned in the response envelope.
const (
	codeValidation     = "VALIDATION_ERROR"
	codeRuleViolation  = "RULE_VIOLATION"
	codeNoAvailability = "NO_AVAILABILITY"
	codeNotFound       = "NOT_FOUND"
	codeForbidden      = "FORBIDDEN"
	codeConflict       = "CONFLICT"
	codeInternal       = "INTERNAL_ERROR"
)

// handleServiceError maps service errors onto HTTP responses by sentinel,
// not by message text, so wrapped detail strings stay free-form.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseError(w, http.StatusBadRequest, codeValidation, err.Error())

	case errors.Is(err, usecase.ErrRuleViolation):
		log.Warn(operation+" violated booking rules", zap.Error(err))
		utils.ResponseError(w, http.StatusUnprocessableEntity, codeRuleViolation, err.Error())

	case errors.Is(err, repository.ErrNoAvailability):
		log.Warn(operation+" found no availability", zap.Error(err))
		utils.ResponseError(w, http.StatusConflict, codeNoAvailability, err.Error())

	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrRoomTypeNotFound):
		log.Warn(operation+" target not found", zap.Error(err))
		utils.ResponseError(w, http.StatusNotFound, codeNotFound, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseError(w, http.StatusForbidden, codeForbidden, err.Error())

	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, repository.ErrInvalidTransition):
		log.Warn(operation+" conflicts with current state", zap.Error(err))
		utils.ResponseError(w, http.StatusConflict, codeConflict, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func isAdminRequest(r *http.Request) bool {
	role, ok := utils.GetRoleFromContext(r.Context())
	return ok && role == string(entity.RoleAdmin)
}
