package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AccessHandler struct {
	service usecase.AccessService
	log     *zap.Logger
}

func NewAccessHandler(service usecase.AccessService, log *zap.Logger) *AccessHandler {
	return &AccessHandler{
		service: service,
		log:     log.With(zap.String("handler", "access")),
	}
}

// RequestCode handles POST /api/bookings/access-code (protected, rate limited)
func (h *AccessHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RequestAccessCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.RequestCode(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "request access code")
		return
	}

	utils.ResponseSuccess(w, "access code sent", nil)
}

// VerifyCode handles POST /api/bookings/access-code/verify (protected)
func (h *AccessHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.VerifyAccessCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.VerifyCode(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify access code")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
