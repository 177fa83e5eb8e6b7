package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	admin   usecase.AdminService
	rules   usecase.RulesService
	booking usecase.BookingService
	log     *zap.Logger
}

func NewAdminHandler(admin usecase.AdminService, rules usecase.RulesService, booking usecase.BookingService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:   admin,
		rules:   rules,
		booking: booking,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// CreateSpecialDay handles POST /api/admin/special-days (admin only)
func (h *AdminHandler) CreateSpecialDay(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSpecialDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rule, err := h.admin.CreateSpecialDay(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create special day")
		return
	}

	utils.ResponseCreated(w, "success", rule)
}

// DeleteSpecialDay handles DELETE /api/admin/special-days/{id} (admin only)
func (h *AdminHandler) DeleteSpecialDay(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid rule ID", nil)
		return
	}

	if err := h.admin.DeleteSpecialDay(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete special day")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListSpecialDays handles GET /api/admin/special-days (admin only)
func (h *AdminHandler) ListSpecialDays(w http.ResponseWriter, r *http.Request) {
	rules, err := h.admin.ListSpecialDays(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list special days")
		return
	}

	utils.ResponseSuccess(w, "success", rules)
}

// UpsertBookingRule handles PUT /api/admin/booking-rules (admin only)
func (h *AdminHandler) UpsertBookingRule(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertBookingRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	err := h.rules.UpsertRule(r.Context(), entity.GuestType(req.GuestType), req.MaxDaysAdvance, req.MinDaysNotice)
	if err != nil {
		handleServiceError(w, h.log, err, "upsert booking rule")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// AdjustInventory handles POST /api/admin/inventory/adjust (admin only)
func (h *AdminHandler) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	var req request.AdjustInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.admin.AdjustInventory(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "adjust inventory")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// InventoryReport handles GET /api/admin/inventory (admin only)
func (h *AdminHandler) InventoryReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	roomTypeID, err := utils.ParseUUID(query.Get("room_type_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid room type ID", nil)
		return
	}

	start, err := time.ParseInLocation("2006-01-02", query.Get("start_date"), time.UTC)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid start date", nil)
		return
	}

	end, err := time.ParseInLocation("2006-01-02", query.Get("end_date"), time.UTC)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid end date", nil)
		return
	}

	report, err := h.admin.InventoryReport(r.Context(), roomTypeID, start, end)
	if err != nil {
		handleServiceError(w, h.log, err, "inventory report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// Broadcast handles POST /api/admin/broadcast (admin only)
func (h *AdminHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req request.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	sent, err := h.admin.Broadcast(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "broadcast")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int{"recipients": sent})
}

// GetBooking handles GET /api/admin/bookings/{id} (admin only)
func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.booking.GetBooking(r.Context(), userID, bookingID, true)
	if err != nil {
		handleServiceError(w, h.log, err, "admin get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel (admin only)
func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.booking.CancelBooking(r.Context(), userID, bookingID, true)
	if err != nil {
		handleServiceError(w, h.log, err, "admin cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
