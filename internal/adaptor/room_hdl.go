package adaptor

import (
	"net/http"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// ListRoomTypes handles GET /api/room-types (public)
func (h *RoomHandler) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	roomTypes, err := h.service.ListRoomTypes(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list room types")
		return
	}

	utils.ResponseSuccess(w, "success", roomTypes)
}

// GetRoomType handles GET /api/room-types/{id} (public)
func (h *RoomHandler) GetRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid room type ID", nil)
		return
	}

	roomType, err := h.service.GetRoomType(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get room type")
		return
	}

	utils.ResponseSuccess(w, "success", roomType)
}
