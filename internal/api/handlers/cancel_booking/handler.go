package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBookingID   = "некорректный ID занятия"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректная причина отмены"
	msgBookingNotFound    = "занятие не найдено"
	msgAccessDenied       = "доступ к занятию запрещен"
	msgCannotCancel       = "занятие нельзя отменить"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	ID          int64 `json:"id"`
	Cancelled   bool  `json:"cancelled"`
	RefreshView bool  `json:"refreshView"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Тело запроса необязательно: {"cancellationReason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Session = session

	if err := h.service.Cancel(r.Context(), bookingID, &req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidRequest)
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, session.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)
		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d", bookingID, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{ID: bookingID, Cancelled: true, RefreshView: true})
}
