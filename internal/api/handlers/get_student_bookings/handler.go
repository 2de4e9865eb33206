package get_student_bookings

import (
	"errors"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidStudentID = "некорректный ID ученика"
	msgInvalidStatus    = "некорректный статус занятия"
)

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

// Handle GET /api/v1/students/{studentId}/bookings?status=scheduled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	studentID, err := handlers.PathInt64(r, "studentId")
	if err != nil {
		h.logger.Warn("GET /students/{id}/bookings - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	list, err := h.service.GetStudentBookings(r.Context(), &models.GetStudentBookingsRequest{
		Session:   session,
		StudentID: studentID,
		Status:    handlers.QueryString(r, "status"),
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /students/{id}/bookings - Invalid request: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /students/{id}/bookings - Failed to get bookings: student_id=%d, error=%v", studentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /students/{id}/bookings - %d bookings retrieved for student_id=%d", len(list.Bookings), studentID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
