package submit_bookings

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
	submitBookings "github.com/Skymx82/autosoft-sub001/internal/usecase/submit_bookings"
)

type Handler struct {
	useCase SubmitBookingsUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// 201 - все занятия записаны, 207 - часть занятий записана (в теле список ошибок)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAccessDenied)
		return
	}

	var req handlers.BookingSubmission
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	base, pattern, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBookings.Request{
		Session:     session,
		Base:        base,
		Pattern:     pattern,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		h.respondFailure(w, err, session.UserID)
		return
	}

	response := FromUseCaseResult(result)

	if result.Status == submitBookings.StatusPartial {
		h.logger.Warn("POST /bookings - Partial submission: series_id=%v, user_id=%d, %d of %d created",
			result.SeriesID, session.UserID, result.SuccessCount, result.TotalCount)
		handlers.RespondJSON(w, http.StatusMultiStatus, response)
		return
	}

	h.logger.Info("POST /bookings - Bookings created successfully: series_id=%v, user_id=%d, count=%d",
		result.SeriesID, session.UserID, result.SuccessCount)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) respondFailure(w http.ResponseWriter, err error, userID int64) {
	var aggregate *submitBookings.AggregateSubmissionError

	switch {
	case errors.As(err, &aggregate):
		// Код и сообщение - по первой ошибке серии
		code, msg := mapBookingError(aggregate.Cause)
		if code == http.StatusInternalServerError {
			h.logger.Error("POST /bookings - All occurrences failed: user_id=%d, error=%v", userID, err)
		} else {
			h.logger.Warn("POST /bookings - All occurrences failed: user_id=%d, error=%v", userID, err)
		}
		handlers.RespondJSON(w, code, &SubmissionResponse{
			Status:     string(submitBookings.StatusFailed),
			TotalCount: aggregate.Attempted,
			Message:    fmt.Sprintf("%s: %s", summary(0, aggregate.Attempted), msg),
			Bookings:   []models.BookingResponse{},
			Failures:   failuresResponse(aggregate.Failures),
		})

	case errors.Is(err, submitBookings.ErrInvalidInput), errors.Is(err, domain.ErrValidation):
		h.logger.Warn("POST /bookings - Invalid request: user_id=%d, error=%v", userID, err)
		handlers.RespondValidationError(w, err, msgInvalidRequest)

	default:
		code, msg := mapBookingError(err)
		if code == http.StatusInternalServerError {
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /bookings - Booking rejected: user_id=%d, error=%v", userID, err)
		handlers.RespondError(w, code, msg)
	}
}
