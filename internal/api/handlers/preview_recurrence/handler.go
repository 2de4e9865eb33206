package preview_recurrence

import (
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	previewRecurrence "github.com/Skymx82/autosoft-sub001/internal/usecase/preview_recurrence"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRecurrence  = "некорректное правило повторения"
)

// PreviewResponse занятия, которые будут записаны
type PreviewResponse struct {
	Count       int                           `json:"count"`
	Occurrences []handlers.OccurrenceResponse `json:"occurrences"`
}

type Handler struct {
	useCase PreviewRecurrenceUseCase
	logger  Logger
}

func NewHandler(useCase PreviewRecurrenceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req handlers.BookingSubmission
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	base, pattern, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /bookings/preview - Failed to parse request: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidRecurrence)
		return
	}

	// Ошибки предпросмотра - всегда ошибки входных данных
	resp, err := h.useCase.Execute(r.Context(), &previewRecurrence.Request{
		Session:     session,
		Base:        base,
		Pattern:     pattern,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		h.logger.Warn("POST /bookings/preview - Expansion failed: user_id=%d, error=%v", session.UserID, err)
		handlers.RespondValidationError(w, err, msgInvalidRecurrence)
		return
	}

	h.logger.Info("POST /bookings/preview - %d occurrences for user_id=%d", len(resp.Occurrences), session.UserID)
	handlers.RespondJSON(w, http.StatusOK, &PreviewResponse{
		Count:       len(resp.Occurrences),
		Occurrences: handlers.FromDomainOccurrences(resp.Occurrences),
	})
}
