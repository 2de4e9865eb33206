package get_booking_options

import (
	"errors"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	getAvailability "github.com/Skymx82/autosoft-sub001/internal/usecase/get_availability"
	getBookingOptions "github.com/Skymx82/autosoft-sub001/internal/usecase/get_booking_options"
)

const (
	msgUnauthorized      = "требуется авторизация"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgAccessDenied      = "доступ к бюро запрещен"
	msgStudentNotFound   = "ученик не найден"
	msgSuperseded        = "запрос устарел: загружается более новый планинг"
	msgAvailabilityFetch = "не удалось загрузить доступность, повторите попытку"
)

type Handler struct {
	useCase GetBookingOptionsUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingOptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schools/{schoolId}/branches/{branchId}/booking-options
// Query: date, startTime, durationMinutes, instructorId, vehicleId, category, studentId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := parseRequest(r, session)
	if err != nil {
		h.logger.Warn("GET /booking-options - Invalid parameters: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidRequest)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getBookingOptions.ErrInvalidInput), errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /booking-options - Invalid request: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidRequest)
		case errors.Is(err, getAvailability.ErrAccessDenied):
			h.logger.Warn("GET /booking-options - Access denied: user_id=%d, branch_id=%d", session.UserID, req.BranchID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, getBookingOptions.ErrStudentNotFound):
			h.logger.Warn("GET /booking-options - Student not found: student_id=%v", req.StudentID)
			handlers.RespondNotFound(w, msgStudentNotFound)
		case errors.Is(err, getAvailability.ErrSuperseded):
			h.logger.Info("GET /booking-options - Superseded: user_id=%d", session.UserID)
			handlers.RespondConflict(w, msgSuperseded)
		case errors.Is(err, getAvailability.ErrAvailabilityFetch):
			h.logger.Error("GET /booking-options - Failed to fetch availability: %v", err)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgAvailabilityFetch)
		default:
			h.logger.Error("GET /booking-options - Internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-options - branch_id=%d: %d instructors, %d vehicles",
		req.BranchID, len(resp.Instructors), len(resp.Vehicles))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
