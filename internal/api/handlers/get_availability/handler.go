package get_availability

import (
	"errors"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	getAvailability "github.com/Skymx82/autosoft-sub001/internal/usecase/get_availability"
)

const (
	msgUnauthorized      = "требуется авторизация"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgAccessDenied      = "доступ к бюро запрещен"
	msgSuperseded        = "запрос устарел: загружается более новый планинг"
	msgAvailabilityFetch = "не удалось загрузить доступность, повторите попытку"
	msgInternalError     = "не удалось рассчитать доступность"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schools/{schoolId}/branches/{branchId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	schoolID, branchID, err := handlers.PathBranch(r)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid path: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidRequest)
		return
	}

	date, err := handlers.RequiredQueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidRequest)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Session:  session,
		SchoolID: schoolID,
		BranchID: branchID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid request: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidRequest)
		case errors.Is(err, getAvailability.ErrAccessDenied):
			h.logger.Warn("GET /availability - Access denied: user_id=%d, branch_id=%d", session.UserID, branchID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, getAvailability.ErrSuperseded):
			h.logger.Info("GET /availability - Superseded: user_id=%d, date=%s", session.UserID, date.Format(domain.DateFormat))
			handlers.RespondConflict(w, msgSuperseded)
		case errors.Is(err, getAvailability.ErrAvailabilityFetch):
			h.logger.Error("GET /availability - Failed to fetch availability: %v", err)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgAvailabilityFetch)
		default:
			h.logger.Error("GET /availability - Failed to build availability: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots for branch_id=%d on %s",
		len(resp.Slots), branchID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
