package get_branch_bookings

import (
	"errors"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgInvalidRequest = "некорректные параметры фильтра"
	msgAccessDenied   = "доступ к бюро запрещен"
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

// Handle GET /api/v1/schools/{schoolId}/branches/{branchId}/bookings
// Query: from, to, instructorId, vehicleId, studentId, eventType, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := parseRequest(r, session)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidRequest)
		return
	}

	list, err := h.service.GetBranchBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidRequest)
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id}/bookings - Access denied: branch_id=%d, user_id=%d", req.BranchID, session.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /branches/{id}/bookings - Failed to get bookings: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/bookings - %d bookings retrieved for branch_id=%d", len(list.Bookings), req.BranchID)
	handlers.RespondJSON(w, http.StatusOK, list)
}

func parseRequest(r *http.Request, session domain.SessionContext) (*models.GetBranchBookingsRequest, error) {
	req := &models.GetBranchBookingsRequest{Session: session}

	var err error
	if req.SchoolID, req.BranchID, err = handlers.PathBranch(r); err != nil {
		return nil, err
	}
	if req.StartDate, err = handlers.QueryDate(r, "from"); err != nil {
		return nil, err
	}
	if req.EndDate, err = handlers.QueryDate(r, "to"); err != nil {
		return nil, err
	}
	if req.InstructorID, err = handlers.QueryInt64(r, "instructorId"); err != nil {
		return nil, err
	}
	if req.VehicleID, err = handlers.QueryInt64(r, "vehicleId"); err != nil {
		return nil, err
	}
	if req.StudentID, err = handlers.QueryInt64(r, "studentId"); err != nil {
		return nil, err
	}
	if req.IncludeInactive, err = handlers.QueryBool(r, "includeInactive"); err != nil {
		return nil, err
	}
	req.EventType = handlers.QueryString(r, "eventType")
	req.Status = handlers.QueryString(r, "status")

	return req, nil
}
