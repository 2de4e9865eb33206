package update_branch_config

import (
	"errors"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/service/config"
	"github.com/Skymx82/autosoft-sub001/internal/service/config/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация планинга"
	msgAccessDenied       = "доступ к бюро запрещен"

	scopeSchool = "school"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schools/{schoolId}/branches/{branchId}/config[?scope=school]
// scope=school сохраняет общую конфигурацию автошколы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	schoolID, branchID, err := handlers.PathBranch(r)
	if err != nil {
		h.logger.Warn("PUT /config - Invalid path: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidConfig)
		return
	}

	var schoolWide bool
	if scope := handlers.QueryString(r, "scope"); scope != nil {
		if *scope != scopeSchool {
			handlers.RespondValidationError(w, domain.NewValidationError("scope", "must be \"school\" or omitted"), msgInvalidConfig)
			return
		}
		schoolWide = true
	}

	var req models.UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Session = session
	req.SchoolID = schoolID
	req.BranchID = branchID
	req.SchoolWide = schoolWide

	resp, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /config - Invalid config: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidConfig)
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /config - Access denied: branch_id=%d, user_id=%d", branchID, session.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("PUT /config - Failed to save config: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /config - Config saved successfully: id=%d, level=%s", resp.ID, resp.Level)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
