package get_branch_config

import (
	"errors"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/service/config"
	"github.com/Skymx82/autosoft-sub001/internal/service/config/models"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgInvalidRequest = "некорректные параметры запроса"
	msgAccessDenied   = "доступ к бюро запрещен"
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

// Handle GET /api/v1/schools/{schoolId}/branches/{branchId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	schoolID, branchID, err := handlers.PathBranch(r)
	if err != nil {
		h.logger.Warn("GET /config - Invalid path: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidRequest)
		return
	}

	resp, err := h.service.Get(r.Context(), &models.GetConfigRequest{
		Session:  session,
		SchoolID: schoolID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, config.ErrAccessDenied) {
			h.logger.Warn("GET /config - Access denied: branch_id=%d, user_id=%d", branchID, session.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
			return
		}
		h.logger.Error("GET /config - Failed to get config: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /config - Config retrieved successfully: branch_id=%d, level=%s", branchID, resp.Level)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
