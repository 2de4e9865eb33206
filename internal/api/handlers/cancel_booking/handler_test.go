package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
	"github.com/Skymx82/autosoft-sub001/pkg/logger"
)

type stubService struct {
	gotID  int64
	gotReq *models.CancelBookingRequest
	err    error
}

func (s *stubService) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.gotID, s.gotReq = bookingID, req
	return s.err
}

var session = domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2}

func serve(svc BookingService, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(http.MethodPatch, target, nil)
	} else {
		r = httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	}
	r = r.WithContext(middleware.WithSession(r.Context(), session))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/api/v1/bookings/7/cancel", `{"cancellationReason": "élève malade"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(7), svc.gotID)
	assert.Equal(t, session, svc.gotReq.Session)
	assert.Equal(t, "élève malade", svc.gotReq.CancellationReason)

	var resp CancelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cancelled)
	assert.True(t, resp.RefreshView)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/api/v1/bookings/7/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.gotReq.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		err      error
		wantCode int
	}{
		{name: "bad id", target: "/api/v1/bookings/abc/cancel", wantCode: http.StatusBadRequest},
		{name: "unknown field", body: `{"reason": "x"}`, wantCode: http.StatusBadRequest},
		{name: "reason too long", err: fmt.Errorf("%w: %w", bookings.ErrInvalidInput, domain.NewValidationError("cancellationReason", "too long")), wantCode: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrBookingNotFound, wantCode: http.StatusNotFound},
		{name: "other branch", err: bookings.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "already cancelled", err: bookings.ErrCannotCancel, wantCode: http.StatusConflict},
		{name: "internal", err: bookings.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			if target == "" {
				target = "/api/v1/bookings/7/cancel"
			}
			rec := serve(&stubService{err: tt.err}, target, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
