package get_student_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
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
	got  *models.GetStudentBookingsRequest
	list *models.BookingListResponse
	err  error
}

func (s *stubService) GetStudentBookings(_ context.Context, req *models.GetStudentBookingsRequest) (*models.BookingListResponse, error) {
	s.got = req
	return s.list, s.err
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/students/{studentId}/bookings", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = r.WithContext(middleware.WithSession(r.Context(), domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{list: &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 3}, {ID: 4}}}}

	rec := serve(svc, "/api/v1/students/50/bookings?status=scheduled")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(50), svc.got.StudentID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "scheduled", *svc.got.Status)

	var resp models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Bookings, 2)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/api/v1/students/abc/bookings").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubService{err: fmt.Errorf("%w: status", bookings.ErrInvalidInput)}, "/api/v1/students/50/bookings?status=x").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&stubService{err: bookings.ErrInternal}, "/api/v1/students/50/bookings").Code)
}
