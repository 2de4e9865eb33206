package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	bookingRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/booking"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
	"github.com/Skymx82/autosoft-sub001/pkg/logger"
	"github.com/Skymx82/autosoft-sub001/pkg/ptr"
)

type stubRepo struct {
	bookings  map[int64]*domain.Booking
	filter    domain.BranchBookingsFilter
	cancelled []int64
	err       error
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	if b, ok := s.bookings[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (s *stubRepo) GetByStudentID(_ context.Context, schoolID, studentID int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.SchoolID == schoolID && b.HasStudent(studentID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubRepo) GetBranchBookings(_ context.Context, f domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	s.filter = f
	return nil, s.err
}

func (s *stubRepo) Cancel(_ context.Context, id int64, _ string) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

type inlineTx struct{ calls int }

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

var session = domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2}

func newService() (*Service, *stubRepo, *inlineTx) {
	repo := &stubRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, SchoolID: 1, BranchID: 2, StudentID: ptr.Ptr(int64(50)), StartTime: "10:00", EndTime: "11:00", Status: domain.StatusScheduled},
		2: {ID: 2, SchoolID: 1, BranchID: 3, StudentID: ptr.Ptr(int64(50)), StartTime: "10:00", EndTime: "11:00", Status: domain.StatusScheduled},
		3: {ID: 3, SchoolID: 1, BranchID: 2, StartTime: "12:00", EndTime: "13:00", Status: domain.StatusCompleted},
	}}
	tx := &inlineTx{}
	return NewService(repo, tx, logger.NewNop()), repo, tx
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetByID(context.Background(), 1, session)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 60, resp.DurationMinutes)

	_, err = svc.GetByID(context.Background(), 2, session)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 99, session)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	svc, repo, _ := newService()
	repo.err = errors.New("connection reset")

	_, err := svc.GetByID(context.Background(), 1, session)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		reason  string
		wantErr error
	}{
		{name: "scheduled booking", id: 1, reason: "Ученик заболел"},
		{name: "another branch", id: 2, wantErr: ErrAccessDenied},
		{name: "completed booking", id: 3, wantErr: ErrCannotCancel},
		{name: "unknown booking", id: 99, wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, tx := newService()

			err := svc.Cancel(context.Background(), tt.id, &models.CancelBookingRequest{
				Session:            session,
				CancellationReason: tt.reason,
			})
			assert.Equal(t, 1, tx.calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.cancelled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int64{tt.id}, repo.cancelled)
		})
	}
}

func TestGetStudentBookings_AcrossBranches(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetStudentBookings(context.Background(), &models.GetStudentBookingsRequest{
		Session:   session,
		StudentID: 50,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = svc.GetStudentBookings(context.Background(), &models.GetStudentBookingsRequest{
		Session:   session,
		StudentID: 50,
		Status:    ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBranchBookings(t *testing.T) {
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("builds the filter", func(t *testing.T) {
		svc, repo, _ := newService()

		resp, err := svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
			Session:   session,
			SchoolID:  1,
			BranchID:  2,
			StartDate: &from,
			EndDate:   &to,
			EventType: ptr.Ptr("exam"),
			Status:    ptr.Ptr("cancelled"),
		})
		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)

		require.NotNil(t, repo.filter.EventType)
		assert.Equal(t, domain.EventExam, *repo.filter.EventType)
		assert.True(t, repo.filter.IncludeInactive)
	})

	t.Run("rejects another branch", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
			Session: session, SchoolID: 1, BranchID: 3,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("rejects a reversed period", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
			Session: session, SchoolID: 1, BranchID: 2, StartDate: &to, EndDate: &from,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
