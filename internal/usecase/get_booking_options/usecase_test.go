package get_booking_options

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/integrations/studentservice"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/get_availability"
	"github.com/Skymx82/autosoft-sub001/pkg/logger"
	"github.com/Skymx82/autosoft-sub001/pkg/ptr"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

type stubResolver struct {
	got  *get_availability.Request
	resp *get_availability.Response
	err  error
}

func (s *stubResolver) Execute(_ context.Context, req *get_availability.Request) (*get_availability.Response, error) {
	s.got = req
	return s.resp, s.err
}

type stubStudents struct {
	student *studentservice.Student
	err     error
	calls   int
}

func (s *stubStudents) GetStudentWithGracefulDegradation(context.Context, int64, int64) (*studentservice.Student, error) {
	s.calls++
	return s.student, s.err
}

// Три инструктора, две машины. В 09:00 занят инструктор 7 и машина 10, с 10:00 - ещё и 8.
func availabilityResponse() *get_availability.Response {
	return &get_availability.Response{
		Config: domain.DefaultBranchScheduleConfig(1, 2),
		Slots: []domain.AvailabilitySlot{
			{Time: "08:00", AvailableTeachers: 3, TeacherIDs: []int64{7, 8, 9}, AvailableVehicles: 2, VehicleIDs: []int64{10, 11}},
			{Time: "09:00", AvailableTeachers: 2, TeacherIDs: []int64{8, 9}, AvailableVehicles: 1, VehicleIDs: []int64{11}},
			{Time: "09:30", AvailableTeachers: 2, TeacherIDs: []int64{8, 9}, AvailableVehicles: 1, VehicleIDs: []int64{11}},
			{Time: "10:00", AvailableTeachers: 1, TeacherIDs: []int64{9}, AvailableVehicles: 1, VehicleIDs: []int64{11}},
		},
		Instructors: []*domain.Instructor{{ID: 7}, {ID: 8}, {ID: 9}},
		Vehicles: []*domain.Vehicle{
			{ID: 10, LicenseCategories: []domain.LicenseCategory{domain.CategoryB}},
			{ID: 11, LicenseCategories: []domain.LicenseCategory{domain.CategoryA}},
		},
	}
}

func request(start string) *Request {
	req := &Request{
		Session:  domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2},
		SchoolID: 1,
		BranchID: 2,
		Date:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	if start != "" {
		req.StartTime = ptr.Ptr(types.TimeString(start))
	}
	return req
}

func TestExecute_NarrowsToSelectedSlot(t *testing.T) {
	uc := NewUseCase(&stubResolver{resp: availabilityResponse()}, &stubStudents{}, logger.NewNop())

	req := request("09:00")
	req.DurationMinutes = 90
	req.InstructorID = ptr.Ptr(int64(7))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.MaxDurationMinutes)
	assert.Equal(t, []int{30, 45, 60}, resp.DurationOptions)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, resp.DurationReplaced)

	require.Len(t, resp.Instructors, 2)
	assert.Equal(t, int64(8), resp.Instructors[0].ID)
	assert.Nil(t, resp.SelectedInstructorID)
	assert.True(t, resp.InstructorCleared)

	require.Len(t, resp.Vehicles, 1)
	assert.Equal(t, int64(11), resp.Vehicles[0].ID)
}

func TestExecute_WithoutStartTimeOffersWholeRoster(t *testing.T) {
	uc := NewUseCase(&stubResolver{resp: availabilityResponse()}, &stubStudents{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), request(""))
	require.NoError(t, err)
	assert.Nil(t, resp.Slot)
	assert.Len(t, resp.Instructors, 3)
	assert.Len(t, resp.Vehicles, 2)
	assert.Empty(t, resp.DurationOptions)
}

func TestExecute_UnknownSlot(t *testing.T) {
	uc := NewUseCase(&stubResolver{resp: availabilityResponse()}, &stubStudents{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), request("08:15"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_ResolverErrorIsPassedThrough(t *testing.T) {
	cause := errors.Join(get_availability.ErrAvailabilityFetch, errors.New("db down"))
	uc := NewUseCase(&stubResolver{err: cause}, &stubStudents{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), request("08:00"))
	assert.ErrorIs(t, err, get_availability.ErrAvailabilityFetch)
}

func TestExecute_CategoryFromStudent(t *testing.T) {
	t.Run("student category filters vehicles", func(t *testing.T) {
		students := &stubStudents{student: &studentservice.Student{ID: 50, LicenseCategory: "B"}}
		uc := NewUseCase(&stubResolver{resp: availabilityResponse()}, students, logger.NewNop())

		req := request("08:00")
		req.StudentID = ptr.Ptr(int64(50))

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.Category)
		assert.Equal(t, domain.CategoryB, *resp.Category)
		require.Len(t, resp.Vehicles, 1)
		assert.Equal(t, int64(10), resp.Vehicles[0].ID)
	})

	t.Run("explicit category wins", func(t *testing.T) {
		students := &stubStudents{student: &studentservice.Student{ID: 50, LicenseCategory: "B"}}
		uc := NewUseCase(&stubResolver{resp: availabilityResponse()}, students, logger.NewNop())

		req := request("08:00")
		req.StudentID = ptr.Ptr(int64(50))
		req.Category = ptr.Ptr(domain.CategoryA)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Zero(t, students.calls)
		require.Len(t, resp.Vehicles, 1)
		assert.Equal(t, int64(11), resp.Vehicles[0].ID)
	})

	t.Run("degraded service skips the category filter", func(t *testing.T) {
		students := &stubStudents{err: errors.Join(studentservice.ErrServiceDegraded, errors.New("timeout"))}
		uc := NewUseCase(&stubResolver{resp: availabilityResponse()}, students, logger.NewNop())

		req := request("08:00")
		req.StudentID = ptr.Ptr(int64(50))

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, resp.Category)
		assert.Len(t, resp.Vehicles, 2)
	})

	t.Run("unknown student", func(t *testing.T) {
		students := &stubStudents{err: studentservice.ErrStudentNotFound}
		uc := NewUseCase(&stubResolver{resp: availabilityResponse()}, students, logger.NewNop())

		req := request("08:00")
		req.StudentID = ptr.Ptr(int64(50))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})
}

func TestExecute_LateSlotCappedByClosingTime(t *testing.T) {
	resp := availabilityResponse()
	resp.Slots = append(resp.Slots, domain.AvailabilitySlot{
		Time: "20:30", AvailableTeachers: 1, TeacherIDs: []int64{9}, AvailableVehicles: 1, VehicleIDs: []int64{11},
	})
	resolver := &stubResolver{resp: resp}
	uc := NewUseCase(resolver, &stubStudents{}, logger.NewNop())

	req := request("20:30")
	req.DurationMinutes = 90

	got, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resolver.got)
	assert.Equal(t, get_availability.ChannelOptions, resolver.got.Channel)

	assert.Equal(t, 30, got.MaxDurationMinutes)
	assert.Equal(t, []int{30}, got.DurationOptions)
	assert.Equal(t, 30, got.DurationMinutes)
	assert.True(t, got.DurationReplaced)
}
