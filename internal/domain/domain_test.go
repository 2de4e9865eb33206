package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/pkg/ptr"
)

func TestParseEnums(t *testing.T) {
	et, err := ParseEventType(" Exam ")
	require.NoError(t, err)
	assert.Equal(t, EventExam, et)
	assert.True(t, et.RequiresStudent())
	assert.False(t, EventUnavailability.RequiresVehicle())

	cat, err := ParseLicenseCategory("be")
	require.NoError(t, err)
	assert.Equal(t, CategoryBE, cat)

	_, err = ParseLicenseCategory("Z")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category", verr.Field)

	f, err := ParseFrequency("BiWeekly")
	require.NoError(t, err)
	assert.Equal(t, FrequencyBiweekly, f)

	_, err = ParseFrequency("yearly")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseDateAndTime(t *testing.T) {
	d, err := ParseDate("date", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	_, err = ParseDate("endDate", "29/02/2024")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "endDate", verr.Field)

	tm, err := ParseTime("startTime", "08:05:00")
	require.NoError(t, err)
	assert.Equal(t, "08:05", tm.String())

	_, err = ParseTime("startTime", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBooking_Intervals(t *testing.T) {
	b := &Booking{StartTime: "10:00", EndTime: "11:00", Status: StatusScheduled, VehicleID: ptr.Ptr(int64(3))}

	assert.True(t, b.Covers("10:00"))
	assert.True(t, b.Covers("10:59"))
	assert.False(t, b.Covers("11:00"))
	assert.False(t, b.Covers("09:59"))

	assert.True(t, b.Overlaps("10:30", "12:00"))
	assert.True(t, b.Overlaps("09:00", "12:00"))
	assert.False(t, b.Overlaps("11:00", "12:00"))
	assert.False(t, b.Overlaps("09:00", "10:00"))

	assert.Equal(t, 60, b.DurationMinutes())
	assert.True(t, b.UsesVehicle(3))
	assert.False(t, b.HasStudent(3))
}

func TestBusyIntervalsFromBookings_SkipsInactive(t *testing.T) {
	bookings := []*Booking{
		{InstructorID: 1, StartTime: "09:00", EndTime: "10:00", Status: StatusScheduled},
		{InstructorID: 2, StartTime: "09:00", EndTime: "10:00", Status: StatusCancelled},
		{InstructorID: 3, StartTime: "09:00", EndTime: "10:00", Status: StatusNoShow},
		{InstructorID: 4, StartTime: "09:00", EndTime: "10:00", Status: StatusCompleted},
	}

	busy := BusyIntervalsFromBookings(bookings)
	require.Len(t, busy, 2)
	assert.Equal(t, int64(1), busy[0].InstructorID)
	assert.Equal(t, int64(4), busy[1].InstructorID)
}

func TestVehicle_Supports(t *testing.T) {
	v := &Vehicle{LicenseCategories: []LicenseCategory{CategoryB, CategoryBE}}

	assert.True(t, v.Supports(CategoryB))
	assert.False(t, v.Supports(CategoryA))
}

func TestSessionContext(t *testing.T) {
	s := SessionContext{UserID: 1, SchoolID: 2, BranchID: 3}

	assert.True(t, s.IsValid())
	assert.True(t, s.CanAccess(2, 3))
	assert.False(t, s.CanAccess(2, 4))
	assert.False(t, SessionContext{UserID: 1, SchoolID: 2}.IsValid())
	assert.Equal(t, "1:2:3", s.Key())
}
