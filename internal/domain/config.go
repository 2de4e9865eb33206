package domain

import (
	"time"

	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// BranchScheduleConfig represents the planning configuration of a driving school
// Supports hierarchical configuration:
// 1. Branch-specific (school_id, branch_id)
// 2. School-wide (school_id, NULL)
type BranchScheduleConfig struct {
	ID                     int64
	SchoolID               int64
	BranchID               *int64 // NULL = config for all branches
	OpenTime               types.TimeString
	CloseTime              types.TimeString
	SlotGranularityMinutes int // 0 = slots aligned on booked start times
	MaxBookingMinutes      int
	DurationChoices        []int
	AdvanceBookingDays     int // 0 = unlimited
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultBranchScheduleConfig returns the built-in configuration used when none is stored
func DefaultBranchScheduleConfig(schoolID, branchID int64) *BranchScheduleConfig {
	choices := make([]int, len(DefaultDurationChoices))
	copy(choices, DefaultDurationChoices)

	return &BranchScheduleConfig{
		SchoolID:               schoolID,
		BranchID:               &branchID,
		OpenTime:               DefaultOpenTime,
		CloseTime:              DefaultCloseTime,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		MaxBookingMinutes:      DefaultMaxBookingMinutes,
		DurationChoices:        choices,
		AdvanceBookingDays:     DefaultAdvanceBookingDays,
	}
}

// IsSchoolWide returns true if this configuration applies to every branch
func (c *BranchScheduleConfig) IsSchoolWide() bool {
	return c.BranchID == nil
}

// IsAlignedOnBookings returns true when slots are derived only from booked start times
func (c *BranchScheduleConfig) IsAlignedOnBookings() bool {
	return c.SlotGranularityMinutes == 0
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *BranchScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// WithinWindow returns true if [start, end) fits inside the operating window
func (c *BranchScheduleConfig) WithinWindow(start, end types.TimeString) bool {
	return !start.IsBefore(c.OpenTime) && !end.IsAfter(c.CloseTime)
}
