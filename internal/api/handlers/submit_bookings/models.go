package submit_bookings

import (
	"github.com/google/uuid"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
	submitBookings "github.com/Skymx82/autosoft-sub001/internal/usecase/submit_bookings"
)

// SubmissionResponse HTTP response model
type SubmissionResponse struct {
	SeriesID     *uuid.UUID               `json:"seriesId,omitempty"`
	Status       string                   `json:"status"`
	SuccessCount int                      `json:"successCount"`
	TotalCount   int                      `json:"totalCount"`
	RefreshView  bool                     `json:"refreshView"`
	Message      string                   `json:"message,omitempty"`
	Bookings     []models.BookingResponse `json:"bookings"`
	Failures     []FailureResponse        `json:"failures"`
}

// FailureResponse незаписанное занятие серии
type FailureResponse struct {
	Index     int    `json:"index"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
}

// FromUseCaseResult конвертирует итог пакетной записи в HTTP response
func FromUseCaseResult(result *submitBookings.SubmissionResult) *SubmissionResponse {
	resp := &SubmissionResponse{
		SeriesID:     result.SeriesID,
		Status:       string(result.Status),
		SuccessCount: result.SuccessCount,
		TotalCount:   result.TotalCount,
		RefreshView:  result.RefreshView,
		Bookings:     make([]models.BookingResponse, 0, result.SuccessCount),
		Failures:     failuresResponse(result.Failures()),
	}

	for _, res := range result.Results {
		if res.Succeeded() {
			resp.Bookings = append(resp.Bookings, *fromCreated(res.Booking))
		}
	}

	if result.Status == submitBookings.StatusPartial {
		resp.Message = summary(result.SuccessCount, result.TotalCount)
	}

	return resp
}

func failuresResponse(failures []submitBookings.OccurrenceResult) []FailureResponse {
	out := make([]FailureResponse, 0, len(failures))
	for _, f := range failures {
		code, msg := mapBookingError(f.Err)
		out = append(out, FailureResponse{
			Index:     f.Index,
			Date:      f.Occurrence.Date.Format(domain.DateFormat),
			StartTime: f.Occurrence.StartTime.String(),
			EndTime:   f.Occurrence.EndTime.String(),
			Code:      code,
			Message:   msg,
		})
	}
	return out
}

func fromCreated(b *create_booking.Response) *models.BookingResponse {
	return models.FromDomainBooking(&domain.Booking{
		ID:           b.ID,
		SchoolID:     b.SchoolID,
		BranchID:     b.BranchID,
		BookingDate:  b.BookingDate,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		InstructorID: b.InstructorID,
		StudentID:    b.StudentID,
		VehicleID:    b.VehicleID,
		EventType:    b.EventType,
		Category:     b.Category,
		Comments:     b.Comments,
		SeriesID:     b.SeriesID,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	})
}
