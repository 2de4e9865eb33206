package get_booking_options

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	studentClient "github.com/Skymx82/autosoft-sub001/internal/integrations/studentservice"
	"github.com/Skymx82/autosoft-sub001/internal/service/availability"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/get_availability"
)

// UseCase use case вариантов для формы записи: длительности, инструкторы и машины
type UseCase struct {
	resolver      AvailabilityResolver
	studentClient StudentServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver AvailabilityResolver, studentClient StudentServiceClient, logger Logger) *UseCase {
	return &UseCase{
		resolver:      resolver,
		studentClient: studentClient,
		logger:        logger,
	}
}

// Execute выполняет use case
// Ошибки расчёта доступности (get_availability) возвращаются без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookingOptions: user=%d, school=%d, branch=%d, date=%s",
		req.Session.UserID, req.SchoolID, req.BranchID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookingOptions: validation failed: %v", err)
		return nil, err
	}

	// 2. Доступность на дату
	availabilityResp, err := uc.resolver.Execute(ctx, &get_availability.Request{
		Session:  req.Session,
		SchoolID: req.SchoolID,
		BranchID: req.BranchID,
		Date:     req.Date,
		Channel:  get_availability.ChannelOptions,
	})
	if err != nil {
		return nil, err
	}

	// 3. Находим выбранный слот
	var slot *domain.AvailabilitySlot
	if req.StartTime != nil {
		found, ok := availability.SlotAt(availabilityResp.Slots, *req.StartTime)
		if !ok {
			uc.logger.Warn("GetBookingOptions: no slot at %s on %s", *req.StartTime, req.Date.Format(domain.DateFormat))
			return nil, invalid("startTime", "is not an availability slot")
		}
		slot = found
	}

	// 4. Категория: из запроса или у ученика
	category, err := uc.resolveCategory(ctx, req)
	if err != nil {
		return nil, err
	}

	config := availabilityResp.Config
	resp := &Response{
		Date:            req.Date,
		StartTime:       req.StartTime,
		Slot:            slot,
		Category:        category,
		DurationMinutes: req.DurationMinutes,
	}

	// 5. Сужаем длительность до ближайшей границы занятости
	if slot != nil {
		duration := availability.NarrowDuration(
			availabilityResp.Slots,
			*req.StartTime,
			req.DurationMinutes,
			config.MaxBookingMinutes,
			config.CloseTime,
			config.DurationChoices,
		)
		resp.MaxDurationMinutes = duration.MaxMinutes
		resp.DurationOptions = duration.Options
		resp.DurationMinutes = duration.Selected
		resp.DurationReplaced = duration.Replaced
	}

	// 6. Фильтруем инструкторов и машины
	instructors := availability.FilterInstructors(availabilityResp.Instructors, slot, req.InstructorID)
	resp.Instructors = instructors.Instructors
	resp.SelectedInstructorID = instructors.SelectedID
	resp.InstructorCleared = instructors.Cleared

	vehicles := availability.FilterVehicles(availabilityResp.Vehicles, category, slot, req.VehicleID)
	resp.Vehicles = vehicles.Vehicles
	resp.SelectedVehicleID = vehicles.SelectedID
	resp.VehicleCleared = vehicles.Cleared

	uc.logger.Info("GetBookingOptions: %d instructors, %d vehicles, max duration %d min",
		len(resp.Instructors), len(resp.Vehicles), resp.MaxDurationMinutes)

	return resp, nil
}

// resolveCategory возвращает категорию из запроса или категорию ученика
// При недоступности сервиса учеников фильтр по категории не применяется
func (uc *UseCase) resolveCategory(ctx context.Context, req *Request) (*domain.LicenseCategory, error) {
	if req.Category != nil || req.StudentID == nil {
		return req.Category, nil
	}

	student, err := uc.studentClient.GetStudentWithGracefulDegradation(ctx, req.SchoolID, *req.StudentID)
	switch {
	case errors.Is(err, studentClient.ErrStudentNotFound):
		uc.logger.Warn("GetBookingOptions: student id=%d not found", *req.StudentID)
		return nil, ErrStudentNotFound
	case errors.Is(err, studentClient.ErrServiceDegraded):
		uc.logger.Warn("GetBookingOptions: student service degraded, category filter skipped: %v", err)
		return nil, nil
	case err != nil:
		uc.logger.Error("GetBookingOptions: failed to get student id=%d: %v", *req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	if student.LicenseCategory == "" {
		return nil, nil
	}
	category, err := domain.ParseLicenseCategory(student.LicenseCategory)
	if err != nil {
		uc.logger.Warn("GetBookingOptions: student id=%d has unknown category %q", *req.StudentID, student.LicenseCategory)
		return nil, nil
	}

	return &category, nil
}
