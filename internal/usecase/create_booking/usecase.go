package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	configRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/config"
	instructorRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/instructor"
	vehicleRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/vehicle"
	studentClient "github.com/Skymx82/autosoft-sub001/internal/integrations/studentservice"
)

// UseCase use case для создания одного занятия
// Это граница записи, которую вызывает пакетная запись для каждого занятия серии
type UseCase struct {
	bookingRepo    BookingRepository
	configRepo     ConfigRepository
	instructorRepo InstructorRepository
	vehicleRepo    VehicleRepository
	studentClient  StudentServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	instructorRepo InstructorRepository,
	vehicleRepo VehicleRepository,
	studentClient StudentServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		configRepo:     configRepo,
		instructorRepo: instructorRepo,
		vehicleRepo:    vehicleRepo,
		studentClient:  studentClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания занятия
// Использует сериализуемую транзакцию для предотвращения двойной записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	b := req.Booking
	uc.logger.Info("CreateBooking: user=%d, school=%d, branch=%d, type=%s, instructor=%d, date=%s, time=%s-%s",
		req.Session.UserID, req.Session.SchoolID, req.Session.BranchID, b.EventType, b.InstructorID,
		b.Date.Format(domain.DateFormat), b.StartTime, b.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем ученика (вне транзакции: сетевой вызов)
	category := b.Category
	if b.StudentID != nil {
		student, err := uc.studentClient.GetStudentWithGracefulDegradation(ctx, req.Session.SchoolID, *b.StudentID)
		switch {
		case errors.Is(err, studentClient.ErrStudentNotFound):
			uc.logger.Warn("CreateBooking: student id=%d not found", *b.StudentID)
			return nil, ErrStudentNotFound
		case errors.Is(err, studentClient.ErrServiceDegraded):
			uc.logger.Warn("CreateBooking: student service degraded, skipping student checks: %v", err)
		case err != nil:
			uc.logger.Error("CreateBooking: failed to get student id=%d: %v", *b.StudentID, err)
			return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		default:
			if student.SchoolID != req.Session.SchoolID || !student.IsActive {
				uc.logger.Warn("CreateBooking: student id=%d is not an active student of school id=%d",
					*b.StudentID, req.Session.SchoolID)
				return nil, ErrStudentNotFound
			}
			// Категория по умолчанию - та, на которую учится ученик
			if category == nil && student.LicenseCategory != "" {
				if parsed, err := domain.ParseLicenseCategory(student.LicenseCategory); err == nil {
					category = &parsed
				}
			}
		}
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем конфигурацию с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.Session.SchoolID, req.Session.BranchID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultBranchScheduleConfig(req.Session.SchoolID, req.Session.BranchID)
		}

		// 4.2. Валидация даты и окна работы
		if err := validateDate(b.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}
		if err := validateWindow(b, config); err != nil {
			uc.logger.Warn("CreateBooking: window validation failed: %v", err)
			return err
		}

		// 4.3. Проверяем инструктора
		if err := uc.checkInstructor(txCtx, req.Session, b.InstructorID); err != nil {
			return err
		}

		// 4.4. Проверяем машину и её категорию
		if b.VehicleID != nil {
			if err := uc.checkVehicle(txCtx, req.Session, *b.VehicleID, category); err != nil {
				return err
			}
		}

		// 4.5. Получаем занятия автошколы на эту дату с блокировкой (FOR UPDATE)
		// Ученик может заниматься в другом бюро, поэтому фильтр по всей автошколе
		filter := domain.BranchBookingsFilter{
			SchoolID:  req.Session.SchoolID,
			StartDate: &b.Date,
			EndDate:   &b.Date,
		}
		existing, err := uc.bookingRepo.GetBranchBookings(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.6. Проверяем пересечения
		if err := findConflict(b, existing); err != nil {
			uc.logger.Warn("CreateBooking: conflict: %v", err)
			return err
		}

		// 4.7. Сохраняем занятие
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			SchoolID:     req.Session.SchoolID,
			BranchID:     req.Session.BranchID,
			BookingDate:  b.Date,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			InstructorID: b.InstructorID,
			StudentID:    b.StudentID,
			VehicleID:    b.VehicleID,
			EventType:    b.EventType,
			Category:     category,
			Comments:     b.Comments,
			SeriesID:     req.SeriesID,
			Status:       domain.StatusScheduled,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:                  result.ID,
		SchoolID:            result.SchoolID,
		BranchID:            result.BranchID,
		BookingDate:         result.BookingDate,
		StartTime:           result.StartTime,
		EndTime:             result.EndTime,
		InstructorID:        result.InstructorID,
		StudentID:           result.StudentID,
		VehicleID:           result.VehicleID,
		EventType:           result.EventType,
		Category:            result.Category,
		Comments:            result.Comments,
		SeriesID:            result.SeriesID,
		Status:              result.Status,
		IsMultipleSubmit:    req.IsMultipleSubmit,
		IsLastRecurringSlot: req.IsLastRecurringSlot,
		RefreshView:         !req.IsMultipleSubmit || req.IsLastRecurringSlot,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}

func (uc *UseCase) checkInstructor(ctx context.Context, session domain.SessionContext, instructorID int64) error {
	instructor, err := uc.instructorRepo.GetByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			uc.logger.Warn("CreateBooking: instructor id=%d not found", instructorID)
			return ErrInstructorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get instructor id=%d: %v", instructorID, err)
		return fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	if !instructor.IsActive || !session.CanAccess(instructor.SchoolID, instructor.BranchID) {
		uc.logger.Warn("CreateBooking: instructor id=%d is not active in branch id=%d", instructorID, session.BranchID)
		return ErrInstructorNotFound
	}

	return nil
}

func (uc *UseCase) checkVehicle(
	ctx context.Context,
	session domain.SessionContext,
	vehicleID int64,
	category *domain.LicenseCategory,
) error {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", vehicleID)
			return ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", vehicleID, err)
		return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if !vehicle.IsActive || !session.CanAccess(vehicle.SchoolID, vehicle.BranchID) {
		uc.logger.Warn("CreateBooking: vehicle id=%d is not active in branch id=%d", vehicleID, session.BranchID)
		return ErrVehicleNotFound
	}

	if category != nil && !vehicle.Supports(*category) {
		uc.logger.Warn("CreateBooking: vehicle id=%d does not support category %s", vehicleID, *category)
		return fmt.Errorf("%w: vehicle id=%d, category %s", ErrVehicleCategoryMismatch, vehicleID, *category)
	}

	return nil
}
