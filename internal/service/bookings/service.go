package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	bookingRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/booking"
	"github.com/Skymx82/autosoft-sub001/internal/service/bookings/models"
)

// Service сервис для работы с планингом
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса занятий
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает занятие по ID
// Занятие доступно только сессии того же бюро
func (s *Service) GetByID(ctx context.Context, id int64, session domain.SessionContext) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, session.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !session.CanAccess(booking.SchoolID, booking.BranchID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", session.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetStudentBookings получает занятия ученика в автошколе сессии
// Ученик может заниматься в разных бюро, поэтому фильтр по всей автошколе
func (s *Service) GetStudentBookings(ctx context.Context, req *models.GetStudentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudentBookings: fetching bookings for student=%d, school=%d, status=%v",
		req.StudentID, req.Session.SchoolID, req.Status)

	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentBookings: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("status", err.Error()))
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByStudentID(ctx, req.Session.SchoolID, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentBookings: successfully fetched %d bookings for student=%d", len(bookings), req.StudentID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBranchBookings получает планинг бюро с гибкой фильтрацией
//
// Примеры использования:
// - Планинг на дату: StartDate и EndDate указывают на одну дату
// - Планинг инструктора за неделю: InstructorID и период
// - Только экзамены: EventType = "exam"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetBranchBookings(ctx context.Context, req *models.GetBranchBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBranchBookings: fetching bookings for school=%d, branch=%d, user=%d",
		req.SchoolID, req.BranchID, req.Session.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.InstructorID != nil {
		logMsg += fmt.Sprintf(", instructor=%d", *req.InstructorID)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if !req.Session.CanAccess(req.SchoolID, req.BranchID) {
		s.logger.Warn("GetBranchBookings: access denied for user=%d to branch=%d", req.Session.UserID, req.BranchID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBranchBookings: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetBranchBookings(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchBookings: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchBookings: successfully fetched %d bookings for branch=%d", len(bookings), req.BranchID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет запланированное занятие бюро сессии
// Чтение и отмена выполняются в одной транзакции
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.Session.UserID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("cancellationReason", fmt.Sprintf("must be at most %d characters", domain.MaxCancellationReasonLength)))
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем занятие
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		// Проверяем права доступа
		if !req.Session.CanAccess(booking.SchoolID, booking.BranchID) {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.Session.UserID, bookingID)
			return ErrAccessDenied
		}

		// Проверяем, можно ли отменить занятие
		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
