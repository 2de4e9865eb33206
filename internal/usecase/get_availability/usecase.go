package get_availability

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	configRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/config"
	"github.com/Skymx82/autosoft-sub001/internal/service/availability"
)

// UseCase use case расчёта доступности инструкторов и машин на дату
// Результат не кэшируется: каждый запрос заново читает планинг
type UseCase struct {
	bookingRepo    BookingRepository
	configRepo     ConfigRepository
	instructorRepo InstructorRepository
	vehicleRepo    VehicleRepository
	tracker        *availability.Tracker
	recorder       SupersededRecorder
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	instructorRepo InstructorRepository,
	vehicleRepo VehicleRepository,
	tracker *availability.Tracker,
	recorder SupersededRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		configRepo:     configRepo,
		instructorRepo: instructorRepo,
		vehicleRepo:    vehicleRepo,
		tracker:        tracker,
		recorder:       recorder,
		logger:         logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: user=%d, school=%d, branch=%d, date=%s",
		req.Session.UserID, req.SchoolID, req.BranchID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что бюро доступно сессии
	if err := validateScope(req); err != nil {
		uc.logger.Warn("GetAvailability: %v", err)
		return nil, err
	}

	// 3. Регистрируем поколение запроса: запрос этой сессии на другую дату отменяется
	ctx, ticket := uc.tracker.Begin(ctx, req.trackerKey(), req.Date.Format(domain.DateFormat))
	defer ticket.Done()

	// 4. Получаем конфигурацию с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.SchoolID, req.BranchID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		return nil, uc.fetchFailed(ticket, "config", err)
	}
	if config == nil {
		config = domain.DefaultBranchScheduleConfig(req.SchoolID, req.BranchID)
	}

	// 5. Параллельно читаем состав и занятия на дату
	var (
		instructors []*domain.Instructor
		vehicles    []*domain.Vehicle
		bookings    []*domain.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instructors, err = uc.instructorRepo.GetActiveByBranch(gctx, req.SchoolID, req.BranchID)
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = uc.vehicleRepo.GetActiveByBranch(gctx, req.SchoolID, req.BranchID)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = uc.bookingRepo.GetBranchBookings(gctx, domain.BranchBookingsFilter{
			SchoolID:  req.SchoolID,
			BranchID:  &req.BranchID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, uc.fetchFailed(ticket, "roster and bookings", err)
	}

	// 6. Ответ устарел, если за время чтения пришёл более новый запрос
	if !ticket.IsCurrent() {
		return nil, uc.superseded(req)
	}

	// 7. Считаем слоты
	busy := domain.BusyIntervalsFromBookings(bookings)
	slots, err := availability.BuildSlots(config, instructors, vehicles, busy)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: %d slots, %d instructors, %d vehicles, %d busy intervals for branch=%d, date=%s",
		len(slots), len(instructors), len(vehicles), len(busy), req.BranchID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:        req.Date,
		SchoolID:    req.SchoolID,
		BranchID:    req.BranchID,
		Config:      config,
		Slots:       slots,
		Instructors: instructors,
		Vehicles:    vehicles,
		Busy:        busy,
	}, nil
}

// fetchFailed отличает отмену устаревшего запроса от настоящей ошибки чтения
func (uc *UseCase) fetchFailed(ticket availability.Ticket, what string, err error) error {
	if !ticket.IsCurrent() {
		return uc.supersededErr()
	}
	uc.logger.Error("GetAvailability: failed to read %s: %v", what, err)
	return fmt.Errorf("%w: %s: %v", ErrAvailabilityFetch, what, err)
}

func (uc *UseCase) superseded(req *Request) error {
	uc.logger.Info("GetAvailability: discarding stale result for session=%s, date=%s",
		req.Session.Key(), req.Date.Format(domain.DateFormat))
	return uc.supersededErr()
}

func (uc *UseCase) supersededErr() error {
	if uc.recorder != nil {
		uc.recorder.ObserveSuperseded()
	}
	return ErrSuperseded
}
