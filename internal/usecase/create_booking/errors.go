package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrAccessDenied возвращается, когда бюро не входит в сессию пользователя
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInstructorNotFound возвращается, когда инструктор не найден в бюро
	ErrInstructorNotFound = errors.New("create_booking: instructor not found")

	// ErrVehicleNotFound возвращается, когда машина не найдена в бюро
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrStudentNotFound возвращается, когда ученик не найден в автошколе
	ErrStudentNotFound = errors.New("create_booking: student not found")

	// ErrVehicleCategoryMismatch возвращается, когда машина не подходит для категории прав
	ErrVehicleCategoryMismatch = errors.New("create_booking: vehicle does not support license category")

	// ErrInvalidDate возвращается, когда дата занятия в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда занятие выходит за окно работы бюро
	ErrOutsideWorkingHours = errors.New("create_booking: booking is outside working hours")

	// ErrDurationTooLong возвращается, когда урок длиннее максимальной длительности
	ErrDurationTooLong = errors.New("create_booking: booking is too long")

	// ErrInstructorNotAvailable возвращается, когда инструктор уже занят в это время
	ErrInstructorNotAvailable = errors.New("create_booking: instructor is not available")

	// ErrVehicleNotAvailable возвращается, когда машина уже занята в это время
	ErrVehicleNotAvailable = errors.New("create_booking: vehicle is not available")

	// ErrStudentNotAvailable возвращается, когда у ученика уже есть занятие в это время
	ErrStudentNotAvailable = errors.New("create_booking: student is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
