package get_booking_options

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_booking_options: invalid input data")

	// ErrStudentNotFound возвращается, если ученик не найден
	ErrStudentNotFound = errors.New("get_booking_options: student not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booking_options: internal error")
)
