package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда занятие не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда занятие вне бюро сессии
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда занятие не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
