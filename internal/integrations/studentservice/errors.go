package studentservice

import "errors"

var (
	// ErrStudentNotFound возвращается, когда ученик не найден
	ErrStudentNotFound = errors.New("student not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("studentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("studentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис учеников недоступен и проверки по ученику пропускаются
	ErrServiceDegraded = errors.New("studentservice unavailable: graceful degradation applied")
)
