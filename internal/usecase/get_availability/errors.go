package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrAccessDenied возвращается, когда бюро не входит в сессию пользователя
	ErrAccessDenied = errors.New("get_availability: access denied")

	// ErrSuperseded возвращается, когда для той же сессии уже начат более новый запрос
	// Результат устаревшего запроса отбрасывается
	ErrSuperseded = errors.New("get_availability: superseded by a newer request")

	// ErrAvailabilityFetch возвращается при ошибке чтения планинга; запрос можно повторить
	ErrAvailabilityFetch = errors.New("get_availability: failed to fetch availability")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
