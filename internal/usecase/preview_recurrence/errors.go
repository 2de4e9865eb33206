package preview_recurrence

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном правиле повторения
	ErrInvalidInput = errors.New("preview_recurrence: invalid input data")
)
