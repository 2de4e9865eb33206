package submit_bookings

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidRequest         = "некорректные данные занятия"
	msgAccessDenied           = "доступ запрещен"
	msgInstructorNotFound     = "инструктор не найден в бюро"
	msgVehicleNotFound        = "машина не найдена в бюро"
	msgStudentNotFound        = "ученик не найден"
	msgVehicleCategory        = "машина не подходит для категории прав"
	msgInvalidBookingDate     = "дата занятия в прошлом"
	msgDateTooFar             = "дата занятия слишком далеко в будущем"
	msgOutsideWorkingHours    = "занятие выходит за часы работы бюро"
	msgDurationTooLong        = "занятие длиннее допустимого"
	msgInstructorNotAvailable = "инструктор занят в это время"
	msgVehicleNotAvailable    = "машина занята в это время"
	msgStudentNotAvailable    = "у ученика уже есть занятие в это время"
	msgInternal               = "не удалось записать занятие"
)

// mapBookingError сопоставляет ошибку записи одного занятия с HTTP кодом и сообщением
func mapBookingError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, create_booking.ErrInvalidInput):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return http.StatusBadRequest, fmt.Sprintf("%s: %s", msgInvalidRequest, vErr.Reason)
		}
		return http.StatusBadRequest, msgInvalidRequest
	case errors.Is(err, create_booking.ErrAccessDenied):
		return http.StatusForbidden, msgAccessDenied
	case errors.Is(err, create_booking.ErrInstructorNotFound):
		return http.StatusNotFound, msgInstructorNotFound
	case errors.Is(err, create_booking.ErrVehicleNotFound):
		return http.StatusNotFound, msgVehicleNotFound
	case errors.Is(err, create_booking.ErrStudentNotFound):
		return http.StatusNotFound, msgStudentNotFound
	case errors.Is(err, create_booking.ErrVehicleCategoryMismatch):
		return http.StatusUnprocessableEntity, msgVehicleCategory
	case errors.Is(err, create_booking.ErrInvalidDate):
		return http.StatusBadRequest, msgInvalidBookingDate
	case errors.Is(err, create_booking.ErrDateTooFarInFuture):
		return http.StatusBadRequest, msgDateTooFar
	case errors.Is(err, create_booking.ErrOutsideWorkingHours):
		return http.StatusBadRequest, msgOutsideWorkingHours
	case errors.Is(err, create_booking.ErrDurationTooLong):
		return http.StatusBadRequest, msgDurationTooLong
	case errors.Is(err, create_booking.ErrInstructorNotAvailable):
		return http.StatusConflict, msgInstructorNotAvailable
	case errors.Is(err, create_booking.ErrVehicleNotAvailable):
		return http.StatusConflict, msgVehicleNotAvailable
	case errors.Is(err, create_booking.ErrStudentNotAvailable):
		return http.StatusConflict, msgStudentNotAvailable
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// summary сообщение "X из Y занятий записано"
func summary(succeeded, total int) string {
	return fmt.Sprintf("%d из %d занятий записано", succeeded, total)
}
