package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// PathInt64 извлекает положительный int64 из параметра пути
func PathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || v <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return v, nil
}

// QueryInt64 извлекает необязательный положительный int64 из query параметров
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, domain.NewValidationError(name, "must be a positive integer")
	}
	return &v, nil
}

// QueryDate извлекает необязательную дату YYYY-MM-DD из query параметров
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(name, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// QueryString извлекает необязательную строку из query параметров
func QueryString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

// QueryBool извлекает булев флаг, отсутствие параметра - false
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError(name, "must be true or false")
	}
	return v, nil
}

// PathBranch извлекает {schoolId} и {branchId} из пути
func PathBranch(r *http.Request) (schoolID, branchID int64, err error) {
	if schoolID, err = PathInt64(r, "schoolId"); err != nil {
		return 0, 0, err
	}
	if branchID, err = PathInt64(r, "branchId"); err != nil {
		return 0, 0, err
	}
	return schoolID, branchID, nil
}

// RequiredQueryDate извлекает обязательную дату YYYY-MM-DD
func RequiredQueryDate(r *http.Request, name string) (time.Time, error) {
	d, err := QueryDate(r, name)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Time{}, domain.NewValidationError(name, "is required")
	}
	return *d, nil
}
