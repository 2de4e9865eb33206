package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SchoolID <= 0 {
		return fmt.Errorf("%w: schoolID must be positive", ErrInvalidInput)
	}

	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateScope проверяет, что запрошенное бюро - бюро сессии
func validateScope(req *Request) error {
	if !req.Session.IsValid() {
		return fmt.Errorf("%w: session is incomplete", ErrAccessDenied)
	}

	if !req.Session.CanAccess(req.SchoolID, req.BranchID) {
		return fmt.Errorf("%w: school=%d, branch=%d", ErrAccessDenied, req.SchoolID, req.BranchID)
	}

	return nil
}
