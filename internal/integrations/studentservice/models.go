package studentservice

// Student модель ученика из сервиса учеников
type Student struct {
	ID              int64  `json:"id"`
	SchoolID        int64  `json:"school_id"`
	BranchID        int64  `json:"branch_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	LicenseCategory string `json:"license_category"` // Категория, на которую учится ученик (B, A2, ...)
	IsActive        bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от сервиса учеников
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
