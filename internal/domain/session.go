package domain

import "fmt"

// SessionContext is the caller's identity and organisational scope.
// It is populated once at the HTTP boundary and passed explicitly to use cases.
type SessionContext struct {
	UserID   int64
	SchoolID int64
	BranchID int64
}

// IsValid returns true when every identifier is set
func (s SessionContext) IsValid() bool {
	return s.UserID > 0 && s.SchoolID > 0 && s.BranchID > 0
}

// CanAccess returns true if the session scope covers the given school and branch
func (s SessionContext) CanAccess(schoolID, branchID int64) bool {
	return s.SchoolID == schoolID && s.BranchID == branchID
}

// Key identifies the session scope, used to order concurrent availability reads
func (s SessionContext) Key() string {
	return fmt.Sprintf("%d:%d:%d", s.UserID, s.SchoolID, s.BranchID)
}
