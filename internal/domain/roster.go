package domain

// Instructor is a teaching staff member assigned to a branch
type Instructor struct {
	ID        int64
	SchoolID  int64
	BranchID  int64
	FirstName string
	LastName  string
	IsActive  bool
}

// FullName returns "First Last"
func (i *Instructor) FullName() string {
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// Vehicle is a school vehicle usable for lessons and exams
type Vehicle struct {
	ID                int64
	SchoolID          int64
	BranchID          int64
	Name              string
	LicensePlate      string
	LicenseCategories []LicenseCategory
	IsActive          bool
}

// Supports returns true if the vehicle can be used for the license category
func (v *Vehicle) Supports(category LicenseCategory) bool {
	for _, c := range v.LicenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
