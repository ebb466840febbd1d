package models

type Institution struct {
	ID     int64
	Name   string
	UserID int64
}

type Course struct {
	ID            int64
	Name          string
	InstitutionID int64
	UserID        int64
}

// OnboardingResult lists the rows written by one committed onboarding.
type OnboardingResult struct {
	Institutions []Institution
	Courses      []Course
}
