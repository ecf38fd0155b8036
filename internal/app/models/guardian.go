package models

import "time"

// GuardianStatus describes the guardian's relationship to the student.
type GuardianStatus string

const (
	GuardianFather   GuardianStatus = "father"
	GuardianMother   GuardianStatus = "mother"
	GuardianGuardian GuardianStatus = "guardian"
)

// Guardian represents a student's guardian. Guardians are matched by email on
// registration, so one guardian row may be linked to several students.
type Guardian struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Status    GuardianStatus `json:"status"`
	Email     string         `json:"email"`
	Img       *string        `json:"img,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
