package models

import "time"

// Student represents a registered student. Every student is linked to exactly
// one guardian through GuardianID (NOT NULL foreign key).
type Student struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	MiddleName  *string   `json:"middleName,omitempty"`
	LastName    string    `json:"lastName"`
	AdmissionNo string    `json:"admissionNo"`
	Form        string    `json:"form"`
	Section     string    `json:"section"`
	Address     string    `json:"address"`
	BloodGroup  string    `json:"bloodGroup"`
	Genotype    string    `json:"genotype"`
	Religion    string    `json:"religion"`
	Tribe       string    `json:"tribe"`
	Gender      string    `json:"gender"`
	DOB         time.Time `json:"dob"`
	Phone       string    `json:"phone"`
	StudentImg  *string   `json:"studentImg,omitempty"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	GuardianID  int64     `json:"guardianId"`
	Guardian    *Guardian `json:"guardian,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DisplayName is the name embedded in session tokens.
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
