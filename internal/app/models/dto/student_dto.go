package dto

import "schoolhub/internal/app/models"

// UpdateStudentRequest is the payload for PUT /students/:id. All fields are
// optional; only fields present in the payload are written. A payload with no
// recognized field is rejected.
type UpdateStudentRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	MiddleName  *string `json:"middleName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	AdmissionNo *string `json:"admissionNo,omitempty"`
	Form        *string `json:"form,omitempty"`
	Section     *string `json:"section,omitempty"`
	Address     *string `json:"address,omitempty"`
	BloodGroup  *string `json:"bloodGroup,omitempty"`
	Genotype    *string `json:"genotype,omitempty"`
	Religion    *string `json:"religion,omitempty"`
	Tribe       *string `json:"tribe,omitempty"`
	Gender      *string `json:"gender,omitempty" binding:"omitempty,oneof=male female"`
	DOB         *string `json:"dob,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Phone       *string `json:"phone,omitempty"`
	StudentImg  *string `json:"studentImg,omitempty"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Password    *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// StudentListResponse is the response body of GET /students.
type StudentListResponse struct {
	Students   []models.Student `json:"students"`
	Pagination PaginationInfo   `json:"pagination"`
}

// UpdatedStudentResponse reports the identifier of an updated row.
type UpdatedStudentResponse struct {
	ID int64 `json:"id"`
}
