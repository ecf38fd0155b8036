package dto

// GuardianPayload carries the guardian fields of a registration request.
type GuardianPayload struct {
	Name   string  `json:"name" binding:"required"`
	Phone  string  `json:"phone" binding:"required"`
	Status string  `json:"status" binding:"required,oneof=father mother guardian"`
	Email  string  `json:"email" binding:"required,email"`
	Img    *string `json:"img,omitempty"`
}

// RegisterStudentRequest is the payload for POST /auth/register. Dates use the
// YYYY-MM-DD format.
type RegisterStudentRequest struct {
	FirstName   string          `json:"firstName" binding:"required"`
	MiddleName  *string         `json:"middleName,omitempty"`
	LastName    string          `json:"lastName" binding:"required"`
	AdmissionNo string          `json:"admissionNo" binding:"required"`
	Form        string          `json:"form" binding:"required"`
	Section     string          `json:"section" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	BloodGroup  string          `json:"bloodGroup" binding:"required"`
	Genotype    string          `json:"genotype" binding:"required"`
	Religion    string          `json:"religion" binding:"required"`
	Tribe       string          `json:"tribe" binding:"required"`
	Gender      string          `json:"gender" binding:"required,oneof=male female"`
	DOB         string          `json:"dob" binding:"required,datetime=2006-01-02"`
	Phone       string          `json:"phone" binding:"required"`
	StudentImg  *string         `json:"studentImg,omitempty"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	Guardian    GuardianPayload `json:"guardian" binding:"required"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"3600"`
}
