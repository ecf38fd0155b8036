package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"schoolhub/internal/app/models"
	"schoolhub/internal/app/models/dto"
	"schoolhub/internal/app/repositories"
	"schoolhub/internal/pkg/apperrors"
	"schoolhub/internal/pkg/auth"
)

const dateLayout = "2006-01-02"

// AuthService handles registration and login.
type AuthService struct {
	studentRepo *repositories.StudentRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(studentRepo *repositories.StudentRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// RegisterStudent registers a new student with its guardian and returns the
// persisted joined projection.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error) {
	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, apperrors.NewValidationError("dob must be a date in the form YYYY-MM-DD")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		AdmissionNo: req.AdmissionNo,
		Form:        req.Form,
		Section:     req.Section,
		Address:     req.Address,
		BloodGroup:  req.BloodGroup,
		Genotype:    req.Genotype,
		Religion:    req.Religion,
		Tribe:       req.Tribe,
		Gender:      req.Gender,
		DOB:         dob,
		Phone:       req.Phone,
		StudentImg:  req.StudentImg,
		Email:       req.Email,
		Password:    hashedPassword,
	}

	guardian := &models.Guardian{
		Name:   req.Guardian.Name,
		Phone:  req.Guardian.Phone,
		Status: models.GuardianStatus(req.Guardian.Status),
		Email:  req.Guardian.Email,
		Img:    req.Guardian.Img,
	}

	studentID, err := s.studentRepo.RegisterStudent(ctx, student, guardian)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Str("admissionNo", req.AdmissionNo).Msg("Student registered")

	// Re-read the joined projection as the success payload.
	created, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching registered student: %w", err)
	}

	return created, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable in the returned error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	student, err := s.studentRepo.GetStudentByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(student.ID, student.Email, student.DisplayName())
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.TokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
