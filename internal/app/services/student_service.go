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

// StudentService handles student listing, lookup, update and deletion.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// ListStudents returns one page of students plus the total match count.
func (s *StudentService) ListStudents(ctx context.Context, query repositories.ListQuery) ([]models.Student, int64, error) {
	return s.studentRepo.ListStudents(ctx, query)
}

// GetStudentByID returns the joined student+guardian projection.
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByID(ctx, id)
}

// UpdateStudent applies a partial update. Only fields present in the payload
// are written; a payload with no recognized field is a validation error. A
// supplied password is re-hashed before storage.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error {
	fields := map[string]interface{}{}

	setString := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}

	setString("first_name", req.FirstName)
	setString("middle_name", req.MiddleName)
	setString("last_name", req.LastName)
	setString("admission_no", req.AdmissionNo)
	setString("form", req.Form)
	setString("section", req.Section)
	setString("address", req.Address)
	setString("blood_group", req.BloodGroup)
	setString("genotype", req.Genotype)
	setString("religion", req.Religion)
	setString("tribe", req.Tribe)
	setString("gender", req.Gender)
	setString("phone", req.Phone)
	setString("student_img", req.StudentImg)
	setString("email", req.Email)

	if req.DOB != nil {
		dob, err := time.Parse(dateLayout, *req.DOB)
		if err != nil {
			return apperrors.NewValidationError("dob must be a date in the form YYYY-MM-DD")
		}
		fields["dob"] = dob
	}

	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		fields["password"] = hashed
	}

	if len(fields) == 0 {
		return apperrors.NewValidationError("no updatable fields supplied")
	}

	if err := s.studentRepo.UpdateStudent(ctx, id, fields); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Int("fields", len(fields)).Msg("Student updated")
	return nil
}

// DeleteStudent removes a student; the linked guardian row goes with it via
// the database trigger.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.DeleteStudent(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
