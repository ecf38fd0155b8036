package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schoolhub/internal/app/models"
	"schoolhub/internal/db"
	"schoolhub/internal/pkg/apperrors"
	"schoolhub/internal/pkg/dberrors"
	"schoolhub/internal/pkg/logger"
)

// studentSortColumns is the allow-list of sortable fields for the students
// listing. Only values from this map are ever interpolated into SQL text.
var studentSortColumns = map[string]string{
	"firstName":   "s.first_name",
	"lastName":    "s.last_name",
	"admissionNo": "s.admission_no",
	"email":       "s.email",
	"form":        "s.form",
	"createdAt":   "s.created_at",
}

// studentSearchColumns are the text columns matched by the free-text search.
var studentSearchColumns = []string{
	"s.first_name", "s.last_name", "s.middle_name",
	"s.admission_no", "s.email", "s.form", "s.section",
}

const defaultStudentSort = "s.first_name"

// studentColumns is the joined student+guardian projection.
var studentColumns = []string{
	"s.id", "s.first_name", "s.middle_name", "s.last_name", "s.admission_no",
	"s.form", "s.section", "s.address", "s.blood_group", "s.genotype",
	"s.religion", "s.tribe", "s.gender", "s.dob", "s.phone", "s.student_img",
	"s.email", "s.password", "s.guardian_id", "s.created_at", "s.updated_at",
	"g.name", "g.phone", "g.status", "g.email", "g.img",
}

// StudentRepository handles student and guardian database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(dbPool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: dbPool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// mapStudentDuplicateError maps a unique violation to the field-specific
// duplicate sentinel; any other error is returned unchanged.
func mapStudentDuplicateError(err error) error {
	switch dberrors.ConstraintName(err) {
	case dberrors.ConstraintStudentEmail:
		return apperrors.ErrEmailAlreadyExists
	case dberrors.ConstraintAdmissionNo:
		return apperrors.ErrAdmissionNoAlreadyExists
	case dberrors.ConstraintGuardianEmail:
		return apperrors.ErrGuardianEmailExists
	}
	return err
}

// RegisterStudent persists a student together with its guardian atomically.
// A guardian already registered under the payload's guardian email is reused;
// otherwise a new guardian row is created. Either both rows exist and are
// linked after the call, or the transaction is rolled back.
func (r *StudentRepository) RegisterStudent(ctx context.Context, student *models.Student, guardian *models.Guardian) (int64, error) {
	var studentID int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		guardianID, err := r.findOrCreateGuardian(ctx, tx, guardian)
		if err != nil {
			return err
		}

		insertSQL, args, err := r.sb.Insert("students").
			Columns(
				"first_name", "middle_name", "last_name", "admission_no",
				"form", "section", "address", "blood_group", "genotype",
				"religion", "tribe", "gender", "dob", "phone", "student_img",
				"email", "password", "guardian_id",
			).
			Values(
				student.FirstName, student.MiddleName, student.LastName, student.AdmissionNo,
				student.Form, student.Section, student.Address, student.BloodGroup, student.Genotype,
				student.Religion, student.Tribe, student.Gender, student.DOB, student.Phone, student.StudentImg,
				student.Email, student.Password, guardianID,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert student query: %w", err)
		}

		if err := tx.QueryRow(ctx, insertSQL, args...).Scan(&studentID); err != nil {
			if dberrors.IsDuplicateKeyError(err) {
				return mapStudentDuplicateError(err)
			}
			logger.Error().Err(err).Msg("Error executing insert student query")
			return fmt.Errorf("error creating student: %w", err)
		}

		student.GuardianID = guardianID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return studentID, nil
}

// findOrCreateGuardian looks the guardian up by email inside the registration
// transaction and creates it when absent.
func (r *StudentRepository) findOrCreateGuardian(ctx context.Context, tx pgx.Tx, guardian *models.Guardian) (int64, error) {
	selectSQL, args, err := r.sb.Select("id").
		From("guardians").
		Where(squirrel.Eq{"email": guardian.Email}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build find guardian query: %w", err)
	}

	var guardianID int64
	err = tx.QueryRow(ctx, selectSQL, args...).Scan(&guardianID)
	if err == nil {
		return guardianID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error looking up guardian by email")
		return 0, fmt.Errorf("error finding guardian: %w", err)
	}

	insertSQL, args, err := r.sb.Insert("guardians").
		Columns("name", "phone", "status", "email", "img").
		Values(guardian.Name, guardian.Phone, guardian.Status, guardian.Email, guardian.Img).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert guardian query: %w", err)
	}

	if err := tx.QueryRow(ctx, insertSQL, args...).Scan(&guardianID); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			// Lost a race with a concurrent registration using the same email.
			return 0, mapStudentDuplicateError(err)
		}
		logger.Error().Err(err).Msg("Error executing insert guardian query")
		return 0, fmt.Errorf("error creating guardian: %w", err)
	}

	return guardianID, nil
}

// scanStudent scans one row of the joined student+guardian projection.
func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{Guardian: &models.Guardian{}}
	err := row.Scan(
		&student.ID, &student.FirstName, &student.MiddleName, &student.LastName, &student.AdmissionNo,
		&student.Form, &student.Section, &student.Address, &student.BloodGroup, &student.Genotype,
		&student.Religion, &student.Tribe, &student.Gender, &student.DOB, &student.Phone, &student.StudentImg,
		&student.Email, &student.Password, &student.GuardianID, &student.CreatedAt, &student.UpdatedAt,
		&student.Guardian.Name, &student.Guardian.Phone, &student.Guardian.Status,
		&student.Guardian.Email, &student.Guardian.Img,
	)
	if err != nil {
		return nil, err
	}
	student.Guardian.ID = student.GuardianID
	return student, nil
}

// GetStudentByID retrieves the joined student+guardian projection by student id.
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sqlQuery, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Join("guardians g ON s.guardian_id = g.id").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// GetStudentByEmail retrieves a student by email, including the password hash.
// Used by login.
func (r *StudentRepository) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	sqlQuery, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Join("guardians g ON s.guardian_id = g.id").
		Where(squirrel.Eq{"s.email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by email query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row by email")
		return nil, fmt.Errorf("error getting student by email: %w", err)
	}

	return student, nil
}

// ListStudents retrieves one page of students with the total match count.
func (r *StudentRepository) ListStudents(ctx context.Context, query ListQuery) ([]models.Student, int64, error) {
	baseSelect := r.sb.Select(studentColumns...).
		From("students s").
		Join("guardians g ON s.guardian_id = g.id")

	countSelect := r.sb.Select("COUNT(*)").
		From("students s").
		Join("guardians g ON s.guardian_id = g.id")

	if query.Search != "" {
		pattern := "%" + strings.TrimSpace(query.Search) + "%"
		searchCondition := squirrel.Or{}
		for _, column := range studentSearchColumns {
			searchCondition = append(searchCondition, squirrel.ILike{column: pattern})
		}
		baseSelect = baseSelect.Where(searchCondition)
		countSelect = countSelect.Where(searchCondition)
	}

	countSQL, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count students query")
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	if totalItems == 0 {
		return []models.Student{}, 0, nil
	}

	orderClause := orderBy(studentSortColumns, query.SortBy, defaultStudentSort, query.SortOrder)
	offset, limit := pageWindow(query.Page, query.PageSize)

	baseSelect = baseSelect.OrderBy(orderClause).Limit(uint64(limit)).Offset(offset)

	listSQL, listArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during list")
			return nil, 0, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, totalItems, nil
}

// UpdateStudent writes the supplied column values for one student. The keys of
// fields are database column names chosen by the service layer, never caller
// input. Returns ErrStudentNotFound when the id has no row.
func (r *StudentRepository) UpdateStudent(ctx context.Context, id int64, fields map[string]interface{}) error {
	sqlQuery, args, err := r.sb.Update("students").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return mapStudentDuplicateError(err)
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteStudent removes a student by id. The linked guardian row is removed by
// a database trigger, not here.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	sqlQuery, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
