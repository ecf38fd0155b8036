package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraint names from migrations/001_init.sql. Violations on these are
// surfaced to clients as field-specific duplicate errors.
const (
	ConstraintStudentEmail  = "students_email_key"
	ConstraintAdmissionNo   = "students_admission_no_key"
	ConstraintGuardianEmail = "guardians_email_key"
)

const uniqueViolationCode = "23505"

// IsDuplicateKeyError checks if the error is a PostgreSQL unique violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsDuplicateConstraintError checks if the error is a unique violation on a
// specific named constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraintName
}

// ConstraintName returns the violated constraint name for a unique violation,
// or an empty string for any other error.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName
	}
	return ""
}
