package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"schoolhub/internal/app/migrations"
	"schoolhub/internal/app/models"
	"schoolhub/internal/pkg/apperrors"
)

// setupTestPool connects to the database named by TEST_DATABASE_URL, applies
// migrations and truncates all tables. Tests are skipped when the variable is
// not set.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set TEST_DATABASE_URL to run database tests")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool)
	if err := migrator.MigrateFromDirectory(filepath.Join("..", "..", "..", "migrations")); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`TRUNCATE students, guardians, schedules RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}

	return pool
}

func testStudent(suffix string) (*models.Student, *models.Guardian) {
	student := &models.Student{
		FirstName:   "Ada",
		LastName:    "Obi",
		AdmissionNo: "ADM-" + suffix,
		Form:        "JSS1",
		Section:     "A",
		Gender:      "female",
		DOB:         time.Date(2010, 4, 12, 0, 0, 0, 0, time.UTC),
		Email:       "ada." + suffix + "@example.com",
		Password:    "$2a$12$fakehashfakehashfakehashfakehashfakehashfakehashfakeha",
	}
	guardian := &models.Guardian{
		Name:   "Ngozi Obi",
		Phone:  "+2348000000000",
		Status: models.GuardianMother,
		Email:  "ngozi." + suffix + "@example.com",
	}
	return student, guardian
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int64 {
	t.Helper()
	var n int64
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestRegisterStudentCreatesGuardian(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	student, guardian := testStudent("reg1")
	id, err := repo.RegisterStudent(ctx, student, guardian)
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero student id")
	}

	fetched, err := repo.GetStudentByID(ctx, id)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if fetched.Email != student.Email {
		t.Fatalf("expected email %q, got %q", student.Email, fetched.Email)
	}
	if fetched.Guardian == nil || fetched.Guardian.Email != guardian.Email {
		t.Fatalf("expected guardian joined into result, got %+v", fetched.Guardian)
	}
	if fetched.GuardianID == 0 {
		t.Fatalf("expected guardian id to be set")
	}
}

func TestRegisterStudentReusesGuardianByEmail(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	first, guardian := testStudent("sib1")
	firstID, err := repo.RegisterStudent(ctx, first, guardian)
	if err != nil {
		t.Fatalf("first register error: %v", err)
	}

	second, sameGuardian := testStudent("sib2")
	sameGuardian.Email = guardian.Email
	secondID, err := repo.RegisterStudent(ctx, second, sameGuardian)
	if err != nil {
		t.Fatalf("second register error: %v", err)
	}

	a, _ := repo.GetStudentByID(ctx, firstID)
	b, _ := repo.GetStudentByID(ctx, secondID)
	if a.GuardianID != b.GuardianID {
		t.Fatalf("expected shared guardian, got %d and %d", a.GuardianID, b.GuardianID)
	}
	if n := countRows(t, pool, "guardians"); n != 1 {
		t.Fatalf("expected 1 guardian row, got %d", n)
	}
}

func TestRegisterStudentDuplicateEmailRollsBack(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	first, guardian := testStudent("dup1")
	if _, err := repo.RegisterStudent(ctx, first, guardian); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	guardiansBefore := countRows(t, pool, "guardians")

	// same student email, brand new guardian email
	dup, freshGuardian := testStudent("dup2")
	dup.Email = first.Email
	_, err := repo.RegisterStudent(ctx, dup, freshGuardian)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	// the rolled-back registration must not leave an orphan guardian behind
	if n := countRows(t, pool, "guardians"); n != guardiansBefore {
		t.Fatalf("expected %d guardian rows after rollback, got %d", guardiansBefore, n)
	}
	if n := countRows(t, pool, "students"); n != 1 {
		t.Fatalf("expected 1 student row, got %d", n)
	}
}

func TestRegisterStudentDuplicateAdmissionNo(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	first, guardian := testStudent("adm1")
	if _, err := repo.RegisterStudent(ctx, first, guardian); err != nil {
		t.Fatalf("first register error: %v", err)
	}

	dup, freshGuardian := testStudent("adm2")
	dup.AdmissionNo = first.AdmissionNo
	if _, err := repo.RegisterStudent(ctx, dup, freshGuardian); !errors.Is(err, apperrors.ErrAdmissionNoAlreadyExists) {
		t.Fatalf("expected ErrAdmissionNoAlreadyExists, got %v", err)
	}
}

func TestDeleteStudentRemovesGuardian(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	student, guardian := testStudent("del1")
	id, err := repo.RegisterStudent(ctx, student, guardian)
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	if err := repo.DeleteStudent(ctx, id); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	if _, err := repo.GetStudentByID(ctx, id); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if n := countRows(t, pool, "guardians"); n != 0 {
		t.Fatalf("expected guardian removed with student, got %d rows", n)
	}

	if err := repo.DeleteStudent(ctx, id); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound on second delete, got %v", err)
	}
}

func TestDeleteStudentWithSharedGuardian(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	first, guardian := testStudent("shared1")
	firstID, err := repo.RegisterStudent(ctx, first, guardian)
	if err != nil {
		t.Fatalf("first register error: %v", err)
	}

	second, sameGuardian := testStudent("shared2")
	sameGuardian.Email = guardian.Email
	secondID, err := repo.RegisterStudent(ctx, second, sameGuardian)
	if err != nil {
		t.Fatalf("second register error: %v", err)
	}

	// deleting one sibling removes the shared guardian, and the cascade takes
	// the other sibling with it
	if err := repo.DeleteStudent(ctx, firstID); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	if n := countRows(t, pool, "guardians"); n != 0 {
		t.Fatalf("expected shared guardian removed, got %d rows", n)
	}
	if _, err := repo.GetStudentByID(ctx, firstID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound for deleted student, got %v", err)
	}
	if _, err := repo.GetStudentByID(ctx, secondID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound for cascaded sibling, got %v", err)
	}
	if n := countRows(t, pool, "students"); n != 0 {
		t.Fatalf("expected no student rows left, got %d", n)
	}
}

func TestListStudentsPaginationSearchAndSort(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	names := []string{"Amara", "Bola", "Chidi", "Dele", "Efe"}
	for i, name := range names {
		student, guardian := testStudent(fmt.Sprintf("list%d", i))
		student.FirstName = name
		if _, err := repo.RegisterStudent(ctx, student, guardian); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	// page 2 of size 2, sorted by first name descending
	students, total, err := repo.ListStudents(ctx, ListQuery{
		Page: 2, PageSize: 2, SortBy: "firstName", SortOrder: "desc",
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(students))
	}
	if students[0].FirstName != "Chidi" || students[1].FirstName != "Bola" {
		t.Fatalf("unexpected page content: %s, %s", students[0].FirstName, students[1].FirstName)
	}

	// search narrows the result and the total
	students, total, err = repo.ListStudents(ctx, ListQuery{Page: 1, PageSize: 10, Search: "chi"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if total != 1 || len(students) != 1 || students[0].FirstName != "Chidi" {
		t.Fatalf("expected only Chidi, got total=%d rows=%d", total, len(students))
	}

	// no matches returns an empty page, not an error
	students, total, err = repo.ListStudents(ctx, ListQuery{Page: 1, PageSize: 10, Search: "zzz"})
	if err != nil {
		t.Fatalf("empty search error: %v", err)
	}
	if total != 0 || len(students) != 0 {
		t.Fatalf("expected empty result, got total=%d rows=%d", total, len(students))
	}
}

func TestUpdateStudent(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewStudentRepository(pool)
	ctx := context.Background()

	student, guardian := testStudent("upd1")
	id, err := repo.RegisterStudent(ctx, student, guardian)
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	err = repo.UpdateStudent(ctx, id, map[string]interface{}{
		"first_name": "Adaeze",
		"form":       "JSS2",
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}

	fetched, err := repo.GetStudentByID(ctx, id)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if fetched.FirstName != "Adaeze" || fetched.Form != "JSS2" {
		t.Fatalf("update not applied: %+v", fetched)
	}
	// untouched fields keep their values
	if fetched.LastName != "Obi" {
		t.Fatalf("unexpected last name change: %q", fetched.LastName)
	}

	if err := repo.UpdateStudent(ctx, 999999, map[string]interface{}{"form": "X"}); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}

	other, otherGuardian := testStudent("upd2")
	if _, err := repo.RegisterStudent(ctx, other, otherGuardian); err != nil {
		t.Fatalf("second register error: %v", err)
	}
	if err := repo.UpdateStudent(ctx, id, map[string]interface{}{"email": other.Email}); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestScheduleLifecycle(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewScheduleRepository(pool)
	ctx := context.Background()

	schedule := &models.Schedule{
		Title:     "Mid-term exams",
		Category:  "exam",
		StartDate: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC),
	}
	id, err := repo.CreateSchedule(ctx, schedule)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	fetched, err := repo.GetScheduleByID(ctx, id)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if fetched.Title != schedule.Title || fetched.Category != schedule.Category {
		t.Fatalf("unexpected schedule: %+v", fetched)
	}

	if err := repo.UpdateSchedule(ctx, id, map[string]interface{}{"title": "Mid-term examinations"}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	schedules, total, err := repo.ListSchedules(ctx, ListQuery{Page: 1, PageSize: 10, Search: "examinations"})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(schedules) != 1 {
		t.Fatalf("expected one schedule, got total=%d rows=%d", total, len(schedules))
	}

	if err := repo.DeleteSchedule(ctx, id); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := repo.GetScheduleByID(ctx, id); !errors.Is(err, apperrors.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}
