package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListQuery carries the validated paging, search and sort parameters of a
// collection query. SortBy is matched against the repository's column
// allow-list; unknown fields fall back to the resource default.
type ListQuery struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

// Repositories bundles all repository instances sharing one connection pool.
type Repositories struct {
	StudentRepository  *StudentRepository
	ScheduleRepository *ScheduleRepository
}

// NewRepositories creates all repositories over the given pool.
func NewRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:  NewStudentRepository(dbPool),
		ScheduleRepository: NewScheduleRepository(dbPool),
	}
}
