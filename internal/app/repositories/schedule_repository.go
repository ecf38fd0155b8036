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
	"schoolhub/internal/pkg/apperrors"
	"schoolhub/internal/pkg/logger"
)

// scheduleSortColumns is the allow-list of sortable fields for schedules.
var scheduleSortColumns = map[string]string{
	"title":     "title",
	"category":  "category",
	"startDate": "start_date",
	"endDate":   "end_date",
	"createdAt": "created_at",
}

var scheduleSearchColumns = []string{"title", "category"}

const defaultScheduleSort = "start_date"

var scheduleColumns = []string{
	"id", "title", "category", "start_date", "end_date", "img",
	"created_at", "updated_at",
}

// ScheduleRepository handles schedule database operations
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(dbPool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: dbPool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := row.Scan(
		&schedule.ID, &schedule.Title, &schedule.Category,
		&schedule.StartDate, &schedule.EndDate, &schedule.Img,
		&schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// CreateSchedule inserts a new schedule and returns its id.
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("schedules").
		Columns("title", "category", "start_date", "end_date", "img").
		Values(schedule.Title, schedule.Category, schedule.StartDate, schedule.EndDate, schedule.Img).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create schedule query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sqlQuery, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create schedule query")
		return 0, fmt.Errorf("error creating schedule: %w", err)
	}

	return id, nil
}

// GetScheduleByID retrieves a schedule by id.
func (r *ScheduleRepository) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	sqlQuery, args, err := r.sb.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schedule query: %w", err)
	}

	schedule, err := scanSchedule(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		logger.Error().Err(err).Int64("scheduleID", id).Msg("Error scanning schedule row")
		return nil, fmt.Errorf("error getting schedule by ID: %w", err)
	}

	return schedule, nil
}

// ListSchedules retrieves one page of schedules with the total match count.
func (r *ScheduleRepository) ListSchedules(ctx context.Context, query ListQuery) ([]models.Schedule, int64, error) {
	baseSelect := r.sb.Select(scheduleColumns...).From("schedules")
	countSelect := r.sb.Select("COUNT(*)").From("schedules")

	if query.Search != "" {
		pattern := "%" + strings.TrimSpace(query.Search) + "%"
		searchCondition := squirrel.Or{}
		for _, column := range scheduleSearchColumns {
			searchCondition = append(searchCondition, squirrel.ILike{column: pattern})
		}
		baseSelect = baseSelect.Where(searchCondition)
		countSelect = countSelect.Where(searchCondition)
	}

	countSQL, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count schedules query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count schedules query")
		return nil, 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	if totalItems == 0 {
		return []models.Schedule{}, 0, nil
	}

	orderClause := orderBy(scheduleSortColumns, query.SortBy, defaultScheduleSort, query.SortOrder)
	offset, limit := pageWindow(query.Page, query.PageSize)

	listSQL, listArgs, err := baseSelect.OrderBy(orderClause).Limit(uint64(limit)).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list schedules query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list schedules query")
		return nil, 0, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning schedule row during list")
			return nil, 0, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		schedules = append(schedules, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating schedule rows: %w", err)
	}

	return schedules, totalItems, nil
}

// UpdateSchedule writes the supplied column values for one schedule. Keys of
// fields are database column names chosen by the service layer.
func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, id int64, fields map[string]interface{}) error {
	sqlQuery, args, err := r.sb.Update("schedules").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update schedule query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scheduleID", id).Msg("Error executing update schedule query")
		return fmt.Errorf("error updating schedule: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}

// DeleteSchedule removes a schedule by id.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id int64) error {
	sqlQuery, args, err := r.sb.Delete("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete schedule query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scheduleID", id).Msg("Error executing delete schedule query")
		return fmt.Errorf("error deleting schedule: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}
