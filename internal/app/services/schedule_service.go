package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"schoolhub/internal/app/models"
	"schoolhub/internal/app/models/dto"
	"schoolhub/internal/app/repositories"
	"schoolhub/internal/pkg/apperrors"
)

// ScheduleService handles schedule CRUD operations.
type ScheduleService struct {
	scheduleRepo *repositories.ScheduleRepository
	logger       zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(scheduleRepo *repositories.ScheduleRepository, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// CreateSchedule persists a new schedule and returns it with its id.
func (s *ScheduleService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*models.Schedule, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("startDate must be a date in the form YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("endDate must be a date in the form YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewValidationError("endDate must not be before startDate")
	}

	schedule := &models.Schedule{
		Title:     req.Title,
		Category:  req.Category,
		StartDate: startDate,
		EndDate:   endDate,
		Img:       req.Img,
	}

	id, err := s.scheduleRepo.CreateSchedule(ctx, schedule)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("scheduleID", id).Str("title", req.Title).Msg("Schedule created")
	return s.scheduleRepo.GetScheduleByID(ctx, id)
}

// ListSchedules returns one page of schedules plus the total match count.
func (s *ScheduleService) ListSchedules(ctx context.Context, query repositories.ListQuery) ([]models.Schedule, int64, error) {
	return s.scheduleRepo.ListSchedules(ctx, query)
}

// GetScheduleByID returns a schedule by id.
func (s *ScheduleService) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	return s.scheduleRepo.GetScheduleByID(ctx, id)
}

// UpdateSchedule applies a partial update; a payload with no recognized field
// is a validation error.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, id int64, req *dto.UpdateScheduleRequest) error {
	fields := map[string]interface{}{}

	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Img != nil {
		fields["img"] = *req.Img
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return apperrors.NewValidationError("startDate must be a date in the form YYYY-MM-DD")
		}
		fields["start_date"] = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return apperrors.NewValidationError("endDate must be a date in the form YYYY-MM-DD")
		}
		fields["end_date"] = endDate
	}

	if len(fields) == 0 {
		return apperrors.NewValidationError("no updatable fields supplied")
	}

	if err := s.scheduleRepo.UpdateSchedule(ctx, id, fields); err != nil {
		return err
	}

	s.logger.Info().Int64("scheduleID", id).Int("fields", len(fields)).Msg("Schedule updated")
	return nil
}

// DeleteSchedule removes a schedule by id.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, id int64) error {
	if err := s.scheduleRepo.DeleteSchedule(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("scheduleID", id).Msg("Schedule deleted")
	return nil
}
