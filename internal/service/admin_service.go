package service

import (
	"time"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
)

// SystemOverview is the admin dashboard snapshot.
type SystemOverview struct {
	TotalUsers        int64 `json:"total_users"`
	TotalFixtures     int64 `json:"total_fixtures"`
	FinishedFixtures  int64 `json:"finished_fixtures"`
	ScheduledFixtures int64 `json:"scheduled_fixtures"`
	TotalPredictions  int64 `json:"total_predictions"`
	// ActivePredictors counts distinct users who predicted in the last 7
	// days.
	ActivePredictors int64 `json:"active_predictors"`
}

// AdminService serves administrative statistics.
type AdminService struct {
	userRepo       repository.UserRepository
	fixtureRepo    repository.FixtureRepository
	predictionRepo repository.PredictionRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	fixtureRepo repository.FixtureRepository,
	predictionRepo repository.PredictionRepository,
) *AdminService {
	return &AdminService{
		userRepo:       userRepo,
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
	}
}

// Overview collects system-wide counters.
func (s *AdminService) Overview() (*SystemOverview, error) {
	overview := &SystemOverview{}

	var err error
	if overview.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if overview.TotalFixtures, err = s.fixtureRepo.Count(); err != nil {
		return nil, err
	}
	if overview.FinishedFixtures, err = s.fixtureRepo.CountByStatus(entity.FixtureStatusFinished); err != nil {
		return nil, err
	}
	if overview.ScheduledFixtures, err = s.fixtureRepo.CountByStatus(entity.FixtureStatusScheduled); err != nil {
		return nil, err
	}
	if overview.TotalPredictions, err = s.predictionRepo.Count(); err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -7)
	if overview.ActivePredictors, err = s.predictionRepo.CountDistinctPredictorsSince(since); err != nil {
		return nil, err
	}

	return overview, nil
}

// SetAdmin grants or revokes admin rights.
func (s *AdminService) SetAdmin(userID uint, isAdmin bool) error {
	return s.userRepo.SetAdmin(userID, isAdmin)
}

// ListUsers returns users with pagination for the admin panel.
func (s *AdminService) ListUsers(page, pageSize int) ([]entity.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	users, err := s.userRepo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
