package service

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// leaderboardCacheTTL bounds how stale a cached global leaderboard can be.
const leaderboardCacheTTL = 60 * time.Second

// LeaderboardService produces ranked views over the season aggregates.
type LeaderboardService struct {
	statsRepo   repository.StatsRepository
	fixtureRepo repository.FixtureRepository
	seasonRepo  repository.SeasonRepository
	cacheRepo   repository.CacheRepository

	// formWindow is the number of recent finished fixtures in the form view.
	formWindow int
}

// NewLeaderboardService creates a new leaderboard service.
func NewLeaderboardService(
	statsRepo repository.StatsRepository,
	fixtureRepo repository.FixtureRepository,
	seasonRepo repository.SeasonRepository,
	cacheRepo repository.CacheRepository,
	formWindow int,
) *LeaderboardService {
	if formWindow <= 0 {
		formWindow = 5
	}
	return &LeaderboardService{
		statsRepo:   statsRepo,
		fixtureRepo: fixtureRepo,
		seasonRepo:  seasonRepo,
		cacheRepo:   cacheRepo,
		formWindow:  formWindow,
	}
}

func leaderboardCacheKey(seasonID uint) string {
	return fmt.Sprintf("leaderboard:season:%d", seasonID)
}

// GlobalLeaderboard returns the full ranked season leaderboard. Results are
// cached briefly; the cache is invalidated whenever a fixture is finalized.
func (s *LeaderboardService) GlobalLeaderboard(seasonID uint) ([]RankedStanding, error) {
	key := leaderboardCacheKey(seasonID)

	var cached []RankedStanding
	if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[LeaderboardService] Cache read failed for season #%d: %v", seasonID, err)
	}

	standings, err := s.statsRepo.StandingsBySeason(seasonID)
	if err != nil {
		return nil, err
	}
	ranked := RankStandings(standings)

	if err := s.cacheRepo.SetJSON(key, ranked, leaderboardCacheTTL); err != nil {
		log.Printf("[LeaderboardService] Cache write failed for season #%d: %v", seasonID, err)
	}
	return ranked, nil
}

// CurrentLeaderboard is GlobalLeaderboard for the current season.
func (s *LeaderboardService) CurrentLeaderboard() ([]RankedStanding, error) {
	season, err := s.seasonRepo.GetCurrent()
	if err != nil {
		return nil, err
	}
	return s.GlobalLeaderboard(season.ID)
}

// InvalidateSeason drops the cached leaderboard of a season.
func (s *LeaderboardService) InvalidateSeason(seasonID uint) {
	if err := s.cacheRepo.Delete(leaderboardCacheKey(seasonID)); err != nil {
		log.Printf("[LeaderboardService] Cache invalidation failed for season #%d: %v", seasonID, err)
	}
}

// FormLeaderboard ranks users over the season's most recent finished
// fixtures only. Users without a scored prediction in the window are absent.
func (s *LeaderboardService) FormLeaderboard(seasonID uint) ([]RankedStanding, error) {
	fixtures, err := s.fixtureRepo.RecentFinished(seasonID, s.formWindow)
	if err != nil {
		return nil, err
	}
	return s.windowed(fixtures)
}

// MonthLeaderboard ranks users over the finished fixtures of one calendar
// month.
func (s *LeaderboardService) MonthLeaderboard(seasonID uint, year int, month time.Month) ([]RankedStanding, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", apperrors.ErrValidation, month)
	}
	fixtures, err := s.fixtureRepo.FinishedInMonth(seasonID, year, month)
	if err != nil {
		return nil, err
	}
	return s.windowed(fixtures)
}

func (s *LeaderboardService) windowed(fixtures []entity.Fixture) ([]RankedStanding, error) {
	ids := make([]uint, 0, len(fixtures))
	for _, f := range fixtures {
		ids = append(ids, f.ID)
	}
	standings, err := s.statsRepo.WindowedStandings(ids)
	if err != nil {
		return nil, err
	}
	return RankStandings(standings), nil
}

// ExportXLSX renders a ranked leaderboard as a spreadsheet for download.
func (s *LeaderboardService) ExportXLSX(title string, ranked []RankedStanding) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Leaderboard"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Position", "Username", "Points", "Exact Scores", "Correct Results", "Played", "Avg Points", "Streak"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, r := range ranked {
		values := []interface{}{
			r.Position,
			r.Username,
			r.TotalPoints,
			r.CorrectScores,
			r.CorrectResults,
			r.PredictionsMade,
			r.AvgPointsPerGame,
			r.CurrentStreak,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
			log.Printf("[LeaderboardService] Failed to set document title: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %w", err)
	}
	return buf, nil
}
