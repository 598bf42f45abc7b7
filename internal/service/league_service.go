package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

const (
	inviteCodeLength   = 8
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeAttempts = 10
)

// LeagueService manages mini-leagues and their memberships.
type LeagueService struct {
	leagueRepo repository.MiniLeagueRepository
	statsRepo  repository.StatsRepository
	seasonRepo repository.SeasonRepository
	db         *gorm.DB

	// maxLeaguesPerUser caps memberships per user across all leagues.
	maxLeaguesPerUser int
	// defaultLeagueSize is the member cap applied to new leagues.
	defaultLeagueSize int
}

// NewLeagueService creates a new mini-league service.
func NewLeagueService(
	leagueRepo repository.MiniLeagueRepository,
	statsRepo repository.StatsRepository,
	seasonRepo repository.SeasonRepository,
	db *gorm.DB,
	maxLeaguesPerUser int,
	defaultLeagueSize int,
) *LeagueService {
	if maxLeaguesPerUser <= 0 {
		maxLeaguesPerUser = 5
	}
	if defaultLeagueSize <= 0 {
		defaultLeagueSize = 50
	}
	return &LeagueService{
		leagueRepo:        leagueRepo,
		statsRepo:         statsRepo,
		seasonRepo:        seasonRepo,
		db:                db,
		maxLeaguesPerUser: maxLeaguesPerUser,
		defaultLeagueSize: defaultLeagueSize,
	}
}

// generateInviteCode draws random codes until one is unused. The code space
// is 36^8, so collisions are rare; the attempt cap guards against a broken
// uniqueness check looping forever.
func (s *LeagueService) generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		code := make([]byte, inviteCodeLength)
		for i, b := range buf {
			code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
		}
		exists, err := s.leagueRepo.InviteCodeExists(string(code))
		if err != nil {
			return "", err
		}
		if !exists {
			return string(code), nil
		}
	}
	return "", fmt.Errorf("could not generate a unique invite code after %d attempts", inviteCodeAttempts)
}

// CreateLeague creates a mini-league in the current season. The creator
// becomes its first member and league admin atomically.
func (s *LeagueService) CreateLeague(creatorID uint, name, description string) (*entity.MiniLeague, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: league name is required", apperrors.ErrValidation)
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("%w: league name is too long", apperrors.ErrValidation)
	}

	memberships, err := s.leagueRepo.CountMembershipsByUser(creatorID)
	if err != nil {
		return nil, err
	}
	if memberships >= int64(s.maxLeaguesPerUser) {
		return nil, fmt.Errorf("%w: you are already in %d leagues", apperrors.ErrConflict, memberships)
	}

	season, err := s.seasonRepo.GetCurrent()
	if err != nil {
		return nil, err
	}

	code, err := s.generateInviteCode()
	if err != nil {
		return nil, err
	}

	league := &entity.MiniLeague{
		Name:        name,
		Description: description,
		InviteCode:  code,
		CreatedBy:   creatorID,
		SeasonID:    season.ID,
		MaxMembers:  s.defaultLeagueSize,
		IsActive:    true,
	}
	member := &entity.MiniLeagueMember{
		UserID:  creatorID,
		IsAdmin: true,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during CreateLeague transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := s.leagueRepo.Create(tx, league, member); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	log.Printf("[LeagueService] User #%d created league #%d (%s)", creatorID, league.ID, league.Name)
	return league, nil
}

// JoinLeague adds the user to the league behind an invite code.
func (s *LeagueService) JoinLeague(userID uint, inviteCode string) (*entity.MiniLeague, error) {
	league, err := s.leagueRepo.GetByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown invite code", apperrors.ErrNotFound)
		}
		return nil, err
	}

	memberships, err := s.leagueRepo.CountMembershipsByUser(userID)
	if err != nil {
		return nil, err
	}
	if memberships >= int64(s.maxLeaguesPerUser) {
		return nil, fmt.Errorf("%w: you are already in %d leagues", apperrors.ErrConflict, memberships)
	}

	members, err := s.leagueRepo.CountMembers(league.ID)
	if err != nil {
		return nil, err
	}
	if members >= int64(league.MaxMembers) {
		return nil, fmt.Errorf("%w: league is full", apperrors.ErrConflict)
	}

	member := &entity.MiniLeagueMember{
		MiniLeagueID: league.ID,
		UserID:       userID,
	}
	if err := s.leagueRepo.AddMember(member); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: already a member of this league", apperrors.ErrConflict)
		}
		return nil, err
	}

	log.Printf("[LeagueService] User #%d joined league #%d", userID, league.ID)
	return league, nil
}

// LeaveLeague removes the user's membership. The creator can only leave as
// the sole remaining member, which deletes the league with them.
func (s *LeagueService) LeaveLeague(userID, leagueID uint) error {
	league, err := s.leagueRepo.GetByID(leagueID)
	if err != nil {
		return err
	}
	if _, err := s.leagueRepo.GetMember(leagueID, userID); err != nil {
		return err
	}

	members, err := s.leagueRepo.CountMembers(leagueID)
	if err != nil {
		return err
	}
	if league.CreatedBy == userID && members > 1 {
		return fmt.Errorf("%w: transfer or delete the league before leaving", apperrors.ErrForbidden)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during LeaveLeague transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if league.CreatedBy == userID {
		// Sole member leaving: the league goes with them.
		if err := s.leagueRepo.Delete(tx, leagueID); err != nil {
			tx.Rollback()
			return err
		}
	} else {
		if err := s.leagueRepo.RemoveMember(tx, leagueID, userID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	log.Printf("[LeagueService] User #%d left league #%d", userID, leagueID)
	return nil
}

// DeleteLeague removes the league and all memberships. Creator only.
func (s *LeagueService) DeleteLeague(userID, leagueID uint) error {
	league, err := s.leagueRepo.GetByID(leagueID)
	if err != nil {
		return err
	}
	if league.CreatedBy != userID {
		return fmt.Errorf("%w: only the creator can delete a league", apperrors.ErrForbidden)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during DeleteLeague transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := s.leagueRepo.Delete(tx, leagueID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	log.Printf("[LeagueService] User #%d deleted league #%d", userID, leagueID)
	return nil
}

// ListMyLeagues returns the leagues the user belongs to in the current
// season.
func (s *LeagueService) ListMyLeagues(userID uint) ([]repository.LeagueWithMembership, error) {
	season, err := s.seasonRepo.GetCurrent()
	if err != nil {
		return nil, err
	}
	return s.leagueRepo.ListByUser(userID, season.ID)
}

// GetLeague returns league details for a member. Non-members only learn that
// the league exists through its invite code.
func (s *LeagueService) GetLeague(userID, leagueID uint) (*entity.MiniLeague, error) {
	league, err := s.leagueRepo.GetByID(leagueID)
	if err != nil {
		return nil, err
	}
	if _, err := s.leagueRepo.GetMember(leagueID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: not a member of this league", apperrors.ErrForbidden)
		}
		return nil, err
	}
	return league, nil
}

// LeagueStandings ranks the league's members with the season-wide rules
// applied to the member subset.
func (s *LeagueService) LeagueStandings(userID, leagueID uint) ([]RankedStanding, error) {
	league, err := s.GetLeague(userID, leagueID)
	if err != nil {
		return nil, err
	}

	members, err := s.leagueRepo.ListMembers(leagueID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]uint, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	standings, err := s.statsRepo.StandingsForUsers(league.SeasonID, userIDs)
	if err != nil {
		return nil, err
	}
	return RankStandings(standings), nil
}
