package service

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// deletionConfirmationPhrase must be typed back verbatim to delete an
// account.
const deletionConfirmationPhrase = "DELETE"

// DeletionPreview summarizes what removing an account will touch.
type DeletionPreview struct {
	PredictionCount   int64                `json:"prediction_count"`
	StatsCount        int64                `json:"stats_count"`
	MembershipCount   int64                `json:"membership_count"`
	NotificationCount int64                `json:"notification_count"`
	OwnedLeagues      []OwnedLeaguePreview `json:"owned_leagues"`
}

// OwnedLeaguePreview describes the fate of one league the user created.
type OwnedLeaguePreview struct {
	LeagueID   uint   `json:"league_id"`
	LeagueName string `json:"league_name"`
	// WillBeDeleted is true when the user is the sole member; otherwise
	// ownership transfers to the longest-standing other member.
	WillBeDeleted  bool  `json:"will_be_deleted"`
	TransferToUser *uint `json:"transfer_to_user,omitempty"`
}

// AccountService handles account deletion.
type AccountService struct {
	userRepo         repository.UserRepository
	leagueRepo       repository.MiniLeagueRepository
	predictionRepo   repository.PredictionRepository
	statsRepo        repository.StatsRepository
	notificationRepo repository.NotificationRepository
	db               *gorm.DB
}

// NewAccountService creates a new account service.
func NewAccountService(
	userRepo repository.UserRepository,
	leagueRepo repository.MiniLeagueRepository,
	predictionRepo repository.PredictionRepository,
	statsRepo repository.StatsRepository,
	notificationRepo repository.NotificationRepository,
	db *gorm.DB,
) *AccountService {
	return &AccountService{
		userRepo:         userRepo,
		leagueRepo:       leagueRepo,
		predictionRepo:   predictionRepo,
		statsRepo:        statsRepo,
		notificationRepo: notificationRepo,
		db:               db,
	}
}

// PreviewDeletion reports what DeleteAccount would remove or transfer,
// without changing anything.
func (s *AccountService) PreviewDeletion(userID uint) (*DeletionPreview, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	preview := &DeletionPreview{}

	var err error
	if preview.PredictionCount, err = s.predictionRepo.CountByUser(userID); err != nil {
		return nil, err
	}
	if preview.StatsCount, err = s.statsRepo.CountByUser(userID); err != nil {
		return nil, err
	}
	if preview.MembershipCount, err = s.leagueRepo.CountMembershipsByUser(userID); err != nil {
		return nil, err
	}
	if preview.NotificationCount, err = s.notificationRepo.CountByUser(userID); err != nil {
		return nil, err
	}

	owned, err := s.leagueRepo.ListCreatedBy(userID)
	if err != nil {
		return nil, err
	}
	for _, league := range owned {
		item := OwnedLeaguePreview{LeagueID: league.ID, LeagueName: league.Name}
		heir, err := s.leagueRepo.OldestOtherMember(league.ID, userID)
		switch {
		case err == nil:
			item.TransferToUser = &heir.UserID
		case errors.Is(err, apperrors.ErrNotFound):
			item.WillBeDeleted = true
		default:
			return nil, err
		}
		preview.OwnedLeagues = append(preview.OwnedLeagues, item)
	}

	return preview, nil
}

// DeleteAccount permanently removes the user and everything attached to
// them in a single transaction. Leagues the user created transfer to their
// longest-standing member, or disappear when the user was the only one.
func (s *AccountService) DeleteAccount(userID uint, confirmation, password string) error {
	if confirmation != deletionConfirmationPhrase {
		return fmt.Errorf("%w: type %q to confirm deletion", apperrors.ErrValidation, deletionConfirmationPhrase)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user.PasswordAuthEnabled && !user.CheckPassword(password) {
		return fmt.Errorf("%w: password is incorrect", apperrors.ErrUnauthorized)
	}

	owned, err := s.leagueRepo.ListCreatedBy(userID)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during DeleteAccount transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("user_id = ?", userID).Delete(&entity.Prediction{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete predictions: %w", err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&entity.UserStats{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete stats: %w", err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&entity.Notification{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	// Owned leagues first: transfer where an heir exists, delete otherwise.
	// Membership rows go with each resolution.
	for _, league := range owned {
		heir, err := s.leagueRepo.OldestOtherMember(league.ID, userID)
		switch {
		case err == nil:
			if err := s.leagueRepo.TransferOwnership(tx, league.ID, heir.UserID); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to transfer league %d: %w", league.ID, err)
			}
			if err := s.leagueRepo.RemoveMember(tx, league.ID, userID); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to remove membership in league %d: %w", league.ID, err)
			}
			log.Printf("[AccountService] League #%d transferred to user #%d", league.ID, heir.UserID)
		case errors.Is(err, apperrors.ErrNotFound):
			if err := s.leagueRepo.Delete(tx, league.ID); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to delete league %d: %w", league.ID, err)
			}
			log.Printf("[AccountService] League #%d deleted with its sole member", league.ID)
		default:
			tx.Rollback()
			return err
		}
	}

	// Remaining memberships in leagues the user did not create.
	if err := tx.Where("user_id = ?", userID).Delete(&entity.MiniLeagueMember{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete memberships: %w", err)
	}

	if err := tx.Delete(&entity.User{}, userID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	log.Printf("[AccountService] Deleted account #%d (%s)", userID, user.Username)
	return nil
}
