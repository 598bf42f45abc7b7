package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
)

// LeagueRepo implements repository.MiniLeagueRepository.
type LeagueRepo struct {
	db *gorm.DB
}

// NewLeagueRepo creates a new mini-league repository.
func NewLeagueRepo(db *gorm.DB) *LeagueRepo {
	return &LeagueRepo{db: db}
}

// Create persists the league and its creator membership inside the given
// transaction.
func (r *LeagueRepo) Create(tx *gorm.DB, league *entity.MiniLeague, creatorMember *entity.MiniLeagueMember) error {
	if err := tx.Create(league).Error; err != nil {
		return translateError(err)
	}
	creatorMember.MiniLeagueID = league.ID
	return translateError(tx.Create(creatorMember).Error)
}

// GetByID returns a league by ID.
func (r *LeagueRepo) GetByID(id uint) (*entity.MiniLeague, error) {
	var league entity.MiniLeague
	if err := r.db.First(&league, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &league, nil
}

// GetByInviteCode returns an active league matching the invite code.
func (r *LeagueRepo) GetByInviteCode(code string) (*entity.MiniLeague, error) {
	var league entity.MiniLeague
	err := r.db.Where("invite_code = ? AND is_active = ?", code, true).
		First(&league).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &league, nil
}

// InviteCodeExists reports whether any league holds the code, active or not.
func (r *LeagueRepo) InviteCodeExists(code string) (bool, error) {
	var total int64
	err := r.db.Model(&entity.MiniLeague{}).Where("invite_code = ?", code).Count(&total).Error
	return total > 0, err
}

// ListByUser returns the user's leagues in the season joined with membership
// details, newest first.
func (r *LeagueRepo) ListByUser(userID uint, seasonID uint) ([]repository.LeagueWithMembership, error) {
	var rows []repository.LeagueWithMembership
	err := r.db.Table("mini_leagues l").
		Select(`l.*,
			m.is_admin AS is_admin,
			u.username AS creator_username,
			(SELECT COUNT(*) FROM mini_league_members c WHERE c.mini_league_id = l.id) AS member_count`).
		Joins("JOIN mini_league_members m ON m.mini_league_id = l.id AND m.user_id = ?", userID).
		Joins("JOIN users u ON u.id = l.created_by").
		Where("l.season_id = ? AND l.is_active = ?", seasonID, true).
		Order("l.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ListCreatedBy returns all leagues the user created.
func (r *LeagueRepo) ListCreatedBy(userID uint) ([]entity.MiniLeague, error) {
	var leagues []entity.MiniLeague
	err := r.db.Where("created_by = ?", userID).Find(&leagues).Error
	return leagues, err
}

// AddMember inserts a membership row. A duplicate (league, user) pair
// surfaces as ErrConflict.
func (r *LeagueRepo) AddMember(member *entity.MiniLeagueMember) error {
	return translateError(r.db.Create(member).Error)
}

// GetMember returns the membership row for a (league, user) pair.
func (r *LeagueRepo) GetMember(leagueID, userID uint) (*entity.MiniLeagueMember, error) {
	var member entity.MiniLeagueMember
	err := r.db.Where("mini_league_id = ? AND user_id = ?", leagueID, userID).
		First(&member).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &member, nil
}

// ListMembers returns a league's members in join order.
func (r *LeagueRepo) ListMembers(leagueID uint) ([]entity.MiniLeagueMember, error) {
	var members []entity.MiniLeagueMember
	err := r.db.Where("mini_league_id = ?", leagueID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

// CountMembers counts a league's members.
func (r *LeagueRepo) CountMembers(leagueID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.MiniLeagueMember{}).
		Where("mini_league_id = ?", leagueID).Count(&total).Error
	return total, err
}

// CountMembershipsByUser counts how many leagues the user belongs to.
func (r *LeagueRepo) CountMembershipsByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.MiniLeagueMember{}).
		Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// RemoveMember deletes a membership row inside the caller's transaction.
func (r *LeagueRepo) RemoveMember(tx *gorm.DB, leagueID, userID uint) error {
	res := tx.Where("mini_league_id = ? AND user_id = ?", leagueID, userID).
		Delete(&entity.MiniLeagueMember{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes the league and cascades its memberships inside the caller's
// transaction.
func (r *LeagueRepo) Delete(tx *gorm.DB, leagueID uint) error {
	if err := tx.Where("mini_league_id = ?", leagueID).Delete(&entity.MiniLeagueMember{}).Error; err != nil {
		return translateError(err)
	}
	return translateError(tx.Delete(&entity.MiniLeague{}, leagueID).Error)
}

// OldestOtherMember returns the member with the earliest joined_at, excluding
// the given user.
func (r *LeagueRepo) OldestOtherMember(leagueID, excludeUserID uint) (*entity.MiniLeagueMember, error) {
	var member entity.MiniLeagueMember
	err := r.db.Where("mini_league_id = ? AND user_id != ?", leagueID, excludeUserID).
		Order("joined_at ASC, id ASC").
		First(&member).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &member, nil
}

// TransferOwnership reassigns created_by and promotes the new owner to league
// admin inside the caller's transaction.
func (r *LeagueRepo) TransferOwnership(tx *gorm.DB, leagueID, newOwnerID uint) error {
	err := tx.Model(&entity.MiniLeague{}).
		Where("id = ?", leagueID).
		Update("created_by", newOwnerID).Error
	if err != nil {
		return translateError(err)
	}
	return translateError(tx.Model(&entity.MiniLeagueMember{}).
		Where("mini_league_id = ? AND user_id = ?", leagueID, newOwnerID).
		Update("is_admin", true).Error)
}
