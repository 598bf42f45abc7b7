package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// LeagueWithMembership is a mini-league joined with the caller's membership
// record, for "my leagues" listings.
type LeagueWithMembership struct {
	entity.MiniLeague
	MemberCount     int64  `json:"member_count"`
	CreatorUsername string `json:"creator_username"`
	IsAdmin         bool   `json:"is_admin"`
}

// MiniLeagueRepository defines persistence operations for mini-leagues and
// their memberships.
type MiniLeagueRepository interface {
	// Create persists the league and its creator membership inside the given
	// transaction, so a half-created league is never observable.
	Create(tx *gorm.DB, league *entity.MiniLeague, creatorMember *entity.MiniLeagueMember) error
	GetByID(id uint) (*entity.MiniLeague, error)
	GetByInviteCode(code string) (*entity.MiniLeague, error)
	InviteCodeExists(code string) (bool, error)
	ListByUser(userID uint, seasonID uint) ([]LeagueWithMembership, error)
	ListCreatedBy(userID uint) ([]entity.MiniLeague, error)

	AddMember(member *entity.MiniLeagueMember) error
	GetMember(leagueID, userID uint) (*entity.MiniLeagueMember, error)
	ListMembers(leagueID uint) ([]entity.MiniLeagueMember, error)
	CountMembers(leagueID uint) (int64, error)
	CountMembershipsByUser(userID uint) (int64, error)
	RemoveMember(tx *gorm.DB, leagueID, userID uint) error

	// Delete removes the league and cascades its memberships.
	Delete(tx *gorm.DB, leagueID uint) error
	// OldestOtherMember returns the member with the earliest joined_at,
	// excluding the given user. It is the ownership-transfer target.
	OldestOtherMember(leagueID, excludeUserID uint) (*entity.MiniLeagueMember, error)
	// TransferOwnership reassigns created_by and promotes the new owner to
	// league admin inside the caller's transaction.
	TransferOwnership(tx *gorm.DB, leagueID, newOwnerID uint) error
}
