package service

import (
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
)

// Shared testify mocks for the service tests.

// MockUserRepository implements repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) SetAdmin(userID uint, isAdmin bool) error {
	args := m.Called(userID, isAdmin)
	return args.Error(0)
}

func (m *MockUserRepository) SetEmailVerified(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockSeasonRepository implements repository.SeasonRepository.
type MockSeasonRepository struct {
	mock.Mock
}

func (m *MockSeasonRepository) Create(season *entity.Season) error {
	args := m.Called(season)
	return args.Error(0)
}

func (m *MockSeasonRepository) GetByID(id uint) (*entity.Season, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Season), args.Error(1)
}

func (m *MockSeasonRepository) GetByName(name string) (*entity.Season, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Season), args.Error(1)
}

func (m *MockSeasonRepository) GetCurrent() (*entity.Season, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Season), args.Error(1)
}

func (m *MockSeasonRepository) List() ([]entity.Season, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Season), args.Error(1)
}

func (m *MockSeasonRepository) Update(season *entity.Season) error {
	args := m.Called(season)
	return args.Error(0)
}

func (m *MockSeasonRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockFixtureRepository implements repository.FixtureRepository.
type MockFixtureRepository struct {
	mock.Mock
}

func (m *MockFixtureRepository) Create(fixture *entity.Fixture) error {
	args := m.Called(fixture)
	return args.Error(0)
}

func (m *MockFixtureRepository) GetByID(id uint) (*entity.Fixture, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Fixture), args.Error(1)
}

func (m *MockFixtureRepository) Update(fixture *entity.Fixture) error {
	args := m.Called(fixture)
	return args.Error(0)
}

func (m *MockFixtureRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockFixtureRepository) ListBySeason(seasonID uint) ([]entity.Fixture, error) {
	args := m.Called(seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Fixture), args.Error(1)
}

func (m *MockFixtureRepository) NextScheduled(seasonID uint, now time.Time) (*entity.Fixture, error) {
	args := m.Called(seasonID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Fixture), args.Error(1)
}

func (m *MockFixtureRepository) Upcoming(now time.Time, limit int) ([]entity.Fixture, error) {
	args := m.Called(now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Fixture), args.Error(1)
}

func (m *MockFixtureRepository) RecentFinished(seasonID uint, limit int) ([]entity.Fixture, error) {
	args := m.Called(seasonID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Fixture), args.Error(1)
}

func (m *MockFixtureRepository) FinishedInMonth(seasonID uint, year int, month time.Month) ([]entity.Fixture, error) {
	args := m.Called(seasonID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Fixture), args.Error(1)
}

func (m *MockFixtureRepository) FinishedOrdered(seasonID uint) ([]entity.Fixture, error) {
	args := m.Called(seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Fixture), args.Error(1)
}

func (m *MockFixtureRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFixtureRepository) CountByStatus(status entity.FixtureStatus) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPredictionRepository implements repository.PredictionRepository.
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Create(prediction *entity.Prediction) error {
	args := m.Called(prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) Update(prediction *entity.Prediction) error {
	args := m.Called(prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByUserAndFixture(userID, fixtureID uint) (*entity.Prediction, error) {
	args := m.Called(userID, fixtureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListByFixture(fixtureID uint) ([]entity.Prediction, error) {
	args := m.Called(fixtureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListByUser(userID uint) ([]repository.PredictionWithFixture, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PredictionWithFixture), args.Error(1)
}

func (m *MockPredictionRepository) CountByFixture(fixtureID uint) (int64, error) {
	args := m.Called(fixtureID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPredictionRepository) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPredictionRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPredictionRepository) CountDistinctPredictorsSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsRepository implements repository.StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetByUserAndSeason(userID, seasonID uint) (*entity.UserStats, error) {
	args := m.Called(userID, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserStats), args.Error(1)
}

func (m *MockStatsRepository) ListBySeason(seasonID uint) ([]entity.UserStats, error) {
	args := m.Called(seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserStats), args.Error(1)
}

func (m *MockStatsRepository) StandingsBySeason(seasonID uint) ([]repository.Standing, error) {
	args := m.Called(seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Standing), args.Error(1)
}

func (m *MockStatsRepository) StandingsForUsers(seasonID uint, userIDs []uint) ([]repository.Standing, error) {
	args := m.Called(seasonID, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Standing), args.Error(1)
}

func (m *MockStatsRepository) WindowedStandings(fixtureIDs []uint) ([]repository.Standing, error) {
	args := m.Called(fixtureIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Standing), args.Error(1)
}

func (m *MockStatsRepository) CountBySeason(seasonID uint) (int64, error) {
	args := m.Called(seasonID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) SavePositions(tx *gorm.DB, seasonID uint, positions map[uint]int) error {
	args := m.Called(tx, seasonID, positions)
	return args.Error(0)
}

// MockLeagueRepository implements repository.MiniLeagueRepository.
type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) Create(tx *gorm.DB, league *entity.MiniLeague, creatorMember *entity.MiniLeagueMember) error {
	args := m.Called(tx, league, creatorMember)
	return args.Error(0)
}

func (m *MockLeagueRepository) GetByID(id uint) (*entity.MiniLeague, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MiniLeague), args.Error(1)
}

func (m *MockLeagueRepository) GetByInviteCode(code string) (*entity.MiniLeague, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MiniLeague), args.Error(1)
}

func (m *MockLeagueRepository) InviteCodeExists(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeagueRepository) ListByUser(userID uint, seasonID uint) ([]repository.LeagueWithMembership, error) {
	args := m.Called(userID, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LeagueWithMembership), args.Error(1)
}

func (m *MockLeagueRepository) ListCreatedBy(userID uint) ([]entity.MiniLeague, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MiniLeague), args.Error(1)
}

func (m *MockLeagueRepository) AddMember(member *entity.MiniLeagueMember) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockLeagueRepository) GetMember(leagueID, userID uint) (*entity.MiniLeagueMember, error) {
	args := m.Called(leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MiniLeagueMember), args.Error(1)
}

func (m *MockLeagueRepository) ListMembers(leagueID uint) ([]entity.MiniLeagueMember, error) {
	args := m.Called(leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MiniLeagueMember), args.Error(1)
}

func (m *MockLeagueRepository) CountMembers(leagueID uint) (int64, error) {
	args := m.Called(leagueID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeagueRepository) CountMembershipsByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeagueRepository) RemoveMember(tx *gorm.DB, leagueID, userID uint) error {
	args := m.Called(tx, leagueID, userID)
	return args.Error(0)
}

func (m *MockLeagueRepository) Delete(tx *gorm.DB, leagueID uint) error {
	args := m.Called(tx, leagueID)
	return args.Error(0)
}

func (m *MockLeagueRepository) OldestOtherMember(leagueID, excludeUserID uint) (*entity.MiniLeagueMember, error) {
	args := m.Called(leagueID, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MiniLeagueMember), args.Error(1)
}

func (m *MockLeagueRepository) TransferOwnership(tx *gorm.DB, leagueID, newOwnerID uint) error {
	args := m.Called(tx, leagueID, newOwnerID)
	return args.Error(0)
}

// MockNotificationRepository implements repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *entity.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkSent(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(userID uint, limit int) ([]entity.Notification, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepository implements repository.CacheRepository.
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}
