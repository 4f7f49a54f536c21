package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
)

type membershipFixture struct {
	users        *repository.InMemoryUserRepository
	playdates    *repository.InMemoryPlaydateRepository
	participants *repository.InMemoryParticipantRepository
	svc          *MembershipService
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()

	users := repository.NewInMemoryUserRepository()
	playdates := repository.NewInMemoryPlaydateRepository()
	participants := repository.NewInMemoryParticipantRepository(users)

	return &membershipFixture{
		users:        users,
		playdates:    playdates,
		participants: participants,
		svc:          NewMembershipService(users, playdates, participants, nil),
	}
}

func (f *membershipFixture) addUser(t *testing.T, username string) uint {
	t.Helper()

	user := &domain.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func (f *membershipFixture) addPlaydate(t *testing.T, max *int) uint {
	t.Helper()

	playdate := &domain.Playdate{
		Title:           "evening run",
		SportID:         1,
		CreatorID:       1,
		Date:            time.Now().Add(24 * time.Hour),
		MaxParticipants: max,
	}
	require.NoError(t, f.playdates.Create(context.Background(), playdate))
	return playdate.ID
}

func intPtr(v int) *int { return &v }

func TestMembershipService_Join(t *testing.T) {
	ctx := context.Background()

	f := newMembershipFixture(t)
	userID := f.addUser(t, "alice")
	playdateID := f.addPlaydate(t, intPtr(4))

	roster, err := f.svc.Join(ctx, userID, playdateID)
	require.NoError(t, err)
	assert.Equal(t, 1, roster.Count)
	require.Len(t, roster.Participants, 1)
	assert.Equal(t, userID, roster.Participants[0].UserID)
	assert.Equal(t, "alice", roster.Participants[0].DisplayName)
}

func TestMembershipService_JoinTwiceConflicts(t *testing.T) {
	ctx := context.Background()

	f := newMembershipFixture(t)
	userID := f.addUser(t, "alice")
	playdateID := f.addPlaydate(t, nil)

	_, err := f.svc.Join(ctx, userID, playdateID)
	require.NoError(t, err)

	_, err = f.svc.Join(ctx, userID, playdateID)
	assert.ErrorIs(t, err, ErrAlreadyParticipant)

	roster, err := f.svc.List(ctx, playdateID)
	require.NoError(t, err)
	assert.Equal(t, 1, roster.Count)
}

func TestMembershipService_JoinUnknownUser(t *testing.T) {
	f := newMembershipFixture(t)
	playdateID := f.addPlaydate(t, nil)

	_, err := f.svc.Join(context.Background(), 42, playdateID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestMembershipService_JoinUnknownPlaydate(t *testing.T) {
	f := newMembershipFixture(t)
	userID := f.addUser(t, "alice")

	_, err := f.svc.Join(context.Background(), userID, 42)
	assert.ErrorIs(t, err, repository.ErrPlaydateNotFound)
}

func TestMembershipService_CapacityFreedByLeave(t *testing.T) {
	ctx := context.Background()

	f := newMembershipFixture(t)
	u1 := f.addUser(t, "alice")
	u2 := f.addUser(t, "bob")
	u3 := f.addUser(t, "carol")
	playdateID := f.addPlaydate(t, intPtr(2))

	_, err := f.svc.Join(ctx, u1, playdateID)
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, u2, playdateID)
	require.NoError(t, err)

	_, err = f.svc.Join(ctx, u3, playdateID)
	require.ErrorIs(t, err, ErrPlaydateFull)

	_, err = f.svc.Leave(ctx, u1, playdateID)
	require.NoError(t, err)

	roster, err := f.svc.Join(ctx, u3, playdateID)
	require.NoError(t, err)
	assert.Equal(t, 2, roster.Count)
}

func TestMembershipService_ConcurrentJoinsRespectCapacity(t *testing.T) {
	ctx := context.Background()

	const capacity = 5
	const contenders = 20

	f := newMembershipFixture(t)
	playdateID := f.addPlaydate(t, intPtr(capacity))

	userIDs := make([]uint, 0, contenders)
	for i := 0; i < contenders; i++ {
		userIDs = append(userIDs, f.addUser(t, "user"+string(rune('a'+i))))
	}

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for _, userID := range userIDs {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := f.svc.Join(ctx, id, playdateID)
			results <- err
		}(userID)
	}
	wg.Wait()
	close(results)

	joined, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			joined++
		case assert.ErrorIs(t, err, ErrPlaydateFull):
			rejected++
		}
	}
	assert.Equal(t, capacity, joined)
	assert.Equal(t, contenders-capacity, rejected)

	roster, err := f.svc.List(ctx, playdateID)
	require.NoError(t, err)
	assert.Equal(t, capacity, roster.Count)
}

func TestMembershipService_JoinLeaveJoin(t *testing.T) {
	ctx := context.Background()

	f := newMembershipFixture(t)
	userID := f.addUser(t, "alice")
	playdateID := f.addPlaydate(t, intPtr(3))

	_, err := f.svc.Join(ctx, userID, playdateID)
	require.NoError(t, err)

	roster, err := f.svc.Leave(ctx, userID, playdateID)
	require.NoError(t, err)
	assert.Equal(t, 0, roster.Count)

	roster, err = f.svc.Join(ctx, userID, playdateID)
	require.NoError(t, err)
	assert.Equal(t, 1, roster.Count)
}

func TestMembershipService_LeaveWithoutJoin(t *testing.T) {
	f := newMembershipFixture(t)
	userID := f.addUser(t, "alice")
	playdateID := f.addPlaydate(t, nil)

	_, err := f.svc.Leave(context.Background(), userID, playdateID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestMembershipService_ListEmptyRoster(t *testing.T) {
	ctx := context.Background()

	f := newMembershipFixture(t)
	playdateID := f.addPlaydate(t, nil)

	roster, err := f.svc.List(ctx, playdateID)
	require.NoError(t, err)
	assert.Equal(t, 0, roster.Count)
	assert.Empty(t, roster.Participants)

	_, err = f.svc.List(ctx, playdateID+1)
	assert.ErrorIs(t, err, repository.ErrPlaydateNotFound)
}

func TestMembershipService_IsParticipant(t *testing.T) {
	ctx := context.Background()

	f := newMembershipFixture(t)
	userID := f.addUser(t, "alice")
	playdateID := f.addPlaydate(t, nil)

	ok, err := f.svc.IsParticipant(ctx, userID, playdateID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.Join(ctx, userID, playdateID)
	require.NoError(t, err)

	ok, err = f.svc.IsParticipant(ctx, userID, playdateID)
	require.NoError(t, err)
	assert.True(t, ok)
}
