package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
)

func TestInMemoryUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()

	sports := NewInMemorySportRepository()
	chats := NewInMemoryChatRepository(nil)
	users := NewInMemoryUserRepository()
	participants := NewInMemoryParticipantRepository(users)
	users.WithCascade(sports, participants, chats)

	alice := &domain.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, users.Create(ctx, alice))
	bob := &domain.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, users.Create(ctx, bob))

	sport := &domain.Sport{Name: "tennis", Type: domain.SportTypeSingle}
	require.NoError(t, sports.Create(ctx, sport))
	_, err := sports.AddInterest(ctx, alice.ID, sport.ID)
	require.NoError(t, err)

	require.NoError(t, participants.Add(ctx, alice.ID, 1, nil))
	require.NoError(t, participants.Add(ctx, bob.ID, 1, nil))

	sent := domain.NewChatMessage(alice, "hi bob", domain.MessageTypeText)
	sent.ReceiverID = &bob.ID
	require.NoError(t, chats.Save(ctx, sent))
	received := domain.NewChatMessage(bob, "hi alice", domain.MessageTypeText)
	received.ReceiverID = &alice.ID
	received.CreatedAt = received.CreatedAt.Add(time.Second)
	require.NoError(t, chats.Save(ctx, received))

	require.NoError(t, users.Delete(ctx, alice.ID))

	_, err = users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	interests, err := sports.ListInterests(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, interests)

	ok, err := participants.Exists(ctx, alice.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Chat rows vanish in both directions; bob's unrelated state stays.
	history, err := chats.ListByPair(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	ok, err = participants.Exists(ctx, bob.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
