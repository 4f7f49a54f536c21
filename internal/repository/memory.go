package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
)

// In-memory implementations of the repository interfaces. They share the
// sentinel errors and semantics of the Postgres implementations and back
// the service-level test suites.

type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*domain.User
	nextID uint

	// optional hooks into sibling stores so Delete can cascade the way
	// the Postgres transaction does
	sports       *InMemorySportRepository
	participants *InMemoryParticipantRepository
	chats        *InMemoryChatRepository
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[uint]*domain.User), nextID: 1}
}

// WithCascade wires the sibling stores consulted on Delete.
func (r *InMemoryUserRepository) WithCascade(
	sports *InMemorySportRepository,
	participants *InMemoryParticipantRepository,
	chats *InMemoryChatRepository,
) *InMemoryUserRepository {
	r.sports = sports
	r.participants = participants
	r.chats = chats
	return r
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return ErrUsernameExists
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *InMemoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Delete removes the user and, like the Postgres transaction, everything
// hanging off the account: interests, participations and chat rows in
// both directions.
func (r *InMemoryUserRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.users[id]; !ok {
		r.mu.Unlock()
		return ErrUserNotFound
	}
	delete(r.users, id)
	r.mu.Unlock()

	if r.sports != nil {
		r.sports.dropUser(id)
	}
	if r.participants != nil {
		r.participants.dropUser(id)
	}
	if r.chats != nil {
		r.chats.dropUser(id)
	}
	return nil
}

type InMemorySportRepository struct {
	mu        sync.RWMutex
	sports    map[uint]*domain.Sport
	interests []*domain.SportInterest
	nextID    uint
}

func NewInMemorySportRepository() *InMemorySportRepository {
	return &InMemorySportRepository{sports: make(map[uint]*domain.Sport), nextID: 1}
}

func (r *InMemorySportRepository) Create(ctx context.Context, sport *domain.Sport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sport.ID = r.nextID
	r.nextID++
	copied := *sport
	r.sports[sport.ID] = &copied
	return nil
}

func (r *InMemorySportRepository) GetByID(ctx context.Context, id uint) (*domain.Sport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sport, ok := r.sports[id]
	if !ok {
		return nil, ErrSportNotFound
	}
	copied := *sport
	return &copied, nil
}

func (r *InMemorySportRepository) List(ctx context.Context) ([]*domain.Sport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Sport, 0, len(r.sports))
	for _, sport := range r.sports {
		copied := *sport
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *InMemorySportRepository) AddInterest(ctx context.Context, userID, sportID uint) (*domain.SportInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, interest := range r.interests {
		if interest.UserID == userID && interest.SportID == sportID {
			return nil, ErrInterestExists
		}
	}

	interest := &domain.SportInterest{
		ID:      uint(len(r.interests) + 1),
		UserID:  userID,
		SportID: sportID,
	}
	r.interests = append(r.interests, interest)
	copied := *interest
	return &copied, nil
}

func (r *InMemorySportRepository) dropUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.interests[:0]
	for _, interest := range r.interests {
		if interest.UserID == userID {
			continue
		}
		kept = append(kept, interest)
	}
	r.interests = kept
}

func (r *InMemorySportRepository) ListInterests(ctx context.Context, userID uint) ([]*domain.SportInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.SportInterest, 0)
	for _, interest := range r.interests {
		if interest.UserID == userID {
			copied := *interest
			result = append(result, &copied)
		}
	}
	return result, nil
}

type InMemoryPlaydateRepository struct {
	mu        sync.RWMutex
	playdates map[uint]*domain.Playdate
	nextID    uint

	// optional hooks into sibling stores so Delete can cascade the way
	// the Postgres transaction does
	participants *InMemoryParticipantRepository
	chats        *InMemoryChatRepository
}

func NewInMemoryPlaydateRepository() *InMemoryPlaydateRepository {
	return &InMemoryPlaydateRepository{playdates: make(map[uint]*domain.Playdate), nextID: 1}
}

// WithCascade wires the sibling stores consulted on Delete.
func (r *InMemoryPlaydateRepository) WithCascade(participants *InMemoryParticipantRepository, chats *InMemoryChatRepository) *InMemoryPlaydateRepository {
	r.participants = participants
	r.chats = chats
	return r
}

func (r *InMemoryPlaydateRepository) Create(ctx context.Context, playdate *domain.Playdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	playdate.ID = r.nextID
	r.nextID++
	copied := *playdate
	r.playdates[playdate.ID] = &copied
	return nil
}

func (r *InMemoryPlaydateRepository) GetByID(ctx context.Context, id uint) (*domain.Playdate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	playdate, ok := r.playdates[id]
	if !ok {
		return nil, ErrPlaydateNotFound
	}
	copied := *playdate
	return &copied, nil
}

func (r *InMemoryPlaydateRepository) List(ctx context.Context) ([]*domain.Playdate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Playdate, 0, len(r.playdates))
	for _, playdate := range r.playdates {
		copied := *playdate
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *InMemoryPlaydateRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.playdates[id]; !ok {
		r.mu.Unlock()
		return ErrPlaydateNotFound
	}
	delete(r.playdates, id)
	r.mu.Unlock()

	if r.participants != nil {
		r.participants.dropPlaydate(id)
	}
	if r.chats != nil {
		r.chats.dropRoom(domain.PlaydateRoom(id))
	}
	return nil
}

type memberKey struct {
	userID     uint
	playdateID uint
}

type InMemoryParticipantRepository struct {
	mu      sync.Mutex
	members map[memberKey]struct{}
	order   []memberKey

	users *InMemoryUserRepository
}

func NewInMemoryParticipantRepository(users *InMemoryUserRepository) *InMemoryParticipantRepository {
	return &InMemoryParticipantRepository{
		members: make(map[memberKey]struct{}),
		users:   users,
	}
}

func (r *InMemoryParticipantRepository) Add(ctx context.Context, userID, playdateID uint, max *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := memberKey{userID: userID, playdateID: playdateID}
	if _, ok := r.members[key]; ok {
		return ErrParticipantExists
	}

	if max != nil {
		count := 0
		for member := range r.members {
			if member.playdateID == playdateID {
				count++
			}
		}
		if count >= *max {
			return ErrPlaydateFull
		}
	}

	r.members[key] = struct{}{}
	r.order = append(r.order, key)
	return nil
}

func (r *InMemoryParticipantRepository) Remove(ctx context.Context, userID, playdateID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := memberKey{userID: userID, playdateID: playdateID}
	if _, ok := r.members[key]; !ok {
		return ErrParticipantNotFound
	}
	delete(r.members, key)
	for i, member := range r.order {
		if member == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *InMemoryParticipantRepository) Exists(ctx context.Context, userID, playdateID uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.members[memberKey{userID: userID, playdateID: playdateID}]
	return ok, nil
}

func (r *InMemoryParticipantRepository) ListByPlaydate(ctx context.Context, playdateID uint) ([]domain.ParticipantInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	keys := make([]memberKey, 0)
	for _, member := range r.order {
		if member.playdateID == playdateID {
			keys = append(keys, member)
		}
	}
	r.mu.Unlock()

	result := make([]domain.ParticipantInfo, 0, len(keys))
	for _, key := range keys {
		info := domain.ParticipantInfo{UserID: key.userID}
		if r.users != nil {
			if user, err := r.users.GetByID(ctx, key.userID); err == nil {
				info.DisplayName = user.DisplayName()
			}
		}
		result = append(result, info)
	}
	return result, nil
}

func (r *InMemoryParticipantRepository) dropPlaydate(playdateID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	for _, member := range r.order {
		if member.playdateID == playdateID {
			delete(r.members, member)
			continue
		}
		kept = append(kept, member)
	}
	r.order = kept
}

func (r *InMemoryParticipantRepository) dropUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	for _, member := range r.order {
		if member.userID == userID {
			delete(r.members, member)
			continue
		}
		kept = append(kept, member)
	}
	r.order = kept
}

type InMemoryChatRepository struct {
	mu       sync.RWMutex
	messages []*domain.ChatMessage
	nextID   uint

	users *InMemoryUserRepository
}

func NewInMemoryChatRepository(users *InMemoryUserRepository) *InMemoryChatRepository {
	return &InMemoryChatRepository{users: users, nextID: 1}
}

func (r *InMemoryChatRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = r.nextID
	r.nextID++
	copied := *msg
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *InMemoryChatRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.ChatMessage, 0)
	for _, msg := range r.messages {
		if msg.RoomID != nil && *msg.RoomID == roomID {
			result = append(result, r.annotate(ctx, msg))
		}
	}
	sortMessages(result)
	return result, nil
}

func (r *InMemoryChatRepository) ListByPair(ctx context.Context, userA, userB uint) ([]*domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.ChatMessage, 0)
	for _, msg := range r.messages {
		if msg.ReceiverID == nil {
			continue
		}
		if (msg.SenderID == userA && *msg.ReceiverID == userB) ||
			(msg.SenderID == userB && *msg.ReceiverID == userA) {
			result = append(result, r.annotate(ctx, msg))
		}
	}
	sortMessages(result)
	return result, nil
}

func (r *InMemoryChatRepository) annotate(ctx context.Context, msg *domain.ChatMessage) *domain.ChatMessage {
	copied := *msg
	if r.users != nil {
		if user, err := r.users.GetByID(ctx, msg.SenderID); err == nil {
			copied.SenderName = user.DisplayName()
		}
	}
	return &copied
}

func (r *InMemoryChatRepository) dropUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.messages[:0]
	for _, msg := range r.messages {
		if msg.SenderID == userID || (msg.ReceiverID != nil && *msg.ReceiverID == userID) {
			continue
		}
		kept = append(kept, msg)
	}
	r.messages = kept
}

func (r *InMemoryChatRepository) dropRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.messages[:0]
	for _, msg := range r.messages {
		if msg.RoomID != nil && *msg.RoomID == roomID {
			continue
		}
		kept = append(kept, msg)
	}
	r.messages = kept
}

func sortMessages(messages []*domain.ChatMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}
