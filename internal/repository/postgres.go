package repository

import (
	"context"
	"errors"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository/model"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	var taken int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", user.Username).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return ErrUsernameExists
	}

	userModel := toModelUser(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		return err
	}
	user.ID = userModel.ID
	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toDomainUser(&user), nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toDomainUser(&user), nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var users []model.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.User, 0, len(users))
	for i := range users {
		result = append(result, toDomainUser(&users[i]))
	}
	return result, nil
}

// Delete removes the user and, explicitly, everything hanging off the
// account: interests, participations and chat rows in both directions.
func (r *PostgresUserRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.SportInterest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&model.Chat{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

type PostgresSportRepository struct {
	db *gorm.DB
}

func NewPostgresSportRepository(db *gorm.DB) *PostgresSportRepository {
	return &PostgresSportRepository{db: db}
}

func (r *PostgresSportRepository) Create(ctx context.Context, sport *domain.Sport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sport == nil {
		return errors.New("sport is nil")
	}

	sportModel := &model.Sport{Name: sport.Name, Type: string(sport.Type)}
	if err := r.db.WithContext(ctx).Create(sportModel).Error; err != nil {
		return err
	}
	sport.ID = sportModel.ID
	return nil
}

func (r *PostgresSportRepository) GetByID(ctx context.Context, id uint) (*domain.Sport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sport model.Sport
	err := r.db.WithContext(ctx).First(&sport, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}

	return toDomainSport(&sport), nil
}

func (r *PostgresSportRepository) List(ctx context.Context) ([]*domain.Sport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sports []model.Sport
	if err := r.db.WithContext(ctx).Order("id").Find(&sports).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Sport, 0, len(sports))
	for i := range sports {
		result = append(result, toDomainSport(&sports[i]))
	}
	return result, nil
}

func (r *PostgresSportRepository) AddInterest(ctx context.Context, userID, sportID uint) (*domain.SportInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interest := &model.SportInterest{UserID: userID, SportID: sportID}
	if err := r.db.WithContext(ctx).Create(interest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrInterestExists
		}
		return nil, err
	}

	return &domain.SportInterest{ID: interest.ID, UserID: userID, SportID: sportID}, nil
}

func (r *PostgresSportRepository) ListInterests(ctx context.Context, userID uint) ([]*domain.SportInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var interests []model.SportInterest
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&interests).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.SportInterest, 0, len(interests))
	for i := range interests {
		result = append(result, &domain.SportInterest{
			ID:      interests[i].ID,
			UserID:  interests[i].UserID,
			SportID: interests[i].SportID,
		})
	}
	return result, nil
}

type PostgresPlaydateRepository struct {
	db *gorm.DB
}

func NewPostgresPlaydateRepository(db *gorm.DB) *PostgresPlaydateRepository {
	return &PostgresPlaydateRepository{db: db}
}

func (r *PostgresPlaydateRepository) Create(ctx context.Context, playdate *domain.Playdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if playdate == nil {
		return errors.New("playdate is nil")
	}

	playdateModel := toModelPlaydate(playdate)
	if err := r.db.WithContext(ctx).Create(playdateModel).Error; err != nil {
		return err
	}
	playdate.ID = playdateModel.ID
	playdate.CreatedAt = playdateModel.CreatedAt
	return nil
}

func (r *PostgresPlaydateRepository) GetByID(ctx context.Context, id uint) (*domain.Playdate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var playdate model.Playdate
	err := r.db.WithContext(ctx).First(&playdate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaydateNotFound
		}
		return nil, err
	}

	return toDomainPlaydate(&playdate), nil
}

func (r *PostgresPlaydateRepository) List(ctx context.Context) ([]*domain.Playdate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var playdates []model.Playdate
	if err := r.db.WithContext(ctx).Order("date").Find(&playdates).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Playdate, 0, len(playdates))
	for i := range playdates {
		result = append(result, toDomainPlaydate(&playdates[i]))
	}
	return result, nil
}

func (r *PostgresPlaydateRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	roomID := domain.PlaydateRoom(id)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playdate_id = ?", id).Delete(&model.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&model.Chat{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Playdate{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlaydateNotFound
		}
		return nil
	})
}

type PostgresParticipantRepository struct {
	db *gorm.DB
}

func NewPostgresParticipantRepository(db *gorm.DB) *PostgresParticipantRepository {
	return &PostgresParticipantRepository{db: db}
}

// Add runs the capacity check and the insert inside one transaction so a
// pair of racing joins cannot both pass the count check against committed
// state. The unique (user_id, playdate_id) index backs the duplicate check.
func (r *PostgresParticipantRepository) Add(ctx context.Context, userID, playdateID uint, max *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Participant{}).
			Where("playdate_id = ?", playdateID).Count(&count).Error; err != nil {
			return err
		}
		if max != nil && count >= int64(*max) {
			return ErrPlaydateFull
		}

		participant := &model.Participant{UserID: userID, PlaydateID: playdateID}
		if err := tx.Create(participant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrParticipantExists
			}
			return err
		}
		return nil
	})
}

func (r *PostgresParticipantRepository) Remove(ctx context.Context, userID, playdateID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND playdate_id = ?", userID, playdateID).
		Delete(&model.Participant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *PostgresParticipantRepository) Exists(ctx context.Context, userID, playdateID uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Participant{}).
		Where("user_id = ? AND playdate_id = ?", userID, playdateID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresParticipantRepository) ListByPlaydate(ctx context.Context, playdateID uint) ([]domain.ParticipantInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []struct {
		UserID    uint
		FirstName string
		Username  string
	}
	err := r.db.WithContext(ctx).Table("participants").
		Select("participants.user_id, users.first_name, users.username").
		Joins("JOIN users ON users.id = participants.user_id").
		Where("participants.playdate_id = ?", playdateID).
		Order("participants.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.ParticipantInfo, 0, len(rows))
	for _, row := range rows {
		name := row.FirstName
		if name == "" {
			name = row.Username
		}
		result = append(result, domain.ParticipantInfo{UserID: row.UserID, DisplayName: name})
	}
	return result, nil
}

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewPostgresChatRepository(db *gorm.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg == nil {
		return errors.New("message is nil")
	}

	chatModel := toModelChat(msg)
	if err := r.db.WithContext(ctx).Create(chatModel).Error; err != nil {
		return err
	}
	msg.ID = chatModel.ID
	return nil
}

type chatRow struct {
	model.Chat
	SenderName string
}

func (r *PostgresChatRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []chatRow
	err := r.db.WithContext(ctx).Table("chats").
		Select("chats.*, users.first_name AS sender_name").
		Joins("JOIN users ON users.id = chats.sender_id").
		Where("chats.room_id = ?", roomID).
		Order("chats.created_at, chats.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toDomainChats(rows), nil
}

func (r *PostgresChatRepository) ListByPair(ctx context.Context, userA, userB uint) ([]*domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []chatRow
	err := r.db.WithContext(ctx).Table("chats").
		Select("chats.*, users.first_name AS sender_name").
		Joins("JOIN users ON users.id = chats.sender_id").
		Where("(chats.sender_id = ? AND chats.receiver_id = ?) OR (chats.sender_id = ? AND chats.receiver_id = ?)",
			userA, userB, userB, userA).
		Order("chats.created_at, chats.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toDomainChats(rows), nil
}

func toModelUser(user *domain.User) *model.User {
	return &model.User{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}
}

func toDomainUser(user *model.User) *domain.User {
	return &domain.User{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func toDomainSport(sport *model.Sport) *domain.Sport {
	return &domain.Sport{
		ID:   sport.ID,
		Name: sport.Name,
		Type: domain.SportType(sport.Type),
	}
}

func toModelPlaydate(playdate *domain.Playdate) *model.Playdate {
	return &model.Playdate{
		ID:              playdate.ID,
		Title:           playdate.Title,
		SportID:         playdate.SportID,
		CreatorID:       playdate.CreatorID,
		Address:         playdate.Address,
		Latitude:        playdate.Latitude,
		Longitude:       playdate.Longitude,
		Date:            playdate.Date.UTC(),
		MaxParticipants: playdate.MaxParticipants,
	}
}

func toDomainPlaydate(playdate *model.Playdate) *domain.Playdate {
	return &domain.Playdate{
		ID:              playdate.ID,
		Title:           playdate.Title,
		SportID:         playdate.SportID,
		CreatorID:       playdate.CreatorID,
		Address:         playdate.Address,
		Latitude:        playdate.Latitude,
		Longitude:       playdate.Longitude,
		Date:            playdate.Date.UTC(),
		MaxParticipants: playdate.MaxParticipants,
		CreatedAt:       playdate.CreatedAt.UTC(),
	}
}

func toModelChat(msg *domain.ChatMessage) *model.Chat {
	return &model.Chat{
		ID:          msg.ID,
		SenderID:    msg.SenderID,
		ReceiverID:  msg.ReceiverID,
		RoomID:      msg.RoomID,
		Message:     msg.Message,
		MessageType: string(msg.Type),
		Status:      msg.Status,
		CreatedAt:   msg.CreatedAt.UTC(),
	}
}

func toDomainChats(rows []chatRow) []*domain.ChatMessage {
	result := make([]*domain.ChatMessage, 0, len(rows))
	for i := range rows {
		row := rows[i]
		result = append(result, &domain.ChatMessage{
			ID:         row.Chat.ID,
			SenderID:   row.SenderID,
			SenderName: row.SenderName,
			ReceiverID: row.ReceiverID,
			RoomID:     row.RoomID,
			Message:    row.Message,
			Type:       domain.MessageType(row.MessageType),
			Status:     row.Status,
			CreatedAt:  row.Chat.CreatedAt.UTC(),
		})
	}
	return result
}
