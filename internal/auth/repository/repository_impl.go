package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/auth/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO users (id, external_id, email, password_hash, email_confirmed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.ExternalID,
		user.Email,
		user.PasswordHash,
		user.EmailConfirmed,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(
		`DELETE FROM users WHERE id = ?`, id,
	).Error
}

type tempPasswordRepository struct {
	db *gorm.DB
}

func NewTempPasswordRepository(db *gorm.DB) domain.TempPasswordRepository {
	return &tempPasswordRepository{db: db}
}

func (r *tempPasswordRepository) Insert(ctx context.Context, tp *domain.TemporaryPassword) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO temporary_passwords (user_id, password, created_at)
		 VALUES (?, ?, ?)`,
		tp.UserID,
		tp.Password,
		tp.CreatedAt,
	).Error
}

func (r *tempPasswordRepository) FindByUserID(ctx context.Context, userID snowflake.ID) (*domain.TemporaryPassword, error) {
	var tp domain.TemporaryPassword
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&tp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTempPasswordNotFound
		}
		return nil, err
	}
	return &tp, nil
}

func (r *tempPasswordRepository) DeleteByUserID(ctx context.Context, userID snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(
		`DELETE FROM temporary_passwords WHERE user_id = ?`, userID,
	).Error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO sessions (id, user_id, session_token_hash, user_agent, ip_address, expires_at, created_at, last_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.SessionTokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
		session.LastSeenAt,
	).Error
}

func (r *sessionRepository) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Where("session_token_hash = ?", tokenHash).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) UpdateLastSeen(ctx context.Context, sessionID snowflake.ID, lastSeen time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE sessions SET last_seen_at = ? WHERE id = ?`,
		lastSeen, sessionID,
	).Error
}

func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID snowflake.ID, revokedAt time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE sessions SET revoked_at = ? WHERE id = ?`,
		revokedAt, sessionID,
	).Error
}
