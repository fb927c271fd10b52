package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type TempPasswordRepository interface {
	Insert(ctx context.Context, tp *TemporaryPassword) error
	FindByUserID(ctx context.Context, userID snowflake.ID) (*TemporaryPassword, error)
	DeleteByUserID(ctx context.Context, userID snowflake.ID) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	UpdateLastSeen(ctx context.Context, sessionID snowflake.ID, lastSeen time.Time) error
	RevokeSession(ctx context.Context, sessionID snowflake.ID, revokedAt time.Time) error
}
