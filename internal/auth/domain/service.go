package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// CreateIdentity creates a credential identity. Registration passes
	// EmailConfirmed=true because payment already proved ownership of
	// the billing email.
	CreateIdentity(ctx context.Context, req CreateIdentityRequest) (*User, error)
	// DeleteIdentity removes an identity; used by registration rollback.
	DeleteIdentity(ctx context.Context, id snowflake.ID) error

	StoreTemporaryPassword(ctx context.Context, userID snowflake.ID, plaintext string) error
	DeleteTemporaryPassword(ctx context.Context, userID snowflake.ID) error
	// ConsumeTemporaryPassword returns the plaintext and deletes the row,
	// so the credential can be read exactly once.
	ConsumeTemporaryPassword(ctx context.Context, userID snowflake.ID) (string, error)

	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
}

type CreateIdentityRequest struct {
	Email          string
	Password       string
	EmailConfirmed bool
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Session   *SessionView
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
	UserID    snowflake.ID
}
