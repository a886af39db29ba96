package identity

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"martcore/internal/pkg/password"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidRole        = errors.New("invalid actor role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

// Account is an authenticated marketplace actor (operator or customer).
type Account struct {
	id           uuid.UUID
	storeID      uuid.UUID
	email        string
	passwordHash string
	role         Role
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
}

func NewAccount(id, storeID uuid.UUID, email, rawPassword string, role Role) (*Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hash, err := password.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	return &Account{
		id:           id,
		storeID:      storeID,
		email:        email,
		passwordHash: hash,
		role:         role,
		active:       true,
	}, nil
}

func ReconstructAccount(
	id, storeID uuid.UUID,
	email, passwordHash string,
	role Role,
	active bool,
	lastLoginAt *time.Time,
	createdAt time.Time,
) *Account {
	return &Account{
		id:           id,
		storeID:      storeID,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
	}
}

func (a *Account) Authenticate(rawPassword string) error {
	if !a.active {
		return ErrAccountInactive
	}
	if err := password.ComparePassword(a.passwordHash, rawPassword); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (a *Account) ID() uuid.UUID          { return a.id }
func (a *Account) StoreID() uuid.UUID     { return a.storeID }
func (a *Account) Email() string          { return a.email }
func (a *Account) Role() Role             { return a.role }
func (a *Account) IsActive() bool         { return a.active }
func (a *Account) LastLogin() *time.Time  { return a.lastLoginAt }
func (a *Account) CreatedAt() time.Time   { return a.createdAt }
func (a *Account) PasswordHash() string   { return a.passwordHash }
