package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/identity"
	"martcore/internal/infra"
	"martcore/internal/pkg/errs"
	jwtpkg "martcore/internal/pkg/jwt"
	"martcore/internal/usecase/shared"
)

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	AccountID uuid.UUID
	StoreID   uuid.UUID
	Role      identity.Role
	ExpiresAt time.Time
}

type AuthCommands interface {
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

type authUseCaseImpl struct {
	uow           shared.UnitOfWork
	jwtService    *jwtpkg.Service
	tokenDuration time.Duration
}

func NewAuthUseCase(uow shared.UnitOfWork, jwtService *jwtpkg.Service, tokenDuration time.Duration) AuthCommands {
	return &authUseCaseImpl{
		uow:           uow,
		jwtService:    jwtService,
		tokenDuration: tokenDuration,
	}
}

func (u *authUseCaseImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	account, err := u.uow.CommandReads().AccountByEmail(ctx, params.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Indistinguishable from a wrong password on purpose.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := account.Authenticate(params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(account.ID(), account.StoreID(), account.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Accounts().UpdateLastLogin(ctx, account.ID())
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &LoginResult{
		Token:     token,
		AccountID: account.ID(),
		StoreID:   account.StoreID(),
		Role:      account.Role(),
		ExpiresAt: time.Now().Add(u.tokenDuration),
	}, nil
}
