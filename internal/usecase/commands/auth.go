package commands

import (
	"context"

	"innkeeper/internal/domain/user"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/pkg/jwt"
	"innkeeper/internal/pkg/password"
	"innkeeper/internal/usecase/queries"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token  string
	UserID uuid.UUID
	Role   string
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	users shared.UserRepository
	reads queries.UserReadStore
	jwt   *jwt.Service
	clock clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	users shared.UserRepository,
	reads queries.UserReadStore,
	jwtService *jwt.Service,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:   uow,
		users: users,
		reads: reads,
		jwt:   jwtService,
		clock: clk,
	}
}

func (c *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	if len(in.Password) < minPasswordLength {
		return uuid.Nil, errs.Mark(errs.New("password is too short"), errs.ErrValidation)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	newUser, err := user.NewUser(uuid.Nil, in.Email, hash, user.RoleGuest, true, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	var id uuid.UUID
	err = c.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		created, err := c.users.Create(ctx, dbtx, newUser)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrEmailAlreadyRegistered)
			}
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Login deliberately collapses unknown email, wrong password and disabled
// account into one error so the endpoint leaks nothing about which it was.
func (c *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	creds, err := c.reads.FindCredentialsByEmail(ctx, in.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrAuthenticationFailed)
		}
		return nil, err
	}

	if !creds.IsActive {
		return nil, errs.Mark(errs.New("account disabled"), errs.ErrAuthenticationFailed)
	}
	if err := password.Verify(creds.PasswordHash, in.Password); err != nil {
		return nil, errs.Mark(err, errs.ErrAuthenticationFailed)
	}

	role := user.Role(creds.Role)
	token, err := c.jwt.GenerateToken(creds.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue token")
	}

	return &LoginResult{Token: token, UserID: creds.ID, Role: creds.Role}, nil
}
