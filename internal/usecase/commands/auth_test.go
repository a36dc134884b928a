//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	domuser "innkeeper/internal/domain/user"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/pkg/jwt"
	"innkeeper/internal/pkg/password"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	createErr error
	created   []*domuser.User
}

func (f *fakeUserRepo) Create(_ context.Context, _ db.DBTX, u *domuser.User) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, u)
	return u.ID(), nil
}

type fakeUserReadStore struct {
	credentials map[string]*queries.CredentialsView
}

func (f *fakeUserReadStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.UserView, error) {
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (f *fakeUserReadStore) FindCredentialsByEmail(_ context.Context, email string) (*queries.CredentialsView, error) {
	if creds, ok := f.credentials[email]; ok {
		return creds, nil
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func newAuthCommands(repo *fakeUserRepo, reads *fakeUserReadStore) commands.AuthCommands {
	return commands.NewAuthCommands(
		newFakeUoW(),
		repo,
		reads,
		jwt.NewService("test-secret", time.Hour),
		clock.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	)
}

func TestRegister(t *testing.T) {
	t.Run("creates a guest account", func(t *testing.T) {
		repo := &fakeUserRepo{}
		cmds := newAuthCommands(repo, &fakeUserReadStore{})

		id, err := cmds.Register(context.Background(), commands.RegisterInput{
			Email:    "new@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		require.Len(t, repo.created, 1)
		assert.Equal(t, domuser.RoleGuest, repo.created[0].Role())
		// The hash, never the password, is what gets stored.
		assert.NotEqual(t, "correct-horse", repo.created[0].PasswordHash())
	})

	t.Run("short password", func(t *testing.T) {
		cmds := newAuthCommands(&fakeUserRepo{}, &fakeUserReadStore{})

		_, err := cmds.Register(context.Background(), commands.RegisterInput{
			Email:    "new@example.com",
			Password: "short",
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("invalid email", func(t *testing.T) {
		cmds := newAuthCommands(&fakeUserRepo{}, &fakeUserReadStore{})

		_, err := cmds.Register(context.Background(), commands.RegisterInput{
			Email:    "not-an-email",
			Password: "correct-horse",
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &fakeUserRepo{createErr: infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey)}
		cmds := newAuthCommands(repo, &fakeUserReadStore{})

		_, err := cmds.Register(context.Background(), commands.RegisterInput{
			Email:    "taken@example.com",
			Password: "correct-horse",
		})
		assert.ErrorIs(t, err, errs.ErrEmailAlreadyRegistered)
	})
}

func TestLogin(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	activeUser := &queries.CredentialsView{
		ID:           uuid.New(),
		Email:        "guest@example.com",
		Role:         "guest",
		IsActive:     true,
		PasswordHash: hash,
	}

	readsWith := func(creds *queries.CredentialsView) *fakeUserReadStore {
		return &fakeUserReadStore{credentials: map[string]*queries.CredentialsView{creds.Email: creds}}
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		cmds := newAuthCommands(&fakeUserRepo{}, readsWith(activeUser))

		result, err := cmds.Login(context.Background(), commands.LoginInput{
			Email:    "guest@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, activeUser.ID, result.UserID)
		assert.Equal(t, "guest", result.Role)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("unknown email, wrong password and disabled account are indistinguishable", func(t *testing.T) {
		disabled := *activeUser
		disabled.IsActive = false

		cases := []struct {
			name  string
			reads *fakeUserReadStore
			input commands.LoginInput
		}{
			{
				name:  "unknown email",
				reads: &fakeUserReadStore{},
				input: commands.LoginInput{Email: "nobody@example.com", Password: "correct-horse"},
			},
			{
				name:  "wrong password",
				reads: readsWith(activeUser),
				input: commands.LoginInput{Email: "guest@example.com", Password: "wrong"},
			},
			{
				name:  "disabled account",
				reads: readsWith(&disabled),
				input: commands.LoginInput{Email: "guest@example.com", Password: "correct-horse"},
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				cmds := newAuthCommands(&fakeUserRepo{}, tc.reads)
				_, err := cmds.Login(context.Background(), tc.input)
				assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
			})
		}
	})
}
