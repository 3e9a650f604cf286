package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type verifierStub struct{ ok bool }

func (v verifierStub) Verify(plain string, hashed string) bool { return v.ok }

type issuerStub struct {
	token     string
	expiresAt time.Time
}

func (i issuerStub) Issue(userID string, now time.Time) (string, time.Time, error) {
	return i.token, i.expiresAt, nil
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := auth.NewLoginUsecase(
		users,
		verifierStub{ok: true},
		issuerStub{token: "signed-token", expiresAt: now.Add(15 * time.Minute)},
		clockStub{now: now},
	)

	users.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&model.User{ID: "u-1", Email: "a@example.com", PasswordHash: "hash", IsActive: true}, nil)
	//最終ログイン時刻が更新される
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == "u-1" && u.LastLoginAt != nil && u.LastLoginAt.Equal(now)
	})).Return(nil)

	out, err := uc.Execute(ctx, auth.LoginInput{Email: "a@example.com", Password: "pw"})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token.AccessToken)
	assert.Equal(t, 900, out.Token.ExpiresIn)
	assert.Equal(t, "", out.User.PasswordHash)
	users.AssertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	uc := auth.NewLoginUsecase(users, verifierStub{ok: true}, issuerStub{}, clockStub{})

	users.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return((*model.User)(nil), repository.ErrUserNotFound)

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "nobody@example.com", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	uc := auth.NewLoginUsecase(users, verifierStub{ok: false}, issuerStub{}, clockStub{})

	users.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&model.User{ID: "u-1", PasswordHash: "hash", IsActive: true}, nil)

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogin_InactiveUser(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	uc := auth.NewLoginUsecase(users, verifierStub{ok: true}, issuerStub{}, clockStub{})

	users.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&model.User{ID: "u-1", PasswordHash: "hash", IsActive: false}, nil)

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "a@example.com", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}
