package usecase

import (
	"context"
	"strings"
	"testing"

	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func (f *authFixture) register(t *testing.T, username, password string, role entity.Role) {
	t.Helper()
	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{Username: username, Password: password, Role: string(role)})
	require.NoError(t, err)
}

func (f *authFixture) sessionID(t *testing.T, resp *dto.LoginResponse) string {
	t.Helper()
	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	return claims.TokenID
}

func (f *authFixture) loginCount(t *testing.T) int {
	t.Helper()
	events, err := repository.NewLoginHistoryRepository().FindAll(context.Background(), f.db)
	require.NoError(t, err)
	return len(events)
}

func TestAuthUsecase_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "pw1", Role: "patient"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "patient", user.Role)

	stored, err := f.usecase.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1", stored.Password)
}

func TestAuthUsecase_RegisterDuplicate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "pw1", entity.RolePatient)

	_, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "other", Role: "doctor"})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	stored, err := f.usecase.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, stored.Role)
}

func TestAuthUsecase_RegisterRejectsInvalidInput(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "pw", Role: "nurse"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "  ", Password: "pw", Role: "patient"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "", Role: "patient"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}

func TestAuthUsecase_RegisterRejectsLongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: strings.Repeat("a", 80), Role: "patient"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// 40 runes but 80 bytes
	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: strings.Repeat("é", 40), Role: "patient"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	user, err := f.usecase.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, user)

	f.register(t, "alice", strings.Repeat("a", 72), entity.RolePatient)
}

func TestAuthUsecase_LoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "pw1", entity.RolePatient)

	resp, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw1", Role: "patient"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, entity.LanguageEnglish, resp.Session.Language)
	assert.NotContains(t, resp.Session.Features, "Admin Analytics")

	id := f.sessionID(t, resp)
	assert.True(t, f.usecase.IsAuthenticated(ctx, id))
	role := f.usecase.CurrentRole(ctx, id)
	require.NotNil(t, role)
	assert.Equal(t, entity.RolePatient, *role)

	events, err := repository.NewLoginHistoryRepository().FindAll(ctx, f.db)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "alice", events[0].Username)
	assert.Equal(t, entity.RolePatient, events[0].Role)
	assert.False(t, events[0].Timestamp().IsZero())
}

func TestAuthUsecase_LoginFailures(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "drwho", "pw2", entity.RoleDoctor)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong role", dto.LoginRequest{Username: "drwho", Password: "pw2", Role: "patient"}},
		{"wrong password", dto.LoginRequest{Username: "drwho", Password: "nope", Role: "doctor"}},
		{"unknown user", dto.LoginRequest{Username: "ghost", Password: "pw2", Role: "doctor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.usecase.Login(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, resp)
		})
	}

	assert.Zero(t, f.loginCount(t))
}

func TestAuthUsecase_LoginFailuresCompareOnce(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "drwho", "pw2", entity.RoleDoctor)

	var hashes [][]byte
	f.usecase.compare = func(hash, password []byte) error {
		hashes = append(hashes, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	tests := []dto.LoginRequest{
		{Username: "ghost", Password: "pw2", Role: "doctor"},
		{Username: "drwho", Password: "pw2", Role: "patient"},
		{Username: "drwho", Password: "nope", Role: "doctor"},
	}
	for _, req := range tests {
		hashes = nil
		_, err := f.usecase.Login(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		require.Len(t, hashes, 1, req.Username+"/"+req.Role)

		cost, err := bcrypt.Cost(hashes[0])
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	}
}

func TestAuthUsecase_LoginSurvivesAuditFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "pw1", entity.RolePatient)
	f.usecase.auditService = failingAuditService{}

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pw1", Role: "patient"})
	require.NoError(t, err)
	assert.True(t, f.usecase.IsAuthenticated(context.Background(), f.sessionID(t, resp)))
}

func TestAuthUsecase_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "pw1", entity.RolePatient)

	resp, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw1", Role: "patient"})
	require.NoError(t, err)
	id := f.sessionID(t, resp)

	_, err = f.usecase.SetLanguage(ctx, id, entity.LanguageHindi)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(ctx, id))
	assert.False(t, f.usecase.IsAuthenticated(ctx, id))
	assert.Nil(t, f.usecase.CurrentRole(ctx, id))

	session, err := f.usecase.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, session)

	require.NoError(t, f.usecase.Logout(ctx, id))
}

func TestAuthUsecase_ConcurrentSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "pw1", entity.RolePatient)
	f.register(t, "drwho", "pw2", entity.RoleDoctor)

	alice, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw1", Role: "patient"})
	require.NoError(t, err)
	doctor, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "drwho", Password: "pw2", Role: "doctor"})
	require.NoError(t, err)
	assert.Contains(t, doctor.Session.Features, "Admin Analytics")

	require.NoError(t, f.usecase.Logout(ctx, f.sessionID(t, alice)))

	assert.False(t, f.usecase.IsAuthenticated(ctx, f.sessionID(t, alice)))
	assert.True(t, f.usecase.IsAuthenticated(ctx, f.sessionID(t, doctor)))
	assert.Equal(t, 2, f.loginCount(t))
}

func TestAuthUsecase_SetLanguage(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "pw1", entity.RolePatient)

	resp, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw1", Role: "patient"})
	require.NoError(t, err)
	id := f.sessionID(t, resp)

	updated, err := f.usecase.SetLanguage(ctx, id, entity.LanguageHindi)
	require.NoError(t, err)
	assert.Equal(t, entity.LanguageHindi, updated.Language)

	session, err := f.usecase.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.LanguageHindi, session.Language)

	_, err = f.usecase.SetLanguage(ctx, id, "Klingon")
	assert.ErrorIs(t, err, ErrInvalidLanguage)

	_, err = f.usecase.SetLanguage(ctx, "missing", entity.LanguageEnglish)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
