package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"clinical-assistant/internal/converter"
	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/domain/repository"
	"clinical-assistant/internal/service"
	"clinical-assistant/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidRegistration   = errors.New("username and password are required")
	ErrInvalidRole           = errors.New("role must be doctor or patient")
	ErrInvalidLanguage       = errors.New("language must be English or Hindi")
	ErrSessionNotFound       = errors.New("session not found")
	ErrPasswordTooLong       = errors.New("password must be at most 72 bytes")
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// dummyPasswordHash is compared against when no stored hash applies, so that
// failed logins cost one bcrypt comparison whatever the reason.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("clinical-assistant"), bcrypt.DefaultCost)
	return hash
})

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	IsAuthenticated(ctx context.Context, sessionID string) bool
	CurrentRole(ctx context.Context, sessionID string) *entity.Role
	SetLanguage(ctx context.Context, sessionID, language string) (*dto.SessionResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.LoginAuditService
	sessionStore service.SessionStore
	jwtService   *jwt.JWTService
	now          func() time.Time
	compare      func(hash, password []byte) error
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.LoginAuditService,
	sessionStore service.SessionStore,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		sessionStore: sessionStore,
		jwtService:   jwtService,
		now:          time.Now,
		compare:      bcrypt.CompareHashAndPassword,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, ErrInvalidRegistration
	}

	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	role := entity.Role(req.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := u.userRepo.Create(ctx, u.db, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUsernameAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, storageError(err)
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := u.userRepo.FindByUsername(ctx, u.db, username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, storageError(err)
	}
	return user, nil
}

// Login verifies the credentials and opens a new session. Unknown users, a
// role mismatch and a wrong password all yield ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.Role(req.Role) {
		_ = u.compare(dummyPasswordHash(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := u.compare([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := u.now()
	expiry := u.jwtService.GetAccessExpiry()
	session := &entity.Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Role:      user.Role,
		Language:  entity.LanguageEnglish,
		CreatedAt: now,
		ExpiresAt: now.Add(expiry),
	}

	if err := u.sessionStore.Save(ctx, session, expiry); err != nil {
		u.log.Warnf("Failed to store session: %+v", err)
		return nil, err
	}

	accessToken, err := u.jwtService.GenerateAccessToken(session.ID, user.Username, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		_ = u.sessionStore.Delete(ctx, session.ID)
		return nil, err
	}

	// history is best-effort, the login stands even if the append fails
	if err := u.auditService.Record(ctx, user.Username, user.Role, now); err != nil {
		u.log.WithField("username", user.Username).Warn("Login history entry was not written")
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiry.Seconds()),
		Session:     *converter.SessionToResponse(session),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessionStore.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	return u.sessionStore.Find(ctx, sessionID)
}

func (u *authUsecase) IsAuthenticated(ctx context.Context, sessionID string) bool {
	session, err := u.GetSession(ctx, sessionID)
	return err == nil && session != nil
}

func (u *authUsecase) CurrentRole(ctx context.Context, sessionID string) *entity.Role {
	session, err := u.GetSession(ctx, sessionID)
	if err != nil || session == nil {
		return nil
	}
	role := session.Role
	return &role
}

func (u *authUsecase) SetLanguage(ctx context.Context, sessionID, language string) (*dto.SessionResponse, error) {
	if !service.IsSupportedLanguage(language) {
		return nil, ErrInvalidLanguage
	}

	session, err := u.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	ttl := session.ExpiresAt.Sub(u.now())
	if ttl <= 0 {
		return nil, ErrSessionNotFound
	}

	session.Language = language
	if err := u.sessionStore.Save(ctx, session, ttl); err != nil {
		u.log.Warnf("Failed to update session language: %+v", err)
		return nil, err
	}

	return converter.SessionToResponse(session), nil
}
