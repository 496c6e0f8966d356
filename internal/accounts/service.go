package accounts

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/openharvest/bargain/internal/domain"
	"github.com/openharvest/bargain/internal/storage"
)

const (
	MsgEmailAvailable    = "email is available"
	MsgEmailTaken        = "email is already registered"
	MsgNicknameAvailable = "nickname is available"
	MsgNicknameTaken     = "nickname is already taken"
	MsgJoinOK            = "registration succeeded"
	MsgJoinFail          = "registration failed"
	MsgLoginOK           = "login succeeded"
	MsgLoginFail         = "invalid email or password"
	MsgLogoutOK          = "logout succeeded"
)

// JoinRequest carries the plain form fields of a user registration.
type JoinRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Nickname string `json:"nickname" form:"nickname" validate:"required,min=2,max=64"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// LoginResult is the caller-facing outcome of a login attempt. Token is set
// only on success.
type LoginResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// Service implements account registration, duplicate checks and login over
// the user repository, a blob store for profile photos and a token issuer.
type Service struct {
	users      UserRepository
	store      storage.BlobStore
	tokens     *TokenIssuer
	profileDir string
}

func NewService(users UserRepository, store storage.BlobStore, tokens *TokenIssuer, profileDir string) *Service {
	return &Service{
		users:      users,
		store:      store,
		tokens:     tokens,
		profileDir: profileDir,
	}
}

// CheckEmailDuplicate reports whether the email is already registered.
func (s *Service) CheckEmailDuplicate(ctx context.Context, email string) (string, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return "", errors.Wrap(err, "check email")
	}
	if exists {
		return MsgEmailTaken, nil
	}
	return MsgEmailAvailable, nil
}

// CheckNicknameDuplicate reports whether the nickname is already taken.
func (s *Service) CheckNicknameDuplicate(ctx context.Context, nickname string) (string, error) {
	exists, err := s.users.NicknameExists(ctx, nickname)
	if err != nil {
		return "", errors.Wrap(err, "check nickname")
	}
	if exists {
		return MsgNicknameTaken, nil
	}
	return MsgNicknameAvailable, nil
}

// Join registers a new account with an optional profile photo. The photo
// follows the same write-then-unwind discipline as product registration: a
// photo written before a later failure is removed again.
func (s *Service) Join(ctx context.Context, req JoinRequest, photo *storage.Upload) string {
	photoName := ""

	failed := func(cause error) string {
		zap.L().Error("user registration failed",
			zap.String("email", req.Email),
			zap.Error(cause))
		if photoName != "" {
			if err := s.store.Remove(s.profileDir, photoName); err != nil {
				zap.L().Warn("failed to remove orphaned profile photo",
					zap.String("file", photoName), zap.Error(err))
			}
		}
		return MsgJoinFail
	}

	if exists, err := s.users.EmailExists(ctx, req.Email); err != nil {
		return failed(err)
	} else if exists {
		return MsgEmailTaken
	}
	if exists, err := s.users.NicknameExists(ctx, req.Nickname); err != nil {
		return failed(err)
	} else if exists {
		return MsgNicknameTaken
	}

	if !photo.IsEmpty() {
		photoName = storage.GenerateFilename(photo.Filename)
		if err := s.store.Write(s.profileDir, photoName, photo.Content); err != nil {
			photoName = ""
			return failed(err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return failed(errors.Wrap(err, "hash password"))
	}

	user := &domain.User{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: string(hash),
		Photo:    photoName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return failed(errors.Wrap(err, "create user"))
	}

	zap.L().Info("user registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return MsgJoinOK
}

// Login verifies the credential and issues a bearer token on success. The
// same generic failure message covers unknown email and wrong password.
func (s *Service) Login(ctx context.Context, email, password string) LoginResult {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zap.L().Error("login lookup failed", zap.String("email", email), zap.Error(err))
		}
		return LoginResult{Status: false, Message: MsgLoginFail}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return LoginResult{Status: false, Message: MsgLoginFail}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		zap.L().Error("token issue failed", zap.String("email", email), zap.Error(err))
		return LoginResult{Status: false, Message: MsgLoginFail}
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		zap.L().Warn("failed to stamp last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return LoginResult{Status: true, Message: MsgLoginOK, Token: token}
}

// ValidateToken checks signature and expiry without side effects.
func (s *Service) ValidateToken(token string) bool {
	return s.tokens.Validate(token)
}

// GetLoginUserByEmail retrieves the account for an authenticated email.
func (s *Service) GetLoginUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
