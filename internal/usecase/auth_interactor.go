package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/NotesApp/internal/auth"
	"github.com/GoArmGo/NotesApp/internal/core/ports"
	"github.com/GoArmGo/NotesApp/internal/domain"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User with this email or username already exists"
	msgNoToken            = "Not authorized, no token"
	msgTokenFailed        = "Not authorized, token failed"
)

// authUseCase implements AuthUseCase
type authUseCase struct {
	users  ports.UserStorage
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(users ports.UserStorage, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) AuthUseCase {
	return &authUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, *Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := domain.Validate(in); err != nil {
		return nil, nil, err
	}

	existing, err := uc.users.FindUserByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("usecase: lookup existing user: %w", err)
	}
	if existing != nil {
		uc.logger.Info("registration rejected, user exists", "username", in.Username)
		return nil, nil, domain.NewError(domain.ErrConflict, msgUserExists)
	}

	hash, err := uc.hasher.Hash(ctx, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, nil, domain.NewError(domain.ErrValidation, "Password cannot be more than 72 bytes")
		}
		return nil, nil, fmt.Errorf("usecase: hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := uc.issue(user)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("user registered", "user_id", user.ID)
	return user, session, nil
}

func (uc *authUseCase) Login(ctx context.Context, in domain.LoginInput) (*domain.User, *Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, nil, domain.NewError(domain.ErrValidation, "Please provide an email and password")
	}

	user, err := uc.users.GetUserByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("usecase: lookup user by email: %w", err)
	}

	if user == nil {
		err = uc.hasher.CompareDummy(ctx, in.Password)
	} else {
		err = uc.hasher.Compare(ctx, user.PasswordHash, in.Password)
	}
	if err != nil {
		if errors.Is(err, auth.ErrMismatchedPassword) {
			uc.logger.Info("login rejected")
			return nil, nil, domain.NewError(domain.ErrUnauthorized, msgInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("usecase: compare password: %w", err)
	}

	session, err := uc.issue(user)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return user, session, nil
}

func (uc *authUseCase) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.NewError(domain.ErrUnauthorized, msgNoToken)
	}

	userID, err := uc.tokens.Parse(token)
	if err != nil {
		uc.logger.Debug("token rejected", "error", err)
		return nil, domain.NewError(domain.ErrUnauthorized, msgTokenFailed)
	}

	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: load current user: %w", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrUnauthorized, msgTokenFailed)
	}
	return user, nil
}

// issue выпускает токен и затирает хеш пароля перед отдачей пользователя наружу
func (uc *authUseCase) issue(user *domain.User) (*Session, error) {
	user.PasswordHash = ""

	token, expiresAt, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("usecase: issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}
