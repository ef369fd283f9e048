package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Skotchmaster/academic_records/internal/events"
	"github.com/Skotchmaster/academic_records/internal/logging"
	"github.com/Skotchmaster/academic_records/internal/models"
	"github.com/Skotchmaster/academic_records/internal/repo"
)

const publishTimeout = 5 * time.Second

type CredentialStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, fullName, email, passwordHash string, roleID uint) (uint, error)
	FindProfileByID(ctx context.Context, id uint) (*models.User, error)
}

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, hash, password string) (bool, error)
	Burn(ctx context.Context, password string) error
}

type TokenIssuer interface {
	Issue(userID uint, email, roleName string) (string, error)
}

type AuthService struct {
	Repo   CredentialStore
	Hasher PasswordHasher
	Tokens TokenIssuer
	Events events.Publisher
}

// UserView is the only user projection that leaves the service.
type UserView struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}

type AuthResult struct {
	Token string
	User  UserView
}

func viewOf(u *models.User) UserView {
	return UserView{ID: u.ID, FullName: u.FullName, Email: u.Email, RoleName: u.Role.RoleName}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	in.normalize()
	if err := in.Validate(); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "validation", "error", err)
		return nil, err
	}

	role, err := s.Repo.FindRoleByName(ctx, in.RoleName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("register_failed", "status", 400, "reason", "invalid_role", "role_name", in.RoleName)
			return nil, ErrInvalidRole
		}
		return nil, s.fail(l, "register_failed", storeError(err))
	}

	// The unique index decides; this check only gives an early, clearer answer.
	exists, err := s.Repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, s.fail(l, "register_failed", storeError(err))
	}
	if exists {
		l.Warn("register_failed", "status", 409, "reason", "email_taken")
		return nil, ErrEmailTaken
	}

	pwHash, err := s.Hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, s.fail(l, "register_failed", cpuError(ctx, err))
	}

	id, err := s.Repo.CreateUser(ctx, in.FullName, in.Email, pwHash, role.ID)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			l.Warn("register_failed", "status", 409, "reason", "email_taken")
			return nil, ErrEmailTaken
		}
		return nil, s.fail(l, "register_failed", storeError(err))
	}

	token, err := s.Tokens.Issue(id, in.Email, role.RoleName)
	if err != nil {
		return nil, s.fail(l, "register_failed", fmt.Errorf("%w: %w", ErrInternal, err))
	}

	view := UserView{ID: id, FullName: in.FullName, Email: in.Email, RoleName: role.RoleName}
	s.publish(ctx, l, events.TypeUserRegistered, view)
	l.Info("register_success", "status", 201, "user_id", id, "role_name", role.RoleName)

	return &AuthResult{Token: token, User: view}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	in.normalize()
	if err := in.Validate(); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "validation", "error", err)
		return nil, err
	}

	user, err := s.Repo.FindUserByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, s.fail(l, "login_failed", storeError(err))
		}
		// Spend a comparison anyway so response time does not tell a missing
		// account from a wrong password.
		if err := s.Hasher.Burn(ctx, in.Password); err != nil {
			return nil, s.fail(l, "login_failed", cpuError(ctx, err))
		}
		l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
		return nil, ErrInvalidCredentials
	}

	ok, err := s.Hasher.Verify(ctx, user.PasswordHash, in.Password)
	if err != nil {
		return nil, s.fail(l, "login_failed", cpuError(ctx, err))
	}
	if !ok {
		l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID, user.Email, user.Role.RoleName)
	if err != nil {
		return nil, s.fail(l, "login_failed", fmt.Errorf("%w: %w", ErrInternal, err))
	}

	view := viewOf(user)
	s.publish(ctx, l, events.TypeUserLoggedIn, view)
	l.Info("login_successful", "user_id", user.ID)

	return &AuthResult{Token: token, User: view}, nil
}

// Profile re-reads the user so that the returned role is the current one.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*UserView, error) {
	l := logging.FromContext(ctx).With("svc", "auth.profile", "user_id", userID)

	user, err := s.Repo.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("profile_failed", "status", 404, "reason", "user_not_found")
			return nil, ErrNotFound
		}
		return nil, s.fail(l, "profile_failed", storeError(err))
	}

	view := viewOf(user)
	return &view, nil
}

func (s *AuthService) fail(l *slog.Logger, msg string, err error) error {
	status := 500
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		status = 503
	}
	l.Error(msg, "status", status, "error", err)
	return err
}

func (s *AuthService) publish(ctx context.Context, l *slog.Logger, typ string, u UserView) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.UserEvent{
		Type:     typ,
		UserID:   u.ID,
		Email:    u.Email,
		RoleName: u.RoleName,
		At:       time.Now().UTC(),
	}
	if err := s.Events.PublishEvent(ctx, strconv.FormatUint(uint64(u.ID), 10), event); err != nil {
		l.Error("event_publish_failed", "type", typ, "error", err)
	}
}
