package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/staylist/staylist-backend/internal/auth"
	"github.com/staylist/staylist-backend/internal/metrics"
	"github.com/staylist/staylist-backend/internal/models"
	repo "github.com/staylist/staylist-backend/internal/repository"
	"github.com/staylist/staylist-backend/internal/worker"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	// ErrValidation marks caller-fault input errors; handlers map it to 400.
	ErrValidation = errors.New("validation")
)

// AuthResult is what register/login hand back: the user plus a fresh pair.
type AuthResult struct {
	User         models.User
	AccessToken  string
	RefreshToken string
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserPatch is the allow-listed update set; nil fields are left untouched.
type UserPatch struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type UserService struct {
	users repo.Users
	audit repo.AuditLogs
	tm    *auth.TokenManager
	wp    *worker.Pool
}

func NewUserService(users repo.Users, audit repo.AuditLogs, tm *auth.TokenManager, wp *worker.Pool) *UserService {
	return &UserService{users: users, audit: audit, tm: tm, wp: wp}
}

func (s *UserService) Register(ctx context.Context, name, username, email, password, role string) (AuthResult, error) {
	u := models.User{
		Name:     strings.TrimSpace(name),
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Role:     role,
	}
	if err := u.Validate(); err != nil {
		return AuthResult{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if password == "" {
		return AuthResult{}, fmt.Errorf("%w: password is required", ErrValidation)
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, u.Username, u.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if taken {
		return AuthResult{}, repo.ErrDuplicate
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}
	u.PasswordHash = hash

	saved, err := s.users.Create(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}

	access, refresh, err := s.tm.IssuePair(saved.ID, saved.Username, saved.Role)
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.users.SetRefreshToken(ctx, saved.ID, refresh); err != nil {
		return AuthResult{}, err
	}

	s.recordAudit("user", saved.ID, "register", map[string]any{"username": saved.Username})
	return AuthResult{User: saved, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return AuthResult{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return AuthResult{}, ErrInvalidCredentials
	}

	access, refresh, err := s.tm.IssuePair(u.ID, u.Username, u.Role)
	if err != nil {
		return AuthResult{}, err
	}
	// Overwrites any previous refresh token: one outstanding refresh session
	// per user, so a login on a second device ends the first one's session.
	if err := s.users.SetRefreshToken(ctx, u.ID, refresh); err != nil {
		return AuthResult{}, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.recordAudit("user", u.ID, "login", nil)
	return AuthResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a stored refresh token for a new pair. The equality
// lookup comes first: only the most recently issued refresh token exists on
// any user row, so older tokens miss here even if they still verify.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	u, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
			return TokenPair{}, ErrInvalidRefresh
		}
		metrics.TokenRefreshTotal.WithLabelValues("error").Inc()
		return TokenPair{}, err
	}

	if _, err := s.tm.VerifyRefresh(refreshToken); err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		return TokenPair{}, ErrInvalidRefresh
	}

	access, refresh, err := s.tm.IssuePair(u.ID, u.Username, u.Role)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.users.SetRefreshToken(ctx, u.ID, refresh); err != nil {
		return TokenPair{}, err
	}

	metrics.TokenRefreshTotal.WithLabelValues("ok").Inc()
	s.recordAudit("user", u.ID, "refresh", nil)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// LookupIdentity satisfies the guard's user-lookup dependency.
func (s *UserService) LookupIdentity(ctx context.Context, userID string) (string, string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.Username, u.Role, nil
}

func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query parameter is required", ErrValidation)
	}
	return s.users.Search(ctx, query)
}

// Update applies an allow-listed patch; unknown body fields never reach the
// store. A supplied password is re-hashed before persisting.
func (s *UserService) Update(ctx context.Context, id string, p UserPatch) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Username != nil {
		u.Username = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		u.Email = strings.TrimSpace(*p.Email)
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Password != nil {
		hash, err := auth.HashPassword(*p.Password)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}
	if err := u.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	return s.users.Update(ctx, u)
}

func (s *UserService) recordAudit(entityType, entityID, action string, details map[string]any) {
	if s.audit == nil || s.wp == nil {
		return
	}
	id := entityID
	s.wp.Submit(func() {
		if err := s.audit.Create(context.Background(), models.AuditLog{
			EntityType: entityType,
			EntityID:   &id,
			Action:     action,
			Details:    details,
		}); err != nil {
			slog.Error("audit write", "action", action, "err", err)
		}
	})
}
