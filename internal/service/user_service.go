package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"trackline/internal/auth"
	"trackline/internal/cache"
	apperrors "trackline/internal/errors"
	"trackline/internal/model"
	"trackline/internal/pagination"
	"trackline/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute
)

// RegisterUserRequest carries the fields for registering a user. The
// initial password is generated server-side and returned exactly once.
// Registration is public, so the request carries no role: every new
// account starts as USER and only an ADMIN can promote it afterwards.
type RegisterUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
}

// UserService exposes user management operations.
type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*model.User, string, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetProfile(ctx context.Context, principal *model.User) (*model.User, error)
	ChangePassword(ctx context.Context, principal *model.User, oldPassword, newPassword string) error
	ChangeRole(ctx context.Context, principal *model.User, userID uint, role string) (*model.User, error)
	ForcePasswordReset(ctx context.Context, principal *model.User, userID uint) (*model.User, string, error)
	SearchByEmail(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.User], error)
	SearchByFirstName(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.User], error)
	SearchByLastName(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.User], error)
}

type userService struct {
	users      repository.UserRepository
	cache      *cache.Client
	tokenStore auth.TokenStoreInterface
	logger     zerolog.Logger
}

// NewUserService builds a UserService with repository, cache and the
// token store used to revoke sessions on forced resets.
func NewUserService(users repository.UserRepository, cache *cache.Client, tokenStore auth.TokenStoreInterface, logger zerolog.Logger) UserService {
	return &userService{users: users, cache: cache, tokenStore: tokenStore, logger: logger}
}

func (s *userService) cacheKey(email string) string {
	return "user:email:" + email
}

func (s *userService) invalidate(ctx context.Context, email string) {
	_ = s.cache.Delete(ctx, s.cacheKey(email))
}

// generatePassword produces a random initial password. It is handed to
// the caller once and only its hash is stored.
func generatePassword() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register creates a user with a generated one-shot initial password.
// The new account is always a plain USER; a role in the payload is
// rejected so an anonymous caller cannot grant themselves privileges.
func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*model.User, string, error) {
	if req.Role != nil {
		return nil, "", apperrors.NewBadRequest("role cannot be set at registration")
	}

	var errs fieldErrors
	if req.FirstName == nil || *req.FirstName == "" {
		errs.addMissing("firstName")
	}
	if req.LastName == nil || *req.LastName == "" {
		errs.addMissing("lastName")
	}
	if req.Email == nil || *req.Email == "" {
		errs.addMissing("email")
	}
	if err := errs.err(); err != nil {
		return nil, "", err
	}

	exists, err := s.users.ExistsByEmail(ctx, *req.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", apperrors.NewDuplication("user with email " + *req.Email + " already exists")
	}

	initialPassword := generatePassword()
	hashed, err := hashPassword(initialPassword)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FirstName:      *req.FirstName,
		LastName:       *req.LastName,
		Email:          *req.Email,
		PasswordHash:   hashed,
		Role:           model.RoleUser,
		NeverConnected: true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user registered")
	return user, initialPassword, nil
}

// GetByEmail loads a user by identity key, serving repeated lookups (one
// per authenticated request) from the cache.
func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(email), payload, userCacheTTL)
	}
	return user, nil
}

// GetProfile returns the principal's own profile. There is no access
// check beyond authentication: a user always sees their own profile.
func (s *userService) GetProfile(ctx context.Context, principal *model.User) (*model.User, error) {
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, resolveErr(err, "User", principal.ID)
	}
	return user, nil
}

// ChangePassword replaces the principal's password after verifying the
// old one. Reusing the old password is rejected.
func (s *userService) ChangePassword(ctx context.Context, principal *model.User, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return resolveErr(err, "User", principal.ID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperrors.NewUnauthenticated("old password does not match")
	}
	if newPassword == "" {
		return apperrors.NewBadRequest("newPassword is required")
	}
	if oldPassword == newPassword {
		return apperrors.NewBadRequest("new password must differ from the old one")
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	user.NeverConnected = false

	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, user.Email)
	return nil
}

// ChangeRole assigns a new role to the target user. ADMIN only.
func (s *userService) ChangeRole(ctx context.Context, principal *model.User, userID uint, role string) (*model.User, error) {
	if principal.Role != model.RoleAdmin {
		return nil, apperrors.NewForbidden()
	}
	if !model.Role(role).IsValid() {
		return nil, apperrors.NewBadRequest("invalid role: " + role)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, resolveErr(err, "User", userID)
	}
	if user.Role == model.Role(role) {
		return nil, noChanges()
	}

	user.Role = model.Role(role)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, user.Email)

	s.logger.Warn().Str("email", user.Email).Str("role", role).
		Str("by", principal.Email).Msg("user role changed")
	return user, nil
}

// ForcePasswordReset generates a fresh password for the target user,
// marks the account as never connected and revokes every token the user
// holds. ADMIN only; the new password is returned once.
func (s *userService) ForcePasswordReset(ctx context.Context, principal *model.User, userID uint) (*model.User, string, error) {
	if principal.Role != model.RoleAdmin {
		return nil, "", apperrors.NewForbidden()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", resolveErr(err, "User", userID)
	}

	newPassword := generatePassword()
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = hashed
	user.NeverConnected = true

	if err := s.users.Save(ctx, user); err != nil {
		return nil, "", err
	}
	if err := s.tokenStore.InvalidateSubject(ctx, user.Email, time.Now()); err != nil {
		return nil, "", err
	}
	s.invalidate(ctx, user.Email)

	s.logger.Warn().Str("email", user.Email).Str("by", principal.Email).
		Msg("user password forcibly reset")
	return user, newPassword, nil
}

type userPageQuery func(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error)

// User directory search is reserved for privileged principals.
func (s *userService) search(ctx context.Context, principal *model.User, pattern *string, page *int, query userPageQuery) (*pagination.Envelope[model.User], error) {
	if !principal.IsPrivileged() {
		return nil, apperrors.NewForbidden()
	}

	p, err := pagination.NormalizePage(page)
	if err != nil {
		return nil, err
	}
	pat := pagination.NormalizePattern(pattern)

	users, total, err := query(ctx, pat, p, pagination.UserPageSize)
	if err != nil {
		return nil, err
	}
	if err := pagination.CheckBounds(p, pagination.TotalPages(total, pagination.UserPageSize)); err != nil {
		return nil, err
	}
	env := pagination.BuildEnvelope(p, users, total, pagination.UserPageSize)
	return &env, nil
}

func (s *userService) SearchByEmail(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.User], error) {
	return s.search(ctx, principal, pattern, page, s.users.FindPageByEmailContaining)
}

func (s *userService) SearchByFirstName(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.User], error) {
	return s.search(ctx, principal, pattern, page, s.users.FindPageByFirstNameContaining)
}

func (s *userService) SearchByLastName(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.User], error) {
	return s.search(ctx, principal, pattern, page, s.users.FindPageByLastNameContaining)
}
